// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package soap defines the Transport contract used by the Marketo client and
provides a SOAP 1.1 implementation of it.

# Envelope

Requests are wrapped as:

	<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"
	                   xmlns:ns1="http://www.marketo.com/mktows/">
	  <SOAP-ENV:Header>
	    <ns1:AuthenticationHeader>
	      <mktowsUserId>...</mktowsUserId>
	      <requestSignature>...</requestSignature>
	      <requestTimestamp>...</requestTimestamp>
	    </ns1:AuthenticationHeader>
	  </SOAP-ENV:Header>
	  <SOAP-ENV:Body>
	    <ns1:paramsGetLead>...</ns1:paramsGetLead>
	  </SOAP-ENV:Body>
	</SOAP-ENV:Envelope>

# Response Tree

Responses are decoded into a generic tree of map[string]any, []any, string
and nil. Like the service's own PHP client, a child element that occurs
once is a single value and one that repeats is a list; callers normalize
this (see package message).

# Faults

A SOAP Fault, whether delivered with status 200 or 500, is returned as a
*fault.Fault whose Detail holds the decoded detail element.

# Usage

	client := soap.NewClient(&soap.ClientConfig{
	    Sender: transport.NewHTTPSClient(transport.DefaultHTTPSConfig()),
	    Logger: logger,
	})

	resp, err := client.Invoke(ctx, "getLead", params,
	    soap.DefaultCallOptions(endpoint), signer.Header())
*/
package soap
