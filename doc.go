// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gomktows is a Go client for the Marketo SOAP API (mktows).

# Overview

go-mktows signs every call with the Marketo HMAC authentication header,
infers lead key types, converts typed lead attributes to and from their
wire form, flattens the service's responses into plain Go values and
classifies remote faults by their service error code.

# Package Structure

	github.com/sirosfoundation/go-mktows/pkg/mktows     - Client with one method per operation
	github.com/sirosfoundation/go-mktows/pkg/signature  - HMAC-SHA1 request signature and header
	github.com/sirosfoundation/go-mktows/pkg/leadkey    - Lead key types and classification
	github.com/sirosfoundation/go-mktows/pkg/attribute  - Typed attribute values and wire codec
	github.com/sirosfoundation/go-mktows/pkg/message    - Request parameters and response normalization
	github.com/sirosfoundation/go-mktows/pkg/fault      - SOAP faults and service error codes
	github.com/sirosfoundation/go-mktows/pkg/soap       - Transport contract and SOAP 1.1 implementation
	github.com/sirosfoundation/go-mktows/pkg/transport  - HTTPS sender with client-side rate limiting

# Quick Start

	httpsClient := transport.NewHTTPSClient(transport.DefaultHTTPSConfig())
	defer httpsClient.CloseIdleConnections()

	client, err := mktows.NewClient(&mktows.ClientConfig{
	    Transport: soap.NewClient(&soap.ClientConfig{Sender: httpsClient}),
	    Endpoint:  "https://123-ABC-456.mktoapi.com/soap/mktows/2_0",
	    UserID:    os.Getenv("MARKETO_USER_ID"),
	    SecretKey: os.Getenv("MARKETO_SECRET_KEY"),
	})
	if err != nil {
	    log.Fatal(err)
	}

	leads, err := client.GetLeadByKey(ctx, "someone@example.com")

# Error Handling

Remote faults are returned as *fault.Fault:

	if _, err := client.SyncLead(ctx, attrs); err != nil {
	    switch fault.Classify(err) {
	    case fault.RequestLimitExceeded:
	        // back off and retry later
	    case fault.AuthFailed:
	        // check credentials
	    }
	}

A lookup of an unknown lead is not an error; see package mktows.

# References

  - Marketo SOAP API: https://developers.marketo.com/soap-api/
  - SOAP 1.1: https://www.w3.org/TR/2000/NOTE-SOAP-20000508/
*/
package gomktows
