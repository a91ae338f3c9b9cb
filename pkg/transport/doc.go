// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the HTTPS layer used to post SOAP envelopes
to the Marketo API endpoint.

# TLS Configuration

The package recommends TLS 1.3 with fallback to TLS 1.2:

	config := transport.DefaultHTTPSConfig()
	// MinTLSVersion: TLS 1.2
	// MaxTLSVersion: TLS 1.3

For TLS 1.2, the following cipher suites are recommended:
  - TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256
  - TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256

# Rate Limiting

The service rejects callers that exceed its quota with fault 20015. The
client keeps a token bucket (golang.org/x/time/rate) in front of every
request; the default allows 5 requests per second with a burst of 5.
Setting RateLimit to zero disables the limiter.

# Client Usage

	client := transport.NewHTTPSClient(transport.DefaultHTTPSConfig())
	defer client.CloseIdleConnections()

	body, err := client.Send(ctx, endpoint, envelope, "text/xml; charset=utf-8", "getLead")

Any status other than 200 is returned as a *StatusError carrying the
response body, so SOAP faults delivered with status 500 can still be
decoded by the caller.

# References

  - TLS 1.3 RFC 8446: https://datatracker.ietf.org/doc/html/rfc8446
  - TLS 1.2 RFC 5246: https://datatracker.ietf.org/doc/html/rfc5246
*/
package transport
