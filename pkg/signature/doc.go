// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package signature builds the authentication header required on every
Marketo SOAP API call.

# Request Signature

Each request carries an AuthenticationHeader with three values:

  - mktowsUserId: the API user identifier
  - requestTimestamp: the current time in W3C format (2006-01-02T15:04:05-07:00)
  - requestSignature: hex HMAC-SHA1 of timestamp+userId keyed by the secret key

The timestamp is taken fresh for every call; nothing is cached between calls.

# Usage

	signer := signature.NewSigner(signature.Credentials{
	    UserID:    "mktodemo41_785133934D1A219B4AC6E4",
	    SecretKey: secret,
	    Namespace: "http://www.marketo.com/mktows/",
	    Location:  time.UTC,
	})

	header := signer.Header()

The header is handed to a soap.Transport which serializes it into the
SOAP Header element.

# References

  - Marketo SOAP API authentication signature: https://developers.marketo.com/soap-api/
*/
package signature
