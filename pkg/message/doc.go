// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package message defines the request parameters of the Marketo SOAP
operations and normalizes their responses.

# Parameters

Each operation has a Params type whose XML form is the body element the
service expects, for example:

	<paramsGetLead>
	  <leadKey><keyType>EMAIL</keyType><keyValue>a@b.com</keyValue></leadKey>
	</paramsGetLead>

Lead attributes are written as a typed attribute list (see package
attribute). NewLeadRecord identifies the lead by Id when the key is
numeric and by Email otherwise.

# Normalization

Responses arrive as a generic tree (map[string]any, []any, string, nil).
The service returns a lone object where a list has one element, so every
list is read through the same rule: an object becomes a one-element list.
Activity lists additionally trust returnCount: zero means no records
whatever the body contains. An activity timestamp that does not parse is
left zero with its raw text kept, so it never fails the list.

Normalizers build new values and never modify the tree they read. A tree
that does not have the expected shape is reported as *ShapeError naming
the offending path.
*/
package message
