// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mktows is a client for the Marketo SOAP API.

Each method performs exactly one remote call: it builds the request
parameters, signs the call, hands it to a soap.Transport and normalizes
the response. There are no retries.

# Client Setup

	client, err := mktows.NewClient(&mktows.ClientConfig{
	    Transport: soap.NewClient(&soap.ClientConfig{Logger: logger}),
	    Endpoint:  "https://123-ABC-456.mktoapi.com/soap/mktows/2_0",
	    UserID:    userID,
	    SecretKey: secretKey,
	    Location:  time.UTC,
	})

# Leads

	leads, err := client.GetLeadByKey(ctx, "someone@example.com")
	if err != nil {
	    return err
	}
	if leads == nil {
	    // no such lead
	}

	attrs := attribute.NewMap().
	    SetAny("FirstName", "Ann").
	    SetAny("Unsubscribed", false)
	result, err := client.SyncLead(ctx, attrs, mktows.WithLeadKey("1234"))

A lookup or activity query for an unknown lead is not an error: GetLeadBy
returns a nil slice and GetLeadActivity an empty one.

# Campaigns

	ok, err := client.RequestCampaign(ctx, mktows.CampaignID(1001),
	    []leadkey.LeadKey{{Type: leadkey.IDNum, Value: "1234"}}, nil)

	ok, err = client.ScheduleCampaign(ctx, &mktows.ScheduleRequest{
	    ProgramName:  "Webinar",
	    CampaignName: "Send Invite",
	    Tokens:       []message.Token{{Name: "{{my.date}}", Value: "May 1"}},
	})

# Errors

Remote faults are logged and returned unchanged as *fault.Fault; use
fault.Classify to read the service code. Invalid input is reported as
*ValidationError without contacting the service. GetFields is the one
lenient call: it logs any failure and returns an empty map.
*/
package mktows
