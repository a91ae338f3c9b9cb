package message

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attr(name, typ, value string) map[string]any {
	a := map[string]any{"attrName": name, "attrValue": value}
	if typ != "" {
		a["attrType"] = typ
	}
	return a
}

func singleLeadResponse() map[string]any {
	return map[string]any{
		"result": map[string]any{
			"count": "1",
			"leadRecordList": map[string]any{
				"leadRecord": map[string]any{
					"Id":                 "1234",
					"Email":              "someaddress@someserver.com",
					"ForeignSysPersonId": nil,
					"ForeignSysType":     nil,
					"leadAttributeList": map[string]any{
						"attribute": []any{
							attr("AnonymousIP", "string", "10.10.10.10"),
							attr("LeadScore", "integer", "71"),
							attr("Phone", "phone", "123456786543"),
						},
					},
				},
			},
		},
	}
}

func TestNormalizeLeads_SingleObject(t *testing.T) {
	leads, err := NormalizeLeads(singleLeadResponse())
	require.NoError(t, err)
	require.Len(t, leads, 1)

	lead := leads[0]
	assert.Equal(t, int64(1234), lead.ID)
	assert.Equal(t, "someaddress@someserver.com", lead.Email)
	assert.Empty(t, lead.ForeignSysPersonID)
	assert.Nil(t, lead.Extra)
	assert.Equal(t, map[string]any{
		"AnonymousIP": "10.10.10.10",
		"LeadScore":   int64(71),
		"Phone":       "123456786543",
	}, lead.Attributes.Native())
}

func TestNormalizeLeads_DoesNotMutateResponse(t *testing.T) {
	resp := singleLeadResponse()
	_, err := NormalizeLeads(resp)
	require.NoError(t, err)

	rec := lookup(resp, "result", "leadRecordList", "leadRecord").(map[string]any)
	assert.Contains(t, rec, "leadAttributeList")
	assert.NotContains(t, rec, "attributes")
}

func TestNormalizeLeads_Array(t *testing.T) {
	resp := map[string]any{
		"result": map[string]any{
			"count": "2",
			"leadRecordList": map[string]any{
				"leadRecord": []any{
					map[string]any{"Id": "1", "leadAttributeList": map[string]any{"attribute": attr("FirstName", "string", "Ann")}},
					map[string]any{"Id": "2", "Score": "9"},
				},
			},
		},
	}

	leads, err := NormalizeLeads(resp)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, map[string]any{"FirstName": "Ann"}, leads[0].Attributes.Native())
	assert.Equal(t, 0, leads[1].Attributes.Len())
	assert.Equal(t, map[string]any{"Score": "9"}, leads[1].Extra)
}

func TestNormalizeLeads_SkipsNonObjectAttributes(t *testing.T) {
	resp := singleLeadResponse()
	rec := lookup(resp, "result", "leadRecordList", "leadRecord").(map[string]any)
	rec["leadAttributeList"] = map[string]any{
		"attribute": []any{"junk", attr("City", "", "Vigo"), nil},
	}

	leads, err := NormalizeLeads(resp)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"City": "Vigo"}, leads[0].Attributes.Native())
}

func TestNormalizeLeads_Empty(t *testing.T) {
	leads, err := NormalizeLeads(map[string]any{"result": map[string]any{"count": "0", "leadRecordList": ""}})
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestNormalizeLeads_BadShape(t *testing.T) {
	_, err := NormalizeLeads(map[string]any{})
	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "result", shapeErr.Path)

	_, err = NormalizeLeads(map[string]any{"result": map[string]any{
		"leadRecordList": map[string]any{"leadRecord": map[string]any{"Id": "abc"}},
	}})
	assert.ErrorAs(t, err, &shapeErr)
}

func TestNormalizeSyncResult(t *testing.T) {
	resp := map[string]any{
		"result": map[string]any{
			"leadId": "1234",
			"syncStatus": map[string]any{
				"leadId": "1234",
				"status": "UPDATED",
				"error":  nil,
			},
			"leadRecord": map[string]any{
				"Id":    "1234",
				"Email": "someaddress@someserver.com",
				"leadAttributeList": map[string]any{
					"attribute": []any{
						attr("FirstName", "string", "Some Other First Name"),
						attr("Unsubscribed", "boolean", "0"),
					},
				},
			},
		},
	}

	res, err := NormalizeSyncResult(resp)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), res.LeadID)
	assert.Equal(t, "UPDATED", res.Status)
	assert.Empty(t, res.Error)
	require.NotNil(t, res.Lead)
	assert.Equal(t, map[string]any{
		"FirstName":    "Some Other First Name",
		"Unsubscribed": false,
	}, res.Lead.Attributes.Native())
}

func TestNormalizeSyncResult_LeadIDFromStatus(t *testing.T) {
	res, err := NormalizeSyncResult(map[string]any{
		"result": map[string]any{"syncStatus": map[string]any{"leadId": "77", "status": "CREATED"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), res.LeadID)
	assert.Nil(t, res.Lead)
}

func activityRecord(id string) map[string]any {
	return map[string]any{
		"id":               id,
		"activityDateTime": "2013-09-25T00:41:24-07:00",
		"activityType":     "Visit Webpage",
		"mktgAssetName":    "example.com/pricing",
		"activityAttributes": map[string]any{
			"attribute": []any{
				attr("Webpage ID", "integer", "42"),
				attr("Query Parameters", "", ""),
			},
		},
		"mktPersonId": "1234",
	}
}

func TestNormalizeActivity_Counts(t *testing.T) {
	t.Run("zero ignores records", func(t *testing.T) {
		acts, err := NormalizeActivity(map[string]any{
			"leadActivityList": map[string]any{
				"returnCount":        "0",
				"activityRecordList": map[string]any{"activityRecord": activityRecord("1")},
			},
		}, time.UTC)
		require.NoError(t, err)
		assert.NotNil(t, acts)
		assert.Empty(t, acts)
	})

	t.Run("one wraps the record", func(t *testing.T) {
		acts, err := NormalizeActivity(map[string]any{
			"leadActivityList": map[string]any{
				"returnCount":        "1",
				"activityRecordList": map[string]any{"activityRecord": activityRecord("9")},
			},
		}, time.UTC)
		require.NoError(t, err)
		require.Len(t, acts, 1)

		act := acts[0]
		assert.Equal(t, int64(9), act.ID)
		assert.Equal(t, "Visit Webpage", act.ActivityType)
		assert.Equal(t, "1234", act.MktPersonID)
		assert.True(t, act.ActivityDateTime.Equal(time.Date(2013, 9, 25, 7, 41, 24, 0, time.UTC)))
		assert.Equal(t, map[string]any{"Webpage ID": int64(42), "Query Parameters": ""}, act.Attributes.Native())
	})

	t.Run("many uses the list", func(t *testing.T) {
		acts, err := NormalizeActivity(map[string]any{
			"leadActivityList": map[string]any{
				"returnCount": "2",
				"activityRecordList": map[string]any{
					"activityRecord": []any{activityRecord("1"), activityRecord("2")},
				},
			},
		}, time.UTC)
		require.NoError(t, err)
		require.Len(t, acts, 2)
		assert.Equal(t, int64(2), acts[1].ID)
	})
}

func TestNormalizeActivity_DateTime(t *testing.T) {
	pst, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	single := func(raw string) map[string]any {
		rec := activityRecord("1")
		rec["activityDateTime"] = raw
		return map[string]any{
			"leadActivityList": map[string]any{
				"returnCount":        "1",
				"activityRecordList": map[string]any{"activityRecord": rec},
			},
		}
	}

	t.Run("without offset uses the zone", func(t *testing.T) {
		acts, err := NormalizeActivity(single("2013-09-25T07:41:24"), pst)
		require.NoError(t, err)
		require.Len(t, acts, 1)
		assert.True(t, acts[0].ActivityDateTime.Equal(time.Date(2013, 9, 25, 7, 41, 24, 0, pst)))
		assert.Equal(t, "2013-09-25T07:41:24", acts[0].RawDateTime)
	})

	t.Run("fractional seconds", func(t *testing.T) {
		acts, err := NormalizeActivity(single("2013-09-25T07:41:24.5-07:00"), nil)
		require.NoError(t, err)
		require.Len(t, acts, 1)
		assert.Equal(t, 500*time.Millisecond, time.Duration(acts[0].ActivityDateTime.Nanosecond()))
	})

	t.Run("unparseable keeps the record", func(t *testing.T) {
		acts, err := NormalizeActivity(single("yesterday"), nil)
		require.NoError(t, err)
		require.Len(t, acts, 1)
		assert.True(t, acts[0].ActivityDateTime.IsZero())
		assert.Equal(t, "yesterday", acts[0].RawDateTime)
		assert.Equal(t, "Visit Webpage", acts[0].ActivityType)
	})

	t.Run("unparseable in a batch", func(t *testing.T) {
		bad := activityRecord("2")
		bad["activityDateTime"] = "25/09/2013"
		acts, err := NormalizeActivity(map[string]any{
			"leadActivityList": map[string]any{
				"returnCount": "2",
				"activityRecordList": map[string]any{
					"activityRecord": []any{activityRecord("1"), bad},
				},
			},
		}, nil)
		require.NoError(t, err)
		require.Len(t, acts, 2)
		assert.False(t, acts[0].ActivityDateTime.IsZero())
		assert.True(t, acts[1].ActivityDateTime.IsZero())
	})
}

func TestNormalizeFields(t *testing.T) {
	fields, err := NormalizeFields(map[string]any{
		"result": map[string]any{
			"metadata": map[string]any{
				"name": "LeadRecord",
				"fieldList": map[string]any{
					"field": []any{
						map[string]any{"name": "FirstName", "displayName": "First Name"},
						map[string]any{"name": "LeadScore", "displayName": "Lead Score"},
						"junk",
					},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"FirstName": "First Name", "LeadScore": "Lead Score"}, fields)
}

func TestNormalizeCampaigns(t *testing.T) {
	campaigns, err := NormalizeCampaigns(map[string]any{
		"result": map[string]any{
			"returnCount": "1",
			"campaignRecordList": map[string]any{
				"campaignRecord": map[string]any{"id": "1001", "name": "Welcome", "description": nil},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []Campaign{{ID: 1001, Name: "Welcome"}}, campaigns)
}

func TestNormalizeSuccess(t *testing.T) {
	ok, err := NormalizeSuccess(map[string]any{"result": map[string]any{"success": "true"}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NormalizeSuccess(map[string]any{"result": map[string]any{"success": "0"}})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = NormalizeSuccess(map[string]any{"result": map[string]any{"success": "maybe"}})
	assert.Error(t, err)
}

func TestNormalizeSuccess_NoFlag(t *testing.T) {
	for _, resp := range []map[string]any{
		{"result": map[string]any{}},
		{"result": map[string]any{"success": ""}},
		{"result": ""},
		{},
	} {
		ok, err := NormalizeSuccess(resp)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
