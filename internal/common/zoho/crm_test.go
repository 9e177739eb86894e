package zoho

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		full, first, last string
	}{
		{"", "", ""},
		{"Fatimah", "", "Fatimah"},
		{"Fatimah Al Harbi", "Fatimah Al", "Harbi"},
		{"  Omar   Saleh ", "Omar", "Saleh"},
	}
	for _, tt := range tests {
		first, last := SplitName(tt.full)
		assert.Equal(t, tt.first, first, tt.full)
		assert.Equal(t, tt.last, last, tt.full)
	}
}

func TestCRMClient_UpsertLead(t *testing.T) {
	var received map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v3/Leads/upsert", r.URL.Path)
		assert.Equal(t, "Zoho-oauthtoken tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":[{"code":"SUCCESS","status":"success","details":{"id":"5725767000000524157"}}]}`))
	}))
	defer srv.Close()

	c := NewCRMClient(srv.URL+"/crm/v3/", "tok", time.Second)
	id, err := c.UpsertLead(context.Background(), &Lead{
		LastName:       "Harbi",
		Email:          "owner@restaurant.sa",
		Company:        "Harbi Kitchens",
		ReadinessScore: 27,
	})
	require.NoError(t, err)
	assert.Equal(t, "5725767000000524157", id)

	var leads []Lead
	require.NoError(t, json.Unmarshal(received["data"], &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, 27, leads[0].ReadinessScore)
	assert.JSONEq(t, `["Email"]`, string(received["duplicate_check_fields"]))
}

func TestCRMClient_UpsertLeadFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"http error", http.StatusUnauthorized, `{"code":"INVALID_TOKEN"}`, "status 401"},
		{"empty data", http.StatusOK, `{"data":[]}`, "no data in response"},
		{"rejected record", http.StatusOK, `{"data":[{"status":"error","message":"required field not found"}]}`, "required field not found"},
		{"bad json", http.StatusOK, `{`, "unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewCRMClient(srv.URL, "tok", time.Second).UpsertLead(context.Background(), &Lead{LastName: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCRMClient_SearchLeads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("email") {
		case "known@biz.sa":
			_, _ = w.Write([]byte(`{"data":[{"id":"1","Last_Name":"Known","Email":"known@biz.sa","Company":"Biz","AI_Readiness_Score":64}]}`))
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewCRMClient(srv.URL, "tok", 0)

	leads, err := c.SearchLeads(context.Background(), "known@biz.sa")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, 64, leads[0].ReadinessScore)

	leads, err = c.SearchLeads(context.Background(), "new+tag@biz.sa")
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestNewCRMClient_Defaults(t *testing.T) {
	c := NewCRMClient("", "tok", 0)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
}
