// internal/common/zoho/crm.go
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.zohoapis.com/crm/v3"

type CRMClient struct {
	oauthToken string
	baseURL    string
	httpClient *http.Client
}

// Lead is the subset of Zoho lead fields filled from an assessment.
type Lead struct {
	ID             string `json:"id,omitempty"`
	LastName       string `json:"Last_Name"`
	FirstName      string `json:"First_Name,omitempty"`
	Email          string `json:"Email"`
	Phone          string `json:"Phone,omitempty"`
	Company        string `json:"Company"`
	Industry       string `json:"Industry,omitempty"`
	Source         string `json:"Lead_Source,omitempty"`
	ReadinessScore int    `json:"AI_Readiness_Score"`
	ReadinessTier  string `json:"AI_Readiness_Tier,omitempty"`
	Description    string `json:"Description,omitempty"`
}

type upsertResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

func NewCRMClient(baseURL, oauthToken string, timeout time.Duration) *CRMClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CRMClient{
		oauthToken: oauthToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SplitName turns a single "full name" field into Zoho's first/last pair.
// Last_Name is mandatory in Zoho so a one-word name goes there.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}

// UpsertLead creates the lead or updates the existing one with the same email.
func (c *CRMClient) UpsertLead(ctx context.Context, lead *Lead) (string, error) {
	payload := map[string]interface{}{
		"data":                   []Lead{*lead},
		"duplicate_check_fields": []string{"Email"},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Leads/upsert", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to upsert lead (status %d): %s", resp.StatusCode, string(body))
	}

	var upsertResp upsertResponse
	if err := json.Unmarshal(body, &upsertResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(upsertResp.Data) == 0 {
		return "", fmt.Errorf("no data in response")
	}
	if upsertResp.Data[0].Status != "success" {
		return "", fmt.Errorf("lead upsert failed: %s", upsertResp.Data[0].Message)
	}

	return upsertResp.Data[0].Details.ID, nil
}

// SearchLeads returns leads matching email. Zoho answers 204 when nothing matches.
func (c *CRMClient) SearchLeads(ctx context.Context, email string) ([]Lead, error) {
	endpoint := fmt.Sprintf("%s/Leads/search?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to search leads (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []Lead `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Data, nil
}

func (c *CRMClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)
}
