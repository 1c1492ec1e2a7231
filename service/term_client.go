package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"termdraft-backend/models"
)

const termTimeout = 15 * time.Second

// TermsAPI persists generated drafts in the external term service
type TermsAPI interface {
	CreateTerm(ctx context.Context, draft models.GeneratedDraft, requesterID string) (*models.TermRecord, error)
}

// TermClient is an HTTP client for the term service
type TermClient struct {
	baseURL string
	client  *http.Client
}

// NewTermClient creates a term service client
func NewTermClient(baseURL string) *TermClient {
	return &TermClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: termTimeout},
	}
}

// CreateTerm submits the draft for persistence and returns the created
// record. The requester identity travels in the X-Authenticated-User-Uid
// header, matching what the gateway injects on inbound requests.
func (c *TermClient) CreateTerm(ctx context.Context, draft models.GeneratedDraft, requesterID string) (*models.TermRecord, error) {
	jsonData, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/terms", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Authenticated-User-Uid", requesterID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("term service call failed: %w", wrapTimeout(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readServiceError(resp.Body)
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("term service rejected draft: %s", msg)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read term service response: %w", err)
	}

	record := &models.TermRecord{
		ID:        extractTermID(bodyBytes),
		Title:     draft.Title,
		CreatedAt: extractCreatedAt(bodyBytes),
	}
	if record.ID == "" {
		return nil, fmt.Errorf("term service response carried no identifier: %s", truncateForLog(bodyBytes))
	}

	return record, nil
}

// idExtractor is one strategy for pulling the created record's identifier
// out of a term service response. Strategies are tried in order; the first
// non-empty result wins.
type idExtractor func(map[string]json.RawMessage) string

var idExtractors = []idExtractor{
	func(m map[string]json.RawMessage) string { return scalarString(m["id"]) },
	func(m map[string]json.RawMessage) string { return scalarString(m["termId"]) },
	func(m map[string]json.RawMessage) string {
		var data map[string]json.RawMessage
		if json.Unmarshal(m["data"], &data) != nil {
			return ""
		}
		if id := scalarString(data["id"]); id != "" {
			return id
		}
		return scalarString(data["termId"])
	},
}

// extractTermID probes the known response shapes for the created record id
func extractTermID(body []byte) string {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	for _, extract := range idExtractors {
		if id := extract(m); id != "" {
			return id
		}
	}
	return ""
}

// extractCreatedAt pulls the creation timestamp from the response if
// present, in either top-level or data-wrapped position; absent or
// unparseable timestamps default to now
func extractCreatedAt(body []byte) time.Time {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return time.Now()
	}

	raw, ok := m["createdAt"]
	if !ok {
		raw = m["created_at"]
	}
	if raw == nil {
		var data map[string]json.RawMessage
		if json.Unmarshal(m["data"], &data) == nil {
			if v, ok := data["createdAt"]; ok {
				raw = v
			} else {
				raw = data["created_at"]
			}
		}
	}

	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// scalarString renders a JSON string or number value as a string id
func scalarString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

func truncateForLog(b []byte) string {
	const max = 500
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

var _ TermsAPI = (*TermClient)(nil)
