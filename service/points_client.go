package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"termdraft-backend/models"
)

const pointsTimeout = 10 * time.Second

// PointsAPI issues debit/credit requests against the external point service
type PointsAPI interface {
	Reduce(ctx context.Context, requesterID string, amount int) error
	Add(ctx context.Context, requesterID string, amount int) error
}

// PointsError carries the point service's own message (e.g. an
// insufficient-balance notice) so it can be surfaced to the caller
type PointsError struct {
	StatusCode int
	Message    string
}

func (e *PointsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("point service returned status %d", e.StatusCode)
}

// PointsClient is an HTTP client for the point service
type PointsClient struct {
	baseURL string
	client  *http.Client
}

// NewPointsClient creates a point service client
func NewPointsClient(baseURL string) *PointsClient {
	return &PointsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: pointsTimeout},
	}
}

// Reduce debits amount from the requester's balance
func (c *PointsClient) Reduce(ctx context.Context, requesterID string, amount int) error {
	return c.post(ctx, requesterID, "reduce", amount)
}

// Add credits amount back to the requester's balance
func (c *PointsClient) Add(ctx context.Context, requesterID string, amount int) error {
	return c.post(ctx, requesterID, "add", amount)
}

func (c *PointsClient) post(ctx context.Context, requesterID, op string, amount int) error {
	url := fmt.Sprintf("%s/api/points/%s/%s?amount=%d", c.baseURL, requesterID, op, amount)

	req, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("point service %s failed: %w", op, wrapTimeout(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return &PointsError{
		StatusCode: resp.StatusCode,
		Message:    readServiceError(resp.Body),
	}
}

// readServiceError probes an error body that may be a JSON object with an
// "error" field or a plain-text message
func readServiceError(body io.Reader) string {
	bodyBytes, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(bodyBytes) == 0 {
		return ""
	}

	var wrapped struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(bodyBytes, &wrapped) == nil && wrapped.Error != "" {
		return wrapped.Error
	}

	return strings.TrimSpace(string(bodyBytes))
}

var _ PointsAPI = (*PointsClient)(nil)

// transaction builds the record logged alongside saga transitions
func transaction(requesterID string, amount int, dir models.PointDirection) models.PointTransaction {
	return models.PointTransaction{
		RequesterID: requesterID,
		Amount:      amount,
		Direction:   dir,
	}
}
