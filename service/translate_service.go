package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	translateAPI     = "https://translation.googleapis.com/language/translate/v2"
	translateTimeout = 30 * time.Second
)

// TranslateService is a stateless single-call wrapper around the Google
// Translation v2 API
type TranslateService struct {
	apiKey string
	client *http.Client
}

// NewTranslateService creates a translation client
func NewTranslateService(apiKey string) (*TranslateService, error) {
	if apiKey == "" {
		return nil, errors.New("translate api key not set")
	}
	return &TranslateService{
		apiKey: apiKey,
		client: &http.Client{Timeout: translateTimeout},
	}, nil
}

// Translate translates text into the target language
func (s *TranslateService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("target", targetLanguage)
	form.Set("format", "text")
	form.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", translateAPI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate call failed: %w", wrapTimeout(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate API error: %d - %s", resp.StatusCode, readServiceError(resp.Body))
	}

	var apiResp struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode translate response: %w", err)
	}
	if len(apiResp.Data.Translations) == 0 {
		return "", errors.New("translate API returned no translations")
	}

	return apiResp.Data.Translations[0].TranslatedText, nil
}
