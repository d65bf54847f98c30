// Package translate wraps the external translation provider. The provider
// is an opaque collaborator: text and target language in, translated text
// and detected source language out, or an error the caller degrades on.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FailedSentinel and UnknownLanguage are emitted by callers when a
// translation cannot be produced; a failed translation never fails the
// surrounding connection.
const (
	FailedSentinel  = "[Translation Failed]"
	UnknownLanguage = "unknown"
)

var ErrDisabled = errors.New("translator is not configured")

type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (translated, detectedLang string, err error)
}

// Client calls a DeepL-compatible REST endpoint.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New returns a Client, or a disabled translator when no API key is
// configured. The disabled translator fails every call cleanly so chat can
// degrade to the sentinel value instead of refusing connections.
func New(apiKey, endpoint string) Translator {
	if apiKey == "" {
		return disabled{}
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("translation provider returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", err
	}
	if len(parsed.Translations) == 0 {
		return "", "", errors.New("translation provider returned no translations")
	}
	return parsed.Translations[0].Text, parsed.Translations[0].DetectedSourceLanguage, nil
}

type disabled struct{}

func (disabled) Translate(ctx context.Context, text, targetLang string) (string, string, error) {
	return "", "", ErrDisabled
}
