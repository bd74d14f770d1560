package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultDeepLEndpoint = "https://api-free.deepl.com/v2/translate"

// DeepLTranslator calls the DeepL REST API. Source language is detected by
// the service; target is fixed to US English to match the stored records.
type DeepLTranslator struct {
	apiKey     string
	endpoint   string
	targetLang string
	client     *http.Client
}

type deepLResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// NewDeepLTranslator creates a translator using the free-tier endpoint.
func NewDeepLTranslator(apiKey string) *DeepLTranslator {
	return &DeepLTranslator{
		apiKey:     apiKey,
		endpoint:   defaultDeepLEndpoint,
		targetLang: "EN-US",
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// NewDeepLTranslatorWithEndpoint is used by tests and by pro-tier setups.
func NewDeepLTranslatorWithEndpoint(apiKey, endpoint string) *DeepLTranslator {
	t := NewDeepLTranslator(apiKey)
	t.endpoint = endpoint
	return t
}

func (t *DeepLTranslator) Translate(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", t.targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("deepl: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+t.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl: unexpected status %d", resp.StatusCode)
	}

	var decoded deepLResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("deepl: failed to decode response: %w", err)
	}
	if len(decoded.Translations) == 0 {
		return "", fmt.Errorf("deepl: empty translation response")
	}

	return decoded.Translations[0].Text, nil
}
