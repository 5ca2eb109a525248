package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"fixmycity-be/models"
)

// Client talks to the external AI analysis service. Every call is a single
// attempt with a bounded timeout; callers on the issue-creation path treat
// any error as "no enrichment".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient reads AI_SERVICE_URL from the environment, defaulting to the
// local development address of the analysis service.
func NewClient() *Client {
	baseURL := os.Getenv("AI_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return NewClientWithURL(baseURL)
}

func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai service returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// AnalyzeImage runs the vision pipeline on a base64-encoded image.
func (c *Client) AnalyzeImage(ctx context.Context, imageBase64 string) (*models.ImageAnalysis, error) {
	var result struct {
		PredictedCategory    string  `json:"predicted_category"`
		ConfidencePercent    float64 `json:"confidence_percent"`
		GeneratedDescription string  `json:"generated_description"`
		SeverityScore        int     `json:"severity_score"`
		IsMiscategorized     bool    `json:"is_miscategorized"`
	}

	err := c.post(ctx, "/analyze", map[string]string{"image": imageBase64}, &result)
	if err != nil {
		return nil, err
	}

	return &models.ImageAnalysis{
		PredictedCategory:    result.PredictedCategory,
		Confidence:           result.ConfidencePercent,
		GeneratedDescription: result.GeneratedDescription,
		SeverityScore:        result.SeverityScore,
		Miscategorized:       result.IsMiscategorized,
	}, nil
}

// AnalyzeText runs classification, summarization and urgency detection on a
// complaint description in one call.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*models.TextAnalysis, error) {
	var result struct {
		Classification struct {
			Category   string  `json:"category"`
			Confidence float64 `json:"confidence"`
		} `json:"classification"`
		Summary string `json:"summary"`
		Urgency struct {
			Level    int      `json:"level"`
			Label    string   `json:"label"`
			Keywords []string `json:"keywords"`
		} `json:"urgency"`
	}

	err := c.post(ctx, "/analyze-text", map[string]string{"text": text}, &result)
	if err != nil {
		return nil, err
	}

	return &models.TextAnalysis{
		Category:        result.Classification.Category,
		Confidence:      result.Classification.Confidence,
		Summary:         result.Summary,
		UrgencyLevel:    result.Urgency.Level,
		UrgencyLabel:    result.Urgency.Label,
		UrgencyKeywords: result.Urgency.Keywords,
	}, nil
}

// Classification is the narrow classify-only result.
type Classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

func (c *Client) ClassifyText(ctx context.Context, text string) (*Classification, error) {
	var result Classification
	if err := c.post(ctx, "/classify-text", map[string]string{"text": text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Summary is the summarize-only result.
type Summary struct {
	Summary        string `json:"summary"`
	OriginalLength int    `json:"original_length"`
	SummaryLength  int    `json:"summary_length"`
}

func (c *Client) SummarizeText(ctx context.Context, text string, maxLength, minLength int) (*Summary, error) {
	payload := map[string]interface{}{
		"text":       text,
		"max_length": maxLength,
		"min_length": minLength,
	}
	var result Summary
	if err := c.post(ctx, "/summarize-text", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Urgency is the urgency-detection result.
type Urgency struct {
	UrgencyLevel  int      `json:"urgency_level"`
	UrgencyLabel  string   `json:"urgency_label"`
	KeywordsFound []string `json:"keywords_found"`
}

func (c *Client) DetectUrgency(ctx context.Context, text string) (*Urgency, error) {
	var result Urgency
	if err := c.post(ctx, "/detect-urgency", map[string]string{"text": text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
