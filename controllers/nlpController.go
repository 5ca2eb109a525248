package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// The NLP routes expose the text-analysis service directly, so unlike the
// creation-path enrichment a collaborator failure here is surfaced.

func bindAnalysisText(c *gin.Context) (string, bool) {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return "", false
	}
	if len(strings.TrimSpace(input.Text)) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text must be at least 3 characters long"})
		return "", false
	}
	return input.Text, true
}

// AnalyzeComplaintText runs classification, summarization and urgency
// detection in one call.
func AnalyzeComplaintText(c *gin.Context) {
	text, ok := bindAnalysisText(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := aiClient.AnalyzeText(ctx, text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Text analysis service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Text analysis completed successfully",
		"analysis": result,
	})
}

// ClassifyComplaintText classifies complaint text into issue categories.
func ClassifyComplaintText(c *gin.Context) {
	text, ok := bindAnalysisText(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := aiClient.ClassifyText(ctx, text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Text analysis service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Text classification completed",
		"classification": result,
	})
}

// SummarizeComplaintText condenses a long complaint into a one-liner.
func SummarizeComplaintText(c *gin.Context) {
	var input struct {
		Text      string `json:"text"`
		MaxLength int    `json:"max_length"`
		MinLength int    `json:"min_length"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if len(strings.TrimSpace(input.Text)) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text must be at least 3 characters long"})
		return
	}
	if input.MaxLength == 0 {
		input.MaxLength = 50
	}
	if input.MinLength == 0 {
		input.MinLength = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := aiClient.SummarizeText(ctx, input.Text, input.MaxLength, input.MinLength)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Text analysis service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Text summarization completed",
		"summary": result,
	})
}

// DetectComplaintUrgency extracts an urgency level from complaint text.
func DetectComplaintUrgency(c *gin.Context) {
	text, ok := bindAnalysisText(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := aiClient.DetectUrgency(ctx, text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Text analysis service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Urgency detection completed",
		"urgency": result,
	})
}

// BatchAnalyzeText analyzes a batch of texts for an admin, tallying per-item
// successes and failures instead of failing the whole batch.
func BatchAnalyzeText(c *gin.Context) {
	var input struct {
		Texts []string `json:"texts"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if len(input.Texts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "texts must be a non-empty array"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	type batchResult struct {
		Text     string      `json:"text"`
		Success  bool        `json:"success"`
		Analysis interface{} `json:"analysis,omitempty"`
		Error    string      `json:"error,omitempty"`
	}

	results := make([]batchResult, 0, len(input.Texts))
	successful := 0
	for _, text := range input.Texts {
		if len(strings.TrimSpace(text)) < 3 {
			continue
		}
		analysis, err := aiClient.AnalyzeText(ctx, text)
		if err != nil {
			results = append(results, batchResult{Text: text, Success: false, Error: err.Error()})
			continue
		}
		successful++
		results = append(results, batchResult{Text: text, Success: true, Analysis: analysis})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Batch analysis completed",
		"total":      len(input.Texts),
		"successful": successful,
		"failed":     len(results) - successful,
		"results":    results,
	})
}

// NlpStatus reports which models back the analysis endpoints.
func NlpStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "NLP Models Status",
		"models": gin.H{
			"Text Classification": "facebook/bart-large-mnli (zero-shot)",
			"Text Summarization":  "facebook/bart-large-cnn",
			"Urgency Detection":   "Keyword-based + Hugging Face",
		},
		"endpoints": gin.H{
			"/api/nlp/analyze":   "Comprehensive text analysis",
			"/api/nlp/classify":  "Text classification only",
			"/api/nlp/summarize": "Text summarization only",
			"/api/nlp/urgency":   "Urgency detection only",
			"/api/nlp/batch":     "Batch text analysis",
			"/api/nlp/status":    "NLP status and model info",
		},
		"version": "1.0",
	})
}
