package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const (
	baseConfidence = 0.4
	matchFloor     = 0.7
	matchScale     = 0.25
	maxConfidence  = 0.99

	contentPreviewLen = 60

	fallbackReply = "Hello,\n\nThank you for reaching out. We are looking into your issue and will get back to you shortly. We couldn't find any specific articles related to your problem at this moment.\n\nBest,\nYour AI Assistant"
)

// categoryPatterns maps each classifiable category to its keyword set. The
// slice keeps category iteration deterministic.
var categoryPatterns = []struct {
	category domain.TicketCategory
	keywords *regexp.Regexp
}{
	{domain.CategoryBilling, regexp.MustCompile(`\b(refund|invoice|charge|payment|bill|double charge)\b`)},
	{domain.CategoryTech, regexp.MustCompile(`\b(error|bug|stack|crash|500|fail|not working|login)\b`)},
	{domain.CategoryShipping, regexp.MustCompile(`\b(delivery|shipment|package|track|where is|late)\b`)},
}

// KeywordProvider is the deterministic reference Provider. It holds no state
// beyond the fixed keyword tables, so identical input always yields identical
// output.
type KeywordProvider struct{}

// NewKeywordProvider returns the stub provider.
func NewKeywordProvider() *KeywordProvider {
	return &KeywordProvider{}
}

// Name identifies the provider in suggestion provenance.
func (p *KeywordProvider) Name() string { return "stub" }

// Classify counts keyword matches per category. The category with the
// strictly highest count wins; ties and all-zero counts resolve to "other".
func (p *KeywordProvider) Classify(_ context.Context, text string) (ClassificationResult, error) {
	lower := strings.ToLower(text)

	total := 0
	best := 0
	tied := false
	predicted := domain.CategoryOther

	for _, entry := range categoryPatterns {
		count := len(entry.keywords.FindAllString(lower, -1))
		total += count
		switch {
		case count > best:
			best = count
			predicted = entry.category
			tied = false
		case count == best && count > 0:
			tied = true
		}
	}

	if tied {
		// no strict winner, so the winning-share term is undefined
		return ClassificationResult{PredictedCategory: domain.CategoryOther, Confidence: baseConfidence}, nil
	}

	confidence := baseConfidence
	if total > 0 && best > 0 {
		confidence = matchFloor + (float64(best)/float64(total))*matchScale
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return ClassificationResult{PredictedCategory: predicted, Confidence: confidence}, nil
}

// Draft composes a templated reply enumerating each article title in order.
// With no articles it falls back to a fixed message and empty citations.
func (p *KeywordProvider) Draft(_ context.Context, ticketContent string, articles []domain.Article) (DraftResult, error) {
	if len(articles) == 0 {
		return DraftResult{DraftReply: fallbackReply, Citations: []string{}}, nil
	}

	preview := ticketContent
	if runes := []rune(preview); len(runes) > contentPreviewLen {
		// cut on rune boundaries so a multi-byte character is never split
		preview = string(runes[:contentPreviewLen]) + "..."
	}

	var list strings.Builder
	citations := make([]string, 0, len(articles))
	for i, article := range articles {
		if i > 0 {
			list.WriteString("\n")
		}
		fmt.Fprintf(&list, "  %d. \"%s\"", i+1, article.Title)
		citations = append(citations, article.ID)
	}

	reply := fmt.Sprintf(
		"Hello,\n\nThank you for your query regarding: \"%s\".\n\nBased on your question, we found some articles that might help:\n%s\n\nPlease review them and let us know if they resolve your issue. If not, a support agent will get back to you.\n\nBest,\nYour AI Assistant",
		preview, list.String())

	return DraftResult{DraftReply: reply, Citations: citations}, nil
}
