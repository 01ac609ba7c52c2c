package agent

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	provider := NewKeywordProvider()
	text := "I got a double charge on my invoice and the app shows an error"

	first, err := provider.Classify(context.Background(), text)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := provider.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if again != first {
			t.Fatalf("classify not deterministic: run %d got %+v, want %+v", i, again, first)
		}
	}
}

func TestClassify_Categories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		wantCategory domain.TicketCategory
		minConf      float64
		maxConf      float64
	}{
		{
			name:         "billing keywords only",
			text:         "I got a double charge on my invoice",
			wantCategory: domain.CategoryBilling,
			minConf:      0.7,
			maxConf:      0.99,
		},
		{
			name:         "tech keywords only",
			text:         "The app is showing a 500 error and a stack trace",
			wantCategory: domain.CategoryTech,
			minConf:      0.7,
			maxConf:      0.99,
		},
		{
			name:         "shipping keywords only",
			text:         "my package is late, can you track the delivery",
			wantCategory: domain.CategoryShipping,
			minConf:      0.7,
			maxConf:      0.99,
		},
		{
			name:         "no keywords",
			text:         "Hello, I need some help.",
			wantCategory: domain.CategoryOther,
			minConf:      0.4,
			maxConf:      0.4,
		},
		{
			name:         "tie resolves to other",
			text:         "refund error",
			wantCategory: domain.CategoryOther,
			minConf:      0.4,
			maxConf:      0.4,
		},
		{
			name:         "mixed leans to dominant category",
			text:         "refund for the invoice payment, app shows error",
			wantCategory: domain.CategoryBilling,
			minConf:      0.7,
			maxConf:      0.99,
		},
	}

	provider := NewKeywordProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := provider.Classify(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if result.PredictedCategory != tt.wantCategory {
				t.Errorf("category = %q, want %q", result.PredictedCategory, tt.wantCategory)
			}
			if result.Confidence < tt.minConf || result.Confidence > tt.maxConf {
				t.Errorf("confidence = %v, want within [%v, %v]", result.Confidence, tt.minConf, tt.maxConf)
			}
		})
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"refund refund refund refund refund",
		"error bug crash 500 fail login bill package",
		strings.Repeat("invoice charge payment ", 50),
	}

	provider := NewKeywordProvider()
	for _, text := range texts {
		result, err := provider.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("classify(%q): %v", text, err)
		}
		if result.Confidence < 0.0 || result.Confidence > 0.99 {
			t.Errorf("classify(%q) confidence = %v, want within [0.0, 0.99]", text, result.Confidence)
		}
	}
}

func TestDraft_WithArticles(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: "a1", Title: "How to request a refund"},
		{ID: "a2", Title: "Understanding your invoice"},
		{ID: "a3", Title: "Payment methods"},
	}

	provider := NewKeywordProvider()
	result, err := provider.Draft(context.Background(), "Double charge: I was billed twice", articles)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	for _, article := range articles {
		if !strings.Contains(result.DraftReply, article.Title) {
			t.Errorf("reply missing article title %q", article.Title)
		}
	}
	if len(result.Citations) != len(articles) {
		t.Fatalf("citations len = %d, want %d", len(result.Citations), len(articles))
	}
	for i, article := range articles {
		if result.Citations[i] != article.ID {
			t.Errorf("citations[%d] = %q, want %q", i, result.Citations[i], article.ID)
		}
	}
}

func TestDraft_TruncatesLongContent(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 100)
	articles := []domain.Article{{ID: "a1", Title: "Some article"}}

	provider := NewKeywordProvider()
	result, err := provider.Draft(context.Background(), long, articles)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	want := strings.Repeat("x", 60) + "..."
	if !strings.Contains(result.DraftReply, want) {
		t.Errorf("reply does not contain the 60-char ellipsized preview")
	}
	if strings.Contains(result.DraftReply, strings.Repeat("x", 61)) {
		t.Errorf("reply contains more than 60 chars of the original content")
	}
}

func TestDraft_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// a 2-byte rune sits across the 60th byte; the cut must not split it
	long := strings.Repeat("x", 59) + "és and then some more text to force truncation"
	articles := []domain.Article{{ID: "a1", Title: "Some article"}}

	provider := NewKeywordProvider()
	result, err := provider.Draft(context.Background(), long, articles)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	if !utf8.ValidString(result.DraftReply) {
		t.Fatal("reply contains invalid UTF-8")
	}
	want := strings.Repeat("x", 59) + "é..."
	if !strings.Contains(result.DraftReply, want) {
		t.Errorf("reply does not contain the 60-rune ellipsized preview")
	}
}

func TestDraft_EmptyArticles(t *testing.T) {
	t.Parallel()

	provider := NewKeywordProvider()
	result, err := provider.Draft(context.Background(), "anything", nil)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if result.DraftReply != fallbackReply {
		t.Errorf("reply = %q, want fixed fallback", result.DraftReply)
	}
	if len(result.Citations) != 0 {
		t.Errorf("citations = %v, want empty", result.Citations)
	}
}
