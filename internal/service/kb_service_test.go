package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func newKBFixture(articles ...domain.Article) (*KBService, *fakeArticleRepo) {
	repo := &fakeArticleRepo{articles: articles}
	return NewKBService(repo, nil, zap.NewNop()), repo
}

func TestRetrieve_TokenizesTitle(t *testing.T) {
	t.Parallel()

	svc, repo := newKBFixture(
		domain.Article{ID: "a1", Title: "Understanding your invoice", Status: domain.ArticleStatusPublished},
		domain.Article{ID: "a2", Title: "Resetting your password", Status: domain.ArticleStatusPublished},
	)

	articles, err := svc.Retrieve(context.Background(), "invoice question", domain.CategoryBilling, 3)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}

	wantTokens := []string{"invoice", "question"}
	if len(repo.lastTokens) != len(wantTokens) {
		t.Fatalf("tokens = %v, want %v", repo.lastTokens, wantTokens)
	}
	for i := range wantTokens {
		if repo.lastTokens[i] != wantTokens[i] {
			t.Fatalf("tokens = %v, want %v", repo.lastTokens, wantTokens)
		}
	}
	if repo.lastTag != "billing" {
		t.Errorf("tag = %q, want billing", repo.lastTag)
	}
	if len(articles) != 1 || articles[0].ID != "a1" {
		t.Errorf("articles = %v, want just a1", articles)
	}
}

func TestRetrieve_DefaultsLimit(t *testing.T) {
	t.Parallel()

	svc, repo := newKBFixture()
	if _, err := svc.Retrieve(context.Background(), "anything", domain.CategoryOther, 0); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if repo.lastLimit != DefaultRetrievalLimit {
		t.Errorf("limit = %d, want %d", repo.lastLimit, DefaultRetrievalLimit)
	}
}

func TestRetrieve_CapsResultCount(t *testing.T) {
	t.Parallel()

	svc, _ := newKBFixture(
		domain.Article{ID: "a1", Title: "billing one", Status: domain.ArticleStatusPublished},
		domain.Article{ID: "a2", Title: "billing two", Status: domain.ArticleStatusPublished},
		domain.Article{ID: "a3", Title: "billing three", Status: domain.ArticleStatusPublished},
		domain.Article{ID: "a4", Title: "billing four", Status: domain.ArticleStatusPublished},
	)

	articles, err := svc.Retrieve(context.Background(), "billing", domain.CategoryBilling, 3)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("len(articles) = %d, want 3", len(articles))
	}
}

func TestRetrieve_SkipsDrafts(t *testing.T) {
	t.Parallel()

	svc, _ := newKBFixture(
		domain.Article{ID: "a1", Title: "invoice help", Status: domain.ArticleStatusDraft},
		domain.Article{ID: "a2", Title: "invoice guide", Status: domain.ArticleStatusPublished},
	)

	articles, err := svc.Retrieve(context.Background(), "invoice", domain.CategoryBilling, 3)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "a2" {
		t.Errorf("articles = %v, want just the published a2", articles)
	}
}

func TestRetrieve_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	svc, repo := newKBFixture()
	repo.findErr = errors.New("store down")

	if _, err := svc.Retrieve(context.Background(), "anything", domain.CategoryOther, 3); err == nil {
		t.Error("expected store error to propagate")
	}
}

func TestCreateArticle_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newKBFixture()

	if _, err := svc.CreateArticle(context.Background(), ArticleInput{Title: " ", Body: "b"}); err == nil {
		t.Error("expected validation error for blank title")
	}
	if _, err := svc.CreateArticle(context.Background(), ArticleInput{Title: "t", Body: "b", Status: "archived"}); err == nil {
		t.Error("expected validation error for unknown status")
	}

	article, err := svc.CreateArticle(context.Background(), ArticleInput{Title: "  Guide  ", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if article.Title != "Guide" {
		t.Errorf("title = %q, want trimmed", article.Title)
	}
	if article.Status != domain.ArticleStatusDraft {
		t.Errorf("status = %q, want default draft", article.Status)
	}
}

func TestGetArticle_HidesDraftsFromNonStaff(t *testing.T) {
	t.Parallel()

	svc, _ := newKBFixture(
		domain.Article{ID: "a1", Title: "Draft guide", Status: domain.ArticleStatusDraft},
	)

	if _, err := svc.GetArticle(context.Background(), "a1", false); err == nil {
		t.Error("expected not-found for draft article without draft access")
	} else {
		var de *apperrors.DomainError
		if !errors.As(err, &de) || de.Code != "NOT_FOUND" {
			t.Errorf("error = %v, want NOT_FOUND domain error", err)
		}
	}

	article, err := svc.GetArticle(context.Background(), "a1", true)
	if err != nil {
		t.Fatalf("get with draft access: %v", err)
	}
	if article.ID != "a1" {
		t.Errorf("article id = %q, want a1", article.ID)
	}
}
