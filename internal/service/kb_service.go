package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const (
	publishedCacheKey = "kb:published"
	publishedCacheTTL = 5 * time.Minute

	// DefaultRetrievalLimit caps how many articles one triage run may cite.
	DefaultRetrievalLimit = 3
)

// KBService manages knowledge-base articles and serves the retrieval step of
// the triage pipeline.
type KBService struct {
	articles repository.ArticleRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewKBService creates the service. cache may be nil.
func NewKBService(articles repository.ArticleRepository, cache *redis.Client, logger *zap.Logger) *KBService {
	return &KBService{articles: articles, cache: cache, logger: logger}
}

// ArticleInput describes creation/update payloads.
type ArticleInput struct {
	Title  string
	Body   string
	Tags   []string
	Status domain.ArticleStatus
}

// CreateArticle stores a new article.
func (s *KBService) CreateArticle(ctx context.Context, input ArticleInput) (*domain.Article, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Body) == "" {
		return nil, apperrors.NewValidationError("title and body required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.ArticleStatusDraft
	}
	if status != domain.ArticleStatusDraft && status != domain.ArticleStatusPublished {
		return nil, apperrors.NewValidationError("invalid status", nil)
	}

	article := &domain.Article{
		Title:  strings.TrimSpace(input.Title),
		Body:   input.Body,
		Tags:   input.Tags,
		Status: status,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return article, nil
}

// UpdateArticle overwrites an existing article.
func (s *KBService) UpdateArticle(ctx context.Context, id string, input ArticleInput) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		article.Title = strings.TrimSpace(input.Title)
	}
	if input.Body != "" {
		article.Body = input.Body
	}
	if input.Tags != nil {
		article.Tags = input.Tags
	}
	if input.Status != "" {
		if input.Status != domain.ArticleStatusDraft && input.Status != domain.ArticleStatusPublished {
			return nil, apperrors.NewValidationError("invalid status", nil)
		}
		article.Status = input.Status
	}
	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return article, nil
}

// DeleteArticle removes an article.
func (s *KBService) DeleteArticle(ctx context.Context, id string) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// GetArticle fetches one article, hiding drafts from non-staff callers.
func (s *KBService) GetArticle(ctx context.Context, id string, includeDrafts bool) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != domain.ArticleStatusPublished && !includeDrafts {
		return nil, apperrors.NewNotFound("article", nil)
	}
	return article, nil
}

// ListArticles returns articles, restricted to published ones unless the
// caller is an admin. The unfiltered published listing is served from a
// best-effort redis cache.
func (s *KBService) ListArticles(ctx context.Context, searchTerm string, includeDrafts bool) ([]domain.Article, error) {
	searchTerm = strings.TrimSpace(searchTerm)

	if !includeDrafts && searchTerm == "" {
		if cached, ok := s.cachedPublished(ctx); ok {
			return cached, nil
		}
	}

	filter := repository.ArticleFilter{PublishedOnly: !includeDrafts}
	if searchTerm != "" {
		filter.SearchTerm = &searchTerm
	}
	articles, err := s.articles.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	if !includeDrafts && searchTerm == "" {
		s.storePublished(ctx, articles)
	}
	return articles, nil
}

// Retrieve selects up to limit published articles for the triage pipeline:
// an article matches when its title contains any whitespace token of the
// ticket title (case-insensitive) or its tags contain the predicted category.
// No relevance ranking is applied; ordering is the store's natural order.
func (s *KBService) Retrieve(ctx context.Context, ticketTitle string, category domain.TicketCategory, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}
	tokens := strings.Fields(ticketTitle)
	return s.articles.FindPublished(ctx, tokens, string(category), limit)
}

func (s *KBService) cachedPublished(ctx context.Context) ([]domain.Article, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, publishedCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var articles []domain.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, false
	}
	return articles, true
}

func (s *KBService) storePublished(ctx context.Context, articles []domain.Article) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(articles)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, publishedCacheKey, raw, publishedCacheTTL).Err(); err != nil {
		s.logger.Debug("kb cache store failed", zap.Error(err))
	}
}

func (s *KBService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, publishedCacheKey).Err(); err != nil {
		s.logger.Debug("kb cache invalidate failed", zap.Error(err))
	}
}
