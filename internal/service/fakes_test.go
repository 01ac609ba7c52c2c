package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/agent"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// In-memory fakes for the repository interfaces. Each guards its state with a
// mutex so tests exercising the async entry points stay race-free.

type fakeTicketRepo struct {
	mu        sync.Mutex
	tickets   map[string]*domain.Ticket
	createErr error
	updateErr error
	seq       int
}

func newFakeTicketRepo(tickets ...*domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
	for _, t := range tickets {
		copied := *t
		repo.tickets[t.ID] = &copied
	}
	return repo
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if ticket.ID == "" {
		r.seq++
		ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.tickets[ticket.ID]; !ok {
		return apperrors.NewNotFound("ticket", nil)
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if filter.CreatedByID != nil && ticket.CreatedByID != *filter.CreatedByID {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if ticket.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) get(id string) *domain.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil
	}
	copied := *ticket
	return &copied
}

type fakeSuggestionRepo struct {
	mu          sync.Mutex
	suggestions []*domain.AgentSuggestion
	createErr   error
	seq         int
}

func (r *fakeSuggestionRepo) Create(_ context.Context, suggestion *domain.AgentSuggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	suggestion.ID = fmt.Sprintf("suggestion-%d", r.seq)
	copied := *suggestion
	r.suggestions = append(r.suggestions, &copied)
	return nil
}

func (r *fakeSuggestionRepo) MarkAutoClosed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, suggestion := range r.suggestions {
		if suggestion.ID == id {
			suggestion.AutoClosed = true
			return nil
		}
	}
	return apperrors.NewNotFound("suggestion", nil)
}

func (r *fakeSuggestionRepo) GetLatestByTicket(_ context.Context, ticketID string) (*domain.AgentSuggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.suggestions) - 1; i >= 0; i-- {
		if r.suggestions[i].TicketID == ticketID {
			copied := *r.suggestions[i]
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFound("suggestion", nil)
}

func (r *fakeSuggestionRepo) latest() *domain.AgentSuggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.suggestions) == 0 {
		return nil
	}
	copied := *r.suggestions[len(r.suggestions)-1]
	return &copied
}

type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []domain.AuditLog
	appendErr error
}

func (r *fakeAuditRepo) Append(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditLog, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.Action)
	}
	return out
}

type fakeArticleRepo struct {
	mu       sync.Mutex
	articles []domain.Article
	findErr  error

	lastTokens []string
	lastTag    string
	lastLimit  int
}

func (r *fakeArticleRepo) Create(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles = append(r.articles, *article)
	return nil
}

func (r *fakeArticleRepo) Update(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.articles {
		if r.articles[i].ID == article.ID {
			r.articles[i] = *article
			return nil
		}
	}
	return apperrors.NewNotFound("article", nil)
}

func (r *fakeArticleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.articles {
		if r.articles[i].ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFound("article", nil)
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.articles {
		if r.articles[i].ID == id {
			copied := r.articles[i]
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFound("article", nil)
}

func (r *fakeArticleRepo) ListWithFilter(_ context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Article, 0, len(r.articles))
	for _, article := range r.articles {
		if filter.PublishedOnly && article.Status != domain.ArticleStatusPublished {
			continue
		}
		out = append(out, article)
	}
	return out, nil
}

func (r *fakeArticleRepo) FindPublished(_ context.Context, titleTokens []string, tag string, limit int) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastTokens = titleTokens
	r.lastTag = tag
	r.lastLimit = limit
	if r.findErr != nil {
		return nil, r.findErr
	}
	if len(titleTokens) == 0 && tag == "" {
		return nil, nil
	}
	out := make([]domain.Article, 0, limit)
	for _, article := range r.articles {
		if article.Status != domain.ArticleStatusPublished {
			continue
		}
		if !articleMatches(article, titleTokens, tag) {
			continue
		}
		out = append(out, article)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func articleMatches(article domain.Article, titleTokens []string, tag string) bool {
	title := strings.ToLower(article.Title)
	for _, token := range titleTokens {
		if strings.Contains(title, strings.ToLower(token)) {
			return true
		}
	}
	for _, t := range article.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type fakeConfigRepo struct {
	mu     sync.Mutex
	cfg    *domain.TriageConfig
	getErr error
}

func (r *fakeConfigRepo) Get(_ context.Context) (*domain.TriageConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.cfg == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *r.cfg
	return &copied, nil
}

func (r *fakeConfigRepo) Upsert(_ context.Context, cfg *domain.TriageConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cfg
	r.cfg = &copied
	return nil
}

// staticConfig satisfies ConfigReader with a fixed value.
type staticConfig struct {
	cfg domain.TriageConfig
	err error
}

func (c staticConfig) Get(context.Context) (domain.TriageConfig, error) {
	return c.cfg, c.err
}

// staticRetriever satisfies Retriever with a canned article list.
type staticRetriever struct {
	articles []domain.Article
	err      error
}

func (r staticRetriever) Retrieve(context.Context, string, domain.TicketCategory, int) ([]domain.Article, error) {
	return r.articles, r.err
}

// stubProvider returns scripted classification and draft results.
type stubProvider struct {
	classification agent.ClassificationResult
	classifyErr    error
	draft          agent.DraftResult
	draftErr       error
}

func (p stubProvider) Name() string { return "stub" }

func (p stubProvider) Classify(context.Context, string) (agent.ClassificationResult, error) {
	return p.classification, p.classifyErr
}

func (p stubProvider) Draft(context.Context, string, []domain.Article) (agent.DraftResult, error) {
	return p.draft, p.draftErr
}
