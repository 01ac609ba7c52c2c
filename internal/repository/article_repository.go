package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ArticleFilter captures knowledge-base listing parameters.
type ArticleFilter struct {
	PublishedOnly bool
	SearchTerm    *string
	Limit         int
	Offset        int
}

// ArticleRepository encapsulates knowledge-base persistence.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	FindPublished(ctx context.Context, titleTokens []string, tag string, limit int) ([]domain.Article, error)
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository instantiates repository.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `id, title, body, tags, status, created_at, updated_at`

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	const query = `
        INSERT INTO articles (title, body, tags, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Body,
		article.Tags,
		article.Status,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	const query = `
        UPDATE articles SET title=$1, body=$2, tags=$3, status=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		article.Title,
		article.Body,
		article.Tags,
		article.Status,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id=$1`, articleColumns)
	var article domain.Article
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Body,
		&article.Tags,
		&article.Status,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PublishedOnly {
		args = append(args, domain.ArticleStatusPublished)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(body) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		articleColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// FindPublished returns published articles whose title contains any of the
// given tokens (case-insensitive) or whose tag set contains tag, in natural
// insertion order, capped at limit.
func (r *articleRepository) FindPublished(ctx context.Context, titleTokens []string, tag string, limit int) ([]domain.Article, error) {
	args := []any{domain.ArticleStatusPublished}
	match := []string{}

	for _, token := range titleTokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		args = append(args, "%"+token+"%")
		match = append(match, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)))
	}
	if tag != "" {
		args = append(args, tag)
		match = append(match, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if len(match) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE status=$1 AND (%s) ORDER BY created_at ASC LIMIT %d`,
		articleColumns, strings.Join(match, " OR "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var result []domain.Article
	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Body,
			&article.Tags,
			&article.Status,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}
