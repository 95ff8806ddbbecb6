package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	intdb "jenjangkarir/internal/db"
	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/utils"
)

type ArticleRepository struct {
	Conn
}

func (r ArticleRepository) GetBySlug(ctx context.Context, slug string) (models.Article, error) {
	var a models.Article
	err := r.db().QueryRowContext(ctx, r.rebind(`SELECT a.id, a.slug, a.title, COALESCE(a.category,''),
		COALESCE(a.excerpt,''), COALESCE(a.cover_url,''), COALESCE(a.author,''), a.published_at,
		COALESCE(a.content,'')
		FROM articles a WHERE a.slug = ? LIMIT 1`), strings.TrimSpace(slug)).
		Scan(&a.ID, &a.Slug, &a.Title, &a.Category, &a.Excerpt, &a.CoverURL, &a.Author, &a.PublishedAt, &a.Content)
	return a, err
}

// Create stores an article with a precomputed plain-text excerpt.
func (r ArticleRepository) Create(ctx context.Context, in models.ArticleInput, excerpt string) (int64, string, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := r.insert(ctx, tx, `INSERT INTO articles
		(slug, title, category, excerpt, content, cover_url, author, published_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		fmt.Sprintf("draft-%d", time.Now().UnixNano()), in.Title, intdb.NullIfEmpty(in.Category),
		excerpt, in.Content, intdb.NullIfEmpty(in.CoverURL), intdb.NullIfEmpty(in.Author), time.Now())
	if err != nil {
		return 0, "", err
	}
	slug := utils.SlugWithID(in.Title, id)
	if _, err := tx.ExecContext(ctx, r.rebind(`UPDATE articles SET slug = ? WHERE id = ?`), slug, id); err != nil {
		return 0, "", err
	}
	return id, slug, tx.Commit()
}

func (r ArticleRepository) Update(ctx context.Context, id int64, in models.ArticleInput, excerpt string) error {
	return affected(r.db().ExecContext(ctx, r.rebind(`UPDATE articles SET
		title = ?, category = ?, excerpt = ?, content = ?, cover_url = ?, author = ?
		WHERE id = ?`),
		in.Title, intdb.NullIfEmpty(in.Category), excerpt, in.Content,
		intdb.NullIfEmpty(in.CoverURL), intdb.NullIfEmpty(in.Author), id))
}

func (r ArticleRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db().ExecContext(ctx, r.rebind(`DELETE FROM articles WHERE id = ?`), id))
}

func (r ArticleRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db(), "articles")
}
