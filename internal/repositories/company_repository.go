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

type CompanyRepository struct {
	Conn
}

func (r CompanyRepository) GetBySlug(ctx context.Context, slug string) (models.Company, error) {
	var c models.Company
	err := r.db().QueryRowContext(ctx, r.rebind(`SELECT co.id, co.slug, co.name, COALESCE(co.industry,''),
		COALESCE(co.size,''), COALESCE(co.location,''), COALESCE(co.logo_url,''),
		(SELECT COUNT(*) FROM jobs oj WHERE oj.company_id = co.id AND oj.status = 'active'),
		co.created_at, COALESCE(co.description,''), COALESCE(co.website,'')
		FROM companies co WHERE co.slug = ? LIMIT 1`), strings.TrimSpace(slug)).
		Scan(&c.ID, &c.Slug, &c.Name, &c.Industry, &c.Size, &c.Location, &c.LogoURL, &c.OpenJobs,
			&c.CreatedAt, &c.Description, &c.Website)
	return c, err
}

func (r CompanyRepository) Create(ctx context.Context, in models.CompanyInput) (int64, string, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := r.insert(ctx, tx, `INSERT INTO companies
		(slug, name, industry, size, location, description, logo_url, website, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		fmt.Sprintf("draft-%d", time.Now().UnixNano()), in.Name,
		intdb.NullIfEmpty(in.Industry), intdb.NullIfEmpty(in.Size), intdb.NullIfEmpty(in.Location),
		in.Description, intdb.NullIfEmpty(in.LogoURL), intdb.NullIfEmpty(in.Website), time.Now())
	if err != nil {
		return 0, "", err
	}
	slug := utils.SlugWithID(in.Name, id)
	if _, err := tx.ExecContext(ctx, r.rebind(`UPDATE companies SET slug = ? WHERE id = ?`), slug, id); err != nil {
		return 0, "", err
	}
	return id, slug, tx.Commit()
}

func (r CompanyRepository) Update(ctx context.Context, id int64, in models.CompanyInput) error {
	return affected(r.db().ExecContext(ctx, r.rebind(`UPDATE companies SET
		name = ?, industry = ?, size = ?, location = ?, description = ?, logo_url = ?, website = ?
		WHERE id = ?`),
		in.Name, intdb.NullIfEmpty(in.Industry), intdb.NullIfEmpty(in.Size), intdb.NullIfEmpty(in.Location),
		in.Description, intdb.NullIfEmpty(in.LogoURL), intdb.NullIfEmpty(in.Website), id))
}

func (r CompanyRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db().ExecContext(ctx, r.rebind(`DELETE FROM companies WHERE id = ?`), id))
}

func (r CompanyRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db(), "companies")
}
