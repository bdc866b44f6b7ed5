package repository

import (
	"context"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
)

func (r *Repository) GetCompanyByID(id int64) (*domain.Company, error) {
	query := `
		SELECT id, name, email, created_at, version
		FROM companies
		WHERE id = $1
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	var company domain.Company
	dst := []any{&company.ID, &company.Name, &company.Email, &company.CreatedAt, &company.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return &company, nil
}

func (r *Repository) InsertCompany(company *domain.Company) error {
	query := `
		INSERT INTO companies (name, email)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext(context.Background())
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, company.Name, company.Email).Scan(&company.ID, &company.CreatedAt, &company.Version); err != nil {
		return err
	}

	return nil
}
