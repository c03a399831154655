package repository

import (
	"context"

	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
)

const companiesTable = "companies"

type CompanyRepository interface {
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type companyRepository struct {
	db postgres.Queryer
}

func NewCompanyRepository(db postgres.Queryer) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	return namesByIDs(ctx, r.db, companiesTable, "name", ids)
}
