package repository

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByIDs(ctx context.Context, categoryIDs []string) ([]model.Category, error) {
	categories := []model.Category{}
	if len(categoryIDs) == 0 {
		return categories, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM categories WHERE id IN (?)`, categoryIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	if err := r.DB.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, err
	}
	return categories, nil
}
