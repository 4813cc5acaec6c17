package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ItemCodeRepository manages catalog persistence.
type ItemCodeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ItemCode, error)
	List(ctx context.Context) ([]domain.ItemCode, error)
}

type itemCodeRepository struct {
	pool *pgxpool.Pool
}

// NewItemCodeRepository builds the repository.
func NewItemCodeRepository(pool *pgxpool.Pool) ItemCodeRepository {
	return &itemCodeRepository{pool: pool}
}

func (r *itemCodeRepository) GetByID(ctx context.Context, id int64) (*domain.ItemCode, error) {
	const query = `
        SELECT id, codigo, tipo, descripcion
        FROM item_codes WHERE id=$1`

	var code domain.ItemCode
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&code.ID,
		&code.Codigo,
		&code.Tipo,
		&code.Descripcion,
	); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *itemCodeRepository) List(ctx context.Context) ([]domain.ItemCode, error) {
	const query = `
        SELECT id, codigo, tipo, descripcion
        FROM item_codes ORDER BY codigo`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ItemCode
	for rows.Next() {
		var code domain.ItemCode
		if err := rows.Scan(&code.ID, &code.Codigo, &code.Tipo, &code.Descripcion); err != nil {
			return nil, err
		}
		result = append(result, code)
	}
	return result, rows.Err()
}
