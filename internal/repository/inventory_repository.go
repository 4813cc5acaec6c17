package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// InventoryRepository encapsulates inventory item persistence. Reads return
// the composite record (item + catalog entry + optional assignee) assembled
// by the store in a single round trip.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	GetRecord(ctx context.Context, id int64) (*domain.InventoryRecord, error)
	List(ctx context.Context) ([]domain.InventoryRecord, error)
	ListByAssignee(ctx context.Context, userID int64) ([]domain.InventoryRecord, error)
	Delete(ctx context.Context, id int64) error
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository instantiates repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

// IsUniqueViolation reports whether the error is a unique constraint
// violation, e.g. a duplicate serial number.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        INSERT INTO inventory_items (sn, item_code_id, tipo_servicio, estado_actual, asignado_a_id, terminal_comercio)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, fecha_ingreso`
	return r.pool.QueryRow(ctx, query,
		item.SN,
		item.ItemCodeID,
		item.TipoServicio,
		item.EstadoActual,
		item.AssignedToID,
		item.TerminalComercio,
	).Scan(&item.ID, &item.FechaIngreso)
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        UPDATE inventory_items SET sn=$1, item_code_id=$2, tipo_servicio=$3,
            estado_actual=$4, asignado_a_id=$5, terminal_comercio=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		item.SN,
		item.ItemCodeID,
		item.TipoServicio,
		item.EstadoActual,
		item.AssignedToID,
		item.TerminalComercio,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	const query = `
        SELECT id, fecha_ingreso, sn, item_code_id, tipo_servicio, estado_actual, asignado_a_id, terminal_comercio
        FROM inventory_items WHERE id=$1`

	var item domain.InventoryItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.FechaIngreso,
		&item.SN,
		&item.ItemCodeID,
		&item.TipoServicio,
		&item.EstadoActual,
		&item.AssignedToID,
		&item.TerminalComercio,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

const recordQuery = `
        SELECT i.id, i.fecha_ingreso, i.sn, i.item_code_id, i.tipo_servicio, i.estado_actual,
               i.asignado_a_id, i.terminal_comercio,
               ic.codigo, ic.tipo, ic.descripcion,
               u.id, u.username, u.full_name, u.is_admin, u.created_at
        FROM inventory_items i
        JOIN item_codes ic ON i.item_code_id = ic.id
        LEFT JOIN users u ON i.asignado_a_id = u.id`

func (r *inventoryRepository) GetRecord(ctx context.Context, id int64) (*domain.InventoryRecord, error) {
	rows, err := r.pool.Query(ctx, recordQuery+` WHERE i.id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &records[0], nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	rows, err := r.pool.Query(ctx, recordQuery+` ORDER BY i.fecha_ingreso DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *inventoryRepository) ListByAssignee(ctx context.Context, userID int64) ([]domain.InventoryRecord, error) {
	rows, err := r.pool.Query(ctx, recordQuery+` WHERE i.asignado_a_id=$1 ORDER BY i.fecha_ingreso DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRecords(rows pgx.Rows) ([]domain.InventoryRecord, error) {
	var result []domain.InventoryRecord
	for rows.Next() {
		var (
			record       domain.InventoryRecord
			userID       *int64
			userUsername *string
			userFullName *string
			userIsAdmin  *bool
			userCreated  *time.Time
		)
		if err := rows.Scan(
			&record.Item.ID,
			&record.Item.FechaIngreso,
			&record.Item.SN,
			&record.Item.ItemCodeID,
			&record.Item.TipoServicio,
			&record.Item.EstadoActual,
			&record.Item.AssignedToID,
			&record.Item.TerminalComercio,
			&record.ItemCode.Codigo,
			&record.ItemCode.Tipo,
			&record.ItemCode.Descripcion,
			&userID,
			&userUsername,
			&userFullName,
			&userIsAdmin,
			&userCreated,
		); err != nil {
			return nil, err
		}
		record.ItemCode.ID = record.Item.ItemCodeID
		if userID != nil {
			record.Assignee = &domain.User{
				ID:        *userID,
				Username:  *userUsername,
				FullName:  *userFullName,
				IsAdmin:   *userIsAdmin,
				CreatedAt: *userCreated,
			}
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
