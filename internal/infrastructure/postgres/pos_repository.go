package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
)

var _ repository.PosRepository = (*PosRepo)(nil)

// PosRepo implementación del puerto PosRepository sobre PostgreSQL.
// El directorio de sucursales es de solo lectura para este servicio.
type PosRepo struct {
	pool *pgxpool.Pool
}

// NewPosRepository construye el adaptador de lectura del directorio.
func NewPosRepository(pool *pgxpool.Pool) *PosRepo {
	return &PosRepo{pool: pool}
}

// List devuelve las sucursales activas en orden estable por id. El orden
// importa: el superadmin se vincula a la primera del directorio.
func (r *PosRepo) List(ctx context.Context) ([]*entity.PointOfSale, error) {
	query := `
		SELECT id, name, address, owner_id, plan, is_active, created_at, updated_at
		FROM points_of_sale
		WHERE is_active
		ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list points of sale: %w", err)
	}
	defer rows.Close()

	var out []*entity.PointOfSale
	for rows.Next() {
		var p entity.PointOfSale
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Address, &p.OwnerID, &p.Plan, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan point of sale: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// GetByID obtiene una sucursal por id, o (nil, nil) si no existe.
func (r *PosRepo) GetByID(ctx context.Context, id int) (*entity.PointOfSale, error) {
	query := `
		SELECT id, name, address, owner_id, plan, is_active, created_at, updated_at
		FROM points_of_sale WHERE id = $1`
	var p entity.PointOfSale
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.OwnerID, &p.Plan, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get point of sale: %w", err)
	}
	return &p, nil
}
