package repository

import (
	"context"

	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

// PosRepository define el puerto de lectura del directorio de sucursales.
// Este núcleo nunca escribe sucursales; solo las consulta para vincular
// sesiones y resolver referidos. GetByID devuelve (nil, nil) si no existe.
type PosRepository interface {
	List(ctx context.Context) ([]*entity.PointOfSale, error)
	GetByID(ctx context.Context, id int) (*entity.PointOfSale, error)
}
