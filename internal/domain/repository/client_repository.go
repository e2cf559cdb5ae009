package repository

import (
	"context"

	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para fichas de cliente.
// El flujo de auto-registro es el único escritor dentro de este núcleo.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
}
