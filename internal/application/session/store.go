package session

import (
	"context"
	"sync"

	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

// Record es el registro de sesión serializado: la Identity normalizada más el
// puntero de sucursal activa. Es lo único que sobrevive a una recarga.
type Record struct {
	Identity    entity.Identity `json:"identity"`
	ActivePosID *int            `json:"active_pos_id,omitempty"`
}

// Store define el puerto del almacén de sesiones.
//
// Restore devuelve (nil, nil) cuando no existe registro o cuando el registro
// guardado no decodifica: un registro corrupto equivale a "no autenticado" y
// nunca propaga el fallo de decodificación al llamador. Error solo ante fallos
// de infraestructura (Redis caído, timeout).
// Clear es idempotente: borrar una sesión inexistente no es error.
type Store interface {
	Restore(ctx context.Context, sessionID string) (*Record, error)
	Persist(ctx context.Context, sessionID string, rec *Record) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore implementación en memoria de Store; se usa en tests y como
// fallback cuando no hay Redis configurado (p. ej. desarrollo local).
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// NewMemoryStore construye un almacén de sesiones en memoria.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: map[string]Record{}}
}

// Restore devuelve una copia del registro, o (nil, nil) si no existe.
func (s *MemoryStore) Restore(_ context.Context, sessionID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[sessionID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Persist guarda una copia del registro.
func (s *MemoryStore) Persist(_ context.Context, sessionID string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[sessionID] = *rec
	return nil
}

// Clear elimina el registro; es idempotente.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, sessionID)
	return nil
}
