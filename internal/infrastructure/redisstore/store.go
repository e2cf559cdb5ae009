// Package redisstore implementa el almacén de sesiones sobre Redis: un
// registro serializado por sesión, con TTL opcional.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/pkg/config"
	"github.com/tu-usuario/agendapos/pkg/logger"
)

var _ session.Store = (*Store)(nil)

// Store almacén de sesiones sobre Redis.
type Store struct {
	db  *redis.Client
	cfg config.RedisConfig
	log *logger.Logger
}

// New conecta a Redis y verifica la conexión con un ping.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*Store, error) {
	db := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{db: db, cfg: cfg, log: log}, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Restore lee y decodifica el registro de sesión. Una clave ausente o un
// registro que no decodifica producen (nil, nil): "no autenticado", nunca un
// error que cruce esta frontera. Error solo ante fallo de infraestructura.
func (s *Store) Restore(ctx context.Context, sessionID string) (*session.Record, error) {
	val, err := s.db.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var rec session.Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		// Registro corrupto: equivale a sesión inexistente.
		s.log.Warn().Err(err).Msg("registro de sesión corrupto, se descarta")
		return nil, nil
	}
	return &rec, nil
}

// Persist serializa el registro completo, incluido el puntero de sucursal
// activa cuando existe.
func (s *Store) Persist(ctx context.Context, sessionID string, rec *session.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.db.Set(ctx, sessionKey(sessionID), data, s.cfg.SessionTTL).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Clear elimina el registro; borrar una clave inexistente no es error.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.db.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}
