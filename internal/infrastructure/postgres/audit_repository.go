package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
)

var (
	_ repository.AuditRepository        = (*AuditRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)

// AuditRepo registra eventos de auditoría en PostgreSQL.
type AuditRepo struct {
	pool *pgxpool.Pool
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Log inserta una entrada de auditoría.
func (r *AuditRepo) Log(ctx context.Context, action, scope, detail string) error {
	query := `
		INSERT INTO audit_log (id, action, scope, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, uuid.New().String(), action, scope, detail, time.Now())
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// NotificationRepo registra notificaciones internas en PostgreSQL.
type NotificationRepo struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository construye el adaptador de notificaciones.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// Log inserta una entrada de notificación.
func (r *NotificationRepo) Log(ctx context.Context, entry string) error {
	query := `
		INSERT INTO notifications (id, entry, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, uuid.New().String(), entry, time.Now())
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}
