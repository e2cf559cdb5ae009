package repository

import "context"

// AuditRepository registra eventos de auditoría (por ejemplo el acceso del
// dueño de la plataforma). Un fallo de auditoría no debe tumbar el flujo que
// lo origina; el llamador decide si lo ignora o lo registra en el log.
type AuditRepository interface {
	Log(ctx context.Context, action, scope, detail string) error
}

// NotificationRepository registra entradas de notificación interna
// (altas de clientes, avisos operativos).
type NotificationRepository interface {
	Log(ctx context.Context, entry string) error
}
