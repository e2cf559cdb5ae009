package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrNoPasswordSet      = errors.New("el usuario no tiene contraseña asignada")
	ErrWrongPassword      = errors.New("contraseña incorrecta")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrTenantRequired     = errors.New("no tienes una sucursal asignada, contacta al administrador")
	ErrPosNotFound        = errors.New("punto de venta no encontrado")
	ErrPasswordRequired   = errors.New("un usuario nuevo requiere contraseña")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
