package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrInvalidPayload: la respuesta del backend no cumple el contrato (JSON o validación).
	ErrInvalidPayload = errors.New("payload del backend inválido")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrUpstream       = errors.New("backend no disponible")
)
