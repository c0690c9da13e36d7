package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Los servicios envuelven estos centinelas con fmt.Errorf("%w: ...") para
// añadir la razón concreta; los handlers HTTP los mapean con errors.Is.
var (
	// ErrNotFound recurso referenciado inexistente o soft-deleted.
	ErrNotFound = errors.New("recurso no encontrado")

	// ErrInvalidState confirm() sobre un documento que no está en DRAFT.
	ErrInvalidState = errors.New("documento no está en estado DRAFT")

	// ErrValidation precondición estructural violada (sin líneas, paid > total,
	// cantidad cero, cuentas iguales en una transferencia).
	ErrValidation = errors.New("entrada inválida")

	// ErrInvariant un saldo quedaría negativo (stock) o cruzaría un signo
	// prohibido (cash). Aborta la transacción completa.
	ErrInvariant = errors.New("invariante de saldo violada")

	// ErrUnsupportedAggregate un movement engine recibió un tipo de documento
	// que no reconoce. Error de programación, no de usuario.
	ErrUnsupportedAggregate = errors.New("aggregate no soportado para movimiento")

	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrNameAlreadyExists = errors.New("el nombre ya está registrado")
)
