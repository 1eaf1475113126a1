package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrConflict indica que el registro cambió entre la lectura y la escritura.
	ErrConflict = errors.New("conflicto con el estado actual")
	ErrUpstream = errors.New("servicio externo no disponible")
)

// UpstreamError envuelve un fallo de un servicio externo (hoja de cálculo, base de datos,
// proveedor de pagos, mensajería). El detalle queda para los logs; al cliente solo llega
// la categoría.
type UpstreamError struct {
	Service string
	Op      string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrUpstream).
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// Upstream construye un UpstreamError. Devuelve nil si err es nil.
func Upstream(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Service: service, Op: op, Err: err}
}

// NotFoundError identifica qué recurso no existe (ej. código de producto).
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}
