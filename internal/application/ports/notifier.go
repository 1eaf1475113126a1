package ports

import "context"

// Notifier envía avisos de texto al dueño del negocio (chat).
// Los fallos no deben interrumpir la operación que originó el aviso.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
