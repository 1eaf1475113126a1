package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/tienda-api/internal/domain"
)

const service = "postgres"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// upstream envuelve un error de la base como domain.UpstreamError.
func upstream(op string, err error) error {
	return domain.Upstream(service, op, err)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar funciones scan*.
type pgxScanner interface {
	Scan(dest ...any) error
}
