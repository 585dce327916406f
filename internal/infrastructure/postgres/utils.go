package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const codeUniqueViolation = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// nullIfEmpty mapea "" a NULL para columnas opcionales (patient_id, sale_id, created_by).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// orEmpty deshace nullIfEmpty al escanear.
func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
