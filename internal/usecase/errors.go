package usecase

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrGapNotFound        = errors.New("skill gap not found")
	ErrMetricsNotFound    = errors.New("skill metrics not found")
	ErrInvalidLevel       = errors.New("invalid proficiency level")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
	ErrPrerequisiteCycle  = errors.New("prerequisite would create a cycle")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal error")
)

const (
	minLevel = 1
	maxLevel = 5
)

func isValidLevel(v int) bool {
	return v >= minLevel && v <= maxLevel
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
