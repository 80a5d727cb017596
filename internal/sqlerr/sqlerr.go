// Package sqlerr translates store errors into HTTP responses.
//
// Repositories and services return the driver's errors unchanged (wrapped
// with %w). Only the HTTP handlers call into this package, so the mapping to
// status codes lives at the edge of the service.
package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PostgreSQL SQLSTATE codes this package distinguishes.
const (
	UniqueViolation     pq.ErrorCode = "23505"
	ForeignKeyViolation pq.ErrorCode = "23503"
	NotNullViolation    pq.ErrorCode = "23502"
	CheckViolation      pq.ErrorCode = "23514"
)

// Error is the HTTP-facing view of a store error.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// Classify maps err to a status, a machine-readable code and a message that
// is safe to show to clients. entity names the resource the failing
// operation targeted and is used when the error does not name a table.
func Classify(err error, entity string) *Error {
	if errors.Is(err, sql.ErrNoRows) {
		return &Error{
			Status:  http.StatusNotFound,
			Code:    codeFor(entity, "NOT_FOUND"),
			Message: fmt.Sprintf("%s not found", humanize(entity)),
		}
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return internal()
	}

	table := entityName(pqErr.Table, "")
	if table == "" {
		table = entity
	}

	switch pqErr.Code {
	case UniqueViolation:
		field := uniqueColumn(pqErr.Constraint)
		if field == "" {
			field = "identifier"
		}
		return &Error{
			Status:  http.StatusConflict,
			Code:    codeFor(table, "ALREADY_EXISTS"),
			Message: fmt.Sprintf("A %s with this %s already exists", strings.ToLower(humanize(table)), strings.ToLower(humanize(field))),
		}

	case ForeignKeyViolation:
		referenced := referencedEntity(pqErr.Constraint, table)
		return &Error{
			Status:  http.StatusBadRequest,
			Code:    codeFor(referenced, "NOT_FOUND"),
			Message: fmt.Sprintf("The referenced %s does not exist", strings.ToLower(humanize(referenced))),
		}

	case NotNullViolation:
		column := humanize(pqErr.Column)
		if column == "" {
			column = "Field"
		}
		return &Error{
			Status:  http.StatusBadRequest,
			Code:    codeFor(table, "REQUIRED"),
			Message: fmt.Sprintf("%s is required", column),
		}

	case CheckViolation:
		return &Error{
			Status:  http.StatusBadRequest,
			Code:    codeFor(table, "INVALID"),
			Message: "One or more values do not meet required conditions",
		}
	}

	return internal()
}

func internal() *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

// codeFor builds codes like POST_NOT_FOUND or USER_ALREADY_EXISTS.
func codeFor(entity, action string) string {
	if entity == "" {
		entity = "record"
	}
	return strings.ToUpper(strings.ReplaceAll(entity, " ", "_")) + "_" + action
}

// entityName singularizes a table name: "posts" -> "post".
func entityName(table, fallback string) string {
	if table == "" {
		return fallback
	}
	if strings.HasSuffix(table, "s") && len(table) > 1 {
		return table[:len(table)-1]
	}
	return table
}

// uniqueColumn extracts "email" from PostgreSQL's default users_email_key naming.
func uniqueColumn(constraint string) string {
	if !strings.HasSuffix(constraint, "_key") {
		return ""
	}
	parts := strings.Split(strings.TrimSuffix(constraint, "_key"), "_")
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], "_")
}

// referencedEntity extracts "user" from posts_user_id_fkey.
func referencedEntity(constraint, fallback string) string {
	if !strings.HasSuffix(constraint, "_id_fkey") {
		return fallback
	}
	parts := strings.Split(strings.TrimSuffix(constraint, "_id_fkey"), "_")
	return parts[len(parts)-1]
}

func humanize(s string) string {
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
