package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a classified store error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseStoreError classifies an error coming out of the store layer into
// an error code and a safe message. entity names the record kind being
// operated on ("brewery", "beer", "review") and picks the not-found code.
func ParseStoreError(err error, entity string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "an internal error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: notFoundCode(entity), Message: entity + " not found"}
	}

	switch {
	case IsDuplicateKey(err):
		return ErrorInfo{Code: duplicateCode(entity), Message: entity + " already exists"}
	case IsForeignKeyViolation(err):
		return ErrorInfo{Code: InternalDatabaseError, Message: "related record constraint violated"}
	case IsCheckViolation(err):
		return ErrorInfo{Code: ReviewInvalidScore, Message: "score must be greater than 0 and at most 10"}
	}

	return ErrorInfo{Code: InternalDatabaseError, Message: "store operation failed"}
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// Matches both the postgres (23505) and sqlite wordings so the same
// check works in production and in tests.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// IsForeignKeyViolation reports whether err is a foreign key violation
// (postgres 23503 or the sqlite equivalent).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}

// IsCheckViolation reports whether err is a check constraint violation
// (postgres 23514 or the sqlite equivalent).
func IsCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "check constraint")
}

func notFoundCode(entity string) string {
	switch entity {
	case "brewery":
		return BreweryNotFound
	case "beer":
		return BeerNotFound
	case "review":
		return ReviewNotFound
	}
	return InternalDatabaseError
}

func duplicateCode(entity string) string {
	switch entity {
	case "brewery":
		return BreweryExists
	case "beer":
		return BeerExists
	case "review":
		return ReviewDuplicate
	}
	return InternalDatabaseError
}
