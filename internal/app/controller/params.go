package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/dmaier/beerlog-backend/internal/errors"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
)

// parseListOptions decodes the common filter/sort/pagination query
// parameters. On a malformed parameter it responds 400 and returns false.
func parseListOptions(c *gin.Context) (repository.ListOptions, bool) {
	opts := repository.ListOptions{
		Name:    c.Query("name"),
		OrderBy: c.Query("orderby"),
		Order:   c.Query("order"),
	}

	if raw := c.Query("identifier"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "identifier must be a valid UUID")
			return opts, false
		}
		opts.Identifier = &id
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			apperrors.BadRequest(c, apperrors.QueryInvalidOffset, "offset must be a non-negative integer")
			return opts, false
		}
		opts.Offset = offset
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			apperrors.BadRequest(c, apperrors.QueryInvalidLimit, "limit must be a non-negative integer")
			return opts, false
		}
		opts.Limit = limit
	}

	return opts, true
}

// resolveIdentifier reads the name/identifier pair used by patch and
// delete. At least one is required; name wins when both are given. On a
// missing or malformed identifier it responds 400 and returns false.
func resolveIdentifier(c *gin.Context) (*uuid.UUID, string, bool) {
	name := c.Query("name")
	raw := c.Query("identifier")

	if name == "" && raw == "" {
		apperrors.BadRequest(c, apperrors.QueryMissingIdentifier, "a name or identifier query parameter is required")
		return nil, "", false
	}

	var id *uuid.UUID
	if raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "identifier must be a valid UUID")
			return nil, "", false
		}
		id = &parsed
	}

	return id, name, true
}

// respondQueryError maps repository query-shape errors to 400 responses.
// Returns true when the error was handled.
func respondQueryError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, repository.ErrInvalidOrderBy):
		apperrors.BadRequest(c, apperrors.QueryInvalidOrderBy, "the column you are sorting by does not exist")
	case errors.Is(err, repository.ErrInvalidOrder):
		apperrors.BadRequest(c, apperrors.QueryInvalidOrder, "order options are asc and desc")
	case errors.Is(err, repository.ErrNegativeOffset):
		apperrors.BadRequest(c, apperrors.QueryInvalidOffset, "offset must not be negative")
	case errors.Is(err, repository.ErrMissingIdentifier):
		apperrors.BadRequest(c, apperrors.QueryMissingIdentifier, "a name or identifier query parameter is required")
	default:
		return false
	}
	return true
}

// DeleteResponse is the payload for successful deletes.
type DeleteResponse struct {
	OK bool `json:"ok"`
}
