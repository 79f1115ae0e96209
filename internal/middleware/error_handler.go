package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/transfer-calculator/internal/calculator"
	"github.com/anyulbade/transfer-calculator/internal/handoff"
	"github.com/anyulbade/transfer-calculator/internal/service"
	"github.com/anyulbade/transfer-calculator/internal/session"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError turns an error pushed with c.Error into a status and body.
func MapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, service.ErrUnsupportedCurrency),
		errors.Is(err, calculator.ErrInvalidAmount),
		errors.Is(err, calculator.ErrInvalidField),
		errors.Is(err, calculator.ErrPaymentMethodUnavailable):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, handoff.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	case errors.Is(err, calculator.ErrClosed):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	}
	return MapDBError(err)
}

func MapDBError(err error) (int, ErrorResponse) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "resource already exists",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
