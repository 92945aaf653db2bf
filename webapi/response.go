package webapi

import (
	"errors"

	"github.com/corebankhq/corebank/pkg/domain"
	"github.com/corebankhq/corebank/pkg/domain/account"
	"github.com/corebankhq/corebank/pkg/domain/ledger"
	"github.com/corebankhq/corebank/pkg/domain/transaction"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON writes a response following RFC 9457 Problem Details.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// ProblemFromError maps a domain error to an RFC 9457 response.
func ProblemFromError(c *fiber.Ctx, err error) error {
	return ErrorResponseJSON(c, ErrorToStatusCode(err), "Request failed", err.Error())
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Anything not in
// the taxonomy is treated as a dependency failure.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, transaction.ErrSelfTransfer),
		errors.Is(err, transaction.ErrTargetRequired),
		errors.Is(err, transaction.ErrUnsupportedType),
		errors.Is(err, ledger.ErrSameAccount),
		errors.Is(err, account.ErrInvalidAccountType),
		errors.Is(err, account.ErrMissingCustomer),
		errors.Is(err, account.ErrMissingNumber):
		return fiber.StatusBadRequest
	case errors.Is(err, account.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, transaction.ErrDuplicate),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadGateway
	}
}

var validate = validator.New()

// BindAndValidate parses the request body into T and validates it. On
// failure the problem response has already been written; the caller should
// return the accompanying error as-is.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
