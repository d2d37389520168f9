package http_util

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ghaniswara/people-swipe/pkg/validator"
	"github.com/labstack/echo"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	MessageResponse
	Errors map[string][]string `json:"errors,omitempty"`
}

func Encode[T any](c echo.Context, status int, v T) error {
	return c.JSON(status, v)
}

// EncodeMessage writes a {"message": ...} body, the shape every error
// response uses.
func EncodeMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageResponse{Message: message})
}

func DecodeBody[T any](body []byte, v T) (T, error) {
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// ValidateRequest writes a 422 with message and the collected problems when
// v is invalid and returns false.
func ValidateRequest(ctx context.Context, c echo.Context, v validator.Validate, message string) (bool, error) {
	problems := v.Validate(ctx)
	if len(problems) == 0 {
		return true, nil
	}

	return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		MessageResponse: MessageResponse{Message: message},
		Errors:          problems,
	})
}
