// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
)

// Amount is a lenient monetary field. Legacy clients submit amounts
// as numbers, quoted numbers, empty strings or null; anything that
// does not parse becomes zero instead of failing the request. The
// coercion stops here: domain code only ever sees money.Amount.
type Amount struct {
	money.Amount
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Amount = money.Zero()
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			a.Amount = money.Zero()
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	if s == "" {
		a.Amount = money.Zero()
		return nil
	}

	parsed, err := money.FromString(s)
	if err != nil {
		a.Amount = money.Zero()
		return nil
	}
	a.Amount = parsed
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return a.Amount.MarshalJSON()
}

// Integer is a lenient integer field with the same coercion rule as
// Amount: malformed input becomes zero.
type Integer int64

func (i *Integer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			*i = 0
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	// Accept "12.0" style input the way Number() would.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*i = Integer(int64(f))
		return nil
	}
	*i = 0
	return nil
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
