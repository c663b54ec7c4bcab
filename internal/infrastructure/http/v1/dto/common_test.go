package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
)

func TestAmountCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"number", `12.5`, "12.5"},
		{"quoted number", `"12.50"`, "12.50"},
		{"integer", `7`, "7"},
		{"null", `null`, "0"},
		{"empty string", `""`, "0"},
		{"garbage string", `"abc"`, "0"},
		{"comma decimal", `"12,50"`, "0"},
		{"whitespace", `"  3.10 "`, "3.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.in), &a)
			require.NoError(t, err, "coercion never fails")
			assert.True(t, a.Amount.Equal(money.MustFromString(tt.want)),
				"got %s, want %s", a.Amount, tt.want)
		})
	}
}

func TestIntegerCoercion(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{`120000`, 120000},
		{`"120000"`, 120000},
		{`"120000.0"`, 120000},
		{`null`, 0},
		{`"abc"`, 0},
		{`""`, 0},
	}

	for _, tt := range tests {
		var i Integer
		err := json.Unmarshal([]byte(tt.in), &i)
		require.NoError(t, err)
		assert.Equal(t, tt.want, int64(i), "input %s", tt.in)
	}
}

func TestLineRequestMalformedFieldsBecomeZero(t *testing.T) {
	payload := `{"description":"vidange","quantity":"two","unitPrice":10,"vatRate":"20"}`

	var line LineRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &line))

	in := line.toInput()
	assert.True(t, in.Quantity.IsZero())
	assert.True(t, in.UnitPrice.Equal(money.MustFromString("10")))
	assert.True(t, in.VATRate.Equal(money.MustFromString("20")))
}
