package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"-1.005", "-1.01"},
		{"10", "10"},
		{"0.125", "0.13"},
	}

	for _, tt := range tests {
		got := Round(MustFromString(tt.in))
		assert.True(t, got.Equal(MustFromString(tt.want)),
			"Round(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestFromFloatRounds(t *testing.T) {
	got := FromFloat(19.999)
	assert.True(t, got.Equal(MustFromString("20.00")))
}

func TestFromStringRejectsGarbage(t *testing.T) {
	_, err := FromString("12,50")
	assert.Error(t, err)
}
