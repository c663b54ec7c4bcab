package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/money"
)

func line(qty, unit, vat string) LineInput {
	return LineInput{
		Quantity:  money.MustFromString(qty),
		UnitPrice: money.MustFromString(unit),
		VATRate:   money.MustFromString(vat),
	}
}

func TestLineTotalHT(t *testing.T) {
	l := line("2", "10.00", "20")
	assert.True(t, l.TotalHT().Equal(money.MustFromString("20.00")))

	withDiscount := line("3", "9.99", "20")
	withDiscount.Discount = money.MustFromString("5.00")
	// 3 * 9.99 - 5.00 = 24.97
	assert.True(t, withDiscount.TotalHT().Equal(money.MustFromString("24.97")))
}

func TestComputeTotals(t *testing.T) {
	lines := []LineInput{
		line("2", "10.00", "20"),
		line("1", "5.00", "20"),
	}

	totals := ComputeTotals(lines, money.Zero())

	assert.True(t, totals.HT.Equal(money.MustFromString("25.00")), "HT = %s", totals.HT)
	assert.True(t, totals.VAT.Equal(money.MustFromString("5.00")), "VAT = %s", totals.VAT)
	assert.True(t, totals.TTC.Equal(money.MustFromString("30.00")), "TTC = %s", totals.TTC)
}

func TestComputeTotalsDocumentDiscount(t *testing.T) {
	lines := []LineInput{line("1", "100.00", "20")}

	totals := ComputeTotals(lines, money.MustFromString("10.00"))

	// TTC = 100 + 20 - 10
	assert.True(t, totals.TTC.Equal(money.MustFromString("110.00")), "TTC = %s", totals.TTC)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, money.Zero())
	assert.True(t, totals.TTC.IsZero())
}

func TestComputeTotalsRoundsPerLine(t *testing.T) {
	// 3 * 3.333 = 9.999 -> 10.00 per line before summing.
	lines := []LineInput{line("3", "3.333", "0")}
	totals := ComputeTotals(lines, money.Zero())
	assert.True(t, totals.HT.Equal(money.MustFromString("10.00")), "HT = %s", totals.HT)
}
