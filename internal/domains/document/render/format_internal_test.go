package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "KES 1,234,567.50", money("KES", 1234567.5))
	assert.Equal(t, "4,500.00", money("", 4500))
	assert.Equal(t, "0.00", money("", 0))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, rgb{15, 118, 110}, parseColor("#0F766E"))
	assert.Equal(t, rgb{255, 255, 255}, parseColor("ffffff"))
	assert.Equal(t, defaultBrand, parseColor("#12"))
	assert.Equal(t, defaultBrand, parseColor("#GGGGGG"))
	assert.Equal(t, defaultBrand, parseColor(""))
}

func TestDisplayDay(t *testing.T) {
	assert.Equal(t, "15 Jan 2025", displayDay("2025-01-15"))
	assert.Equal(t, "next week", displayDay("next week"))
	assert.Equal(t, "", displayDay(""))
}

func TestGuestsLabel(t *testing.T) {
	assert.Equal(t, "2 adults", guestsLabel(2, 0, nil))
	assert.Equal(t, "1 adult, 1 child (age 4)", guestsLabel(1, 1, []int{4}))
	assert.Equal(t, "2 adults, 2 children (ages 4, 9)", guestsLabel(2, 2, []int{4, 9}))
	assert.Equal(t, "2 adults, 2 children", guestsLabel(2, 2, nil))
}

func TestLatin1(t *testing.T) {
	assert.Equal(t, "Zoë - 'x' ??", latin1("Zoë — ’x’ 日本"))
}
