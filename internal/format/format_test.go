package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNTD(t *testing.T) {
	assert.Equal(t, "NT$0", NTD(0))
	assert.Equal(t, "NT$1500", NTD(1500))
}

func TestNTDGrouped(t *testing.T) {
	cases := map[int]string{
		0:        "NT$0",
		999:      "NT$999",
		1500:     "NT$1,500",
		1234567:  "NT$1,234,567",
		-1234567: "NT$-1,234,567",
	}
	for in, want := range cases {
		assert.Equal(t, want, NTDGrouped(in), "amount %d", in)
	}
}

func TestDateUsesDisplayZone(t *testing.T) {
	// 2024-12-31 17:00 UTC is already New Year in Taipei.
	ts := time.Date(2024, 12, 31, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-01", Date(ts))
	assert.Equal(t, 2025, Year(ts))
}
