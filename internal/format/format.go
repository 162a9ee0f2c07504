// Package format renders prices and dates the way the storefront shows them.
package format

import (
	"strconv"
	"strings"
	"time"
)

// Taipei is the storefront's display time zone. It falls back to a fixed
// UTC+8 zone when tzdata is unavailable.
var Taipei = loadTaipei()

func loadTaipei() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// NTD formats a whole-dollar amount, e.g. NTD(1500) => "NT$1500".
func NTD(amount int) string {
	return "NT$" + strconv.Itoa(amount)
}

// NTDGrouped formats an amount with thousands separators, e.g. "NT$1,500".
func NTDGrouped(amount int) string {
	return "NT$" + thousandSep(int64(amount))
}

func thousandSep(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Date formats t as YYYY-MM-DD in the display zone.
func Date(t time.Time) string {
	return t.In(Taipei).Format(time.DateOnly)
}

// Year returns the calendar year of t in the display zone.
func Year(t time.Time) int {
	return t.In(Taipei).Year()
}
