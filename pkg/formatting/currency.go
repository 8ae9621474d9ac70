package formatting

import (
	"strconv"
	"strings"
)

// FormatUSD renders whole dollars with thousands separators, e.g. "$1,274,000".
func FormatUSD(dollars int64) string {
	sign := ""
	if dollars < 0 {
		sign = "-"
		dollars = -dollars
	}

	digits := strconv.FormatInt(dollars, 10)

	var b strings.Builder
	b.WriteString(sign + "$")
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
