package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// formatAmount renders a coin amount with two decimal places and thousand
// separators.
func formatAmount(amount decimal.Decimal) string {
	str := amount.StringFixed(2)

	neg := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")

	parts := strings.SplitN(str, ".", 2)
	intPart := parts[0]

	n := len(intPart)
	if n > 3 {
		var sb strings.Builder
		for i, digit := range intPart {
			if i > 0 && (n-i)%3 == 0 {
				sb.WriteRune(',')
			}
			sb.WriteRune(digit)
		}
		intPart = sb.String()
	}

	out := intPart + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

// formatDuration renders a duration as the largest two useful units.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// parseAmount parses a positive coin amount from user input.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

// parseMention extracts a user ID from a Discord mention like <@123> or
// <@!123>.
func parseMention(s string) (string, bool) {
	if !strings.HasPrefix(s, "<@") || !strings.HasSuffix(s, ">") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(s, "<@"), ">")
	id = strings.TrimPrefix(id, "!")
	if id == "" {
		return "", false
	}
	return id, true
}
