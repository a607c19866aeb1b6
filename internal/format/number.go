package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatInt groups the digits of v by thousands, as in "-1,234,567".
func FormatInt(v int64) string {
	return printer.Sprintf("%d", v)
}

// FormatFloat renders v with the given precision and grouped thousands.
// NaN and infinities keep their usual spelling.
func FormatFloat(v float64, precision int) string {
	return printer.Sprintf("%.*f", precision, v)
}

// FormatNumberString groups a decimal integer string by thousands. It is
// used for big integers, which the message printer cannot format.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + n + (n-1)/3)
	b.WriteString(sign)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateDigits shortens a long number to its first and last k digits.
// Strings of at most 2k characters are returned unchanged.
func TruncateDigits(s string, k int) string {
	if k <= 0 || len(s) <= 2*k {
		return s
	}
	return s[:k] + "..." + s[len(s)-k:]
}

// FormatBytes renders a byte count with binary units, as in "1.5 MiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return printer.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return printer.Sprintf("%.1f %siB", float64(b)/float64(div), "KMGTPE"[exp:exp+1])
}
