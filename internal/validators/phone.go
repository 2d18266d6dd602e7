package validators

import "strings"

var persianDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// ASCIIDigits rewrites Persian and Arabic-Indic digits as ASCII digits.
func ASCIIDigits(s string) string {
	return persianDigits.Replace(s)
}

// NormalizePhone converts Persian and Arabic digits to ASCII and strips
// spaces, dashes and parentheses. A leading + is kept.
func NormalizePhone(phone string) string {
	phone = ASCIIDigits(strings.TrimSpace(phone))

	var sb strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '+' && i == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// IsPhone checks a normalized number for a plausible length.
func IsPhone(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
