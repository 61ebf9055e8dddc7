package checkout

import (
	"strings"
	"unicode"
)

const (
	maxCardNumberLen = 19 // 16 digits + 3 separators
	maxExpiryDigits  = 4
	maxCVCLen        = 3
)

// FormatCardNumber drops whitespace from raw input and regroups the digits into
// blocks of 4 separated by single spaces, capped at 19 characters. Idempotent
// on already-formatted input.
func FormatCardNumber(raw string) string {
	var b strings.Builder
	run := 0
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
		if r >= '0' && r <= '9' {
			run++
			if run%4 == 0 {
				b.WriteByte(' ')
			}
		} else {
			run = 0
		}
	}

	out := strings.TrimSpace(b.String())
	if rs := []rune(out); len(rs) > maxCardNumberLen {
		out = string(rs[:maxCardNumberLen])
	}
	return out
}

// FormatExpiry keeps only digits and, once two or more are present, inserts a
// slash after the month, producing at most MM/YY.
func FormatExpiry(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > maxExpiryDigits {
		digits = digits[:maxExpiryDigits]
	}
	if len(digits) >= 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// FormatCVC keeps only digits, capped at 3.
func FormatCVC(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > maxCVCLen {
		digits = digits[:maxCVCLen]
	}
	return digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
