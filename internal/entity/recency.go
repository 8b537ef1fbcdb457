package entity

import "strings"

// UnknownRecency is the value given to a lastContact text that cannot be parsed.
// It sorts as the oldest contact.
const UnknownRecency = 9999

// RecencyMinutes estimates how many minutes ago a lead was contacted from the
// free-text lastContact field ("30 min atrás", "2 horas atrás", "3 dias atrás").
// It is an approximation: only the leading integer and the unit word are read.
func RecencyMinutes(lastContact string) int {
	s := strings.ToLower(lastContact)

	switch {
	case strings.Contains(s, "min"):
		return leadingInt(s, 0)
	case strings.Contains(s, "hora"), strings.Contains(s, "hour"):
		return leadingInt(s, 1) * 60
	case strings.Contains(s, "dia"), strings.Contains(s, "day"):
		return leadingInt(s, 1) * 1440
	}
	return UnknownRecency
}

// leadingInt reads an optionally signed integer at the start of s, after
// leading spaces, capped at UnknownRecency. When there is none (or it is zero)
// def is returned.
func leadingInt(s string, def int) int {
	s = strings.TrimLeft(s, " \t\n\r")

	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
		if n > UnknownRecency {
			n = UnknownRecency
			break
		}
	}

	if digits == 0 || n == 0 {
		return def
	}
	if neg {
		return -n
	}
	return n
}
