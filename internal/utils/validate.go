package utils

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the backend accepts.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks for local-part@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks the minimum length, counted in characters.
func ValidatePassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// ValidateRequired rejects empty and whitespace-only values.
func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidateURL accepts absolute URLs with a scheme.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

// ValidateTechStack requires at least one technology and no blank entries.
func ValidateTechStack(techs []string) bool {
	if len(techs) == 0 {
		return false
	}
	for _, t := range techs {
		if !ValidateRequired(t) {
			return false
		}
	}
	return true
}

// ValidateTechList is ValidateTechStack for the comma-separated form input.
// Entries that are blank once split do not count.
func ValidateTechList(techs string) bool {
	return ValidateTechStack(SplitTechList(techs))
}

// SplitTechList turns "Go, Astro ,," into ["Go", "Astro"].
func SplitTechList(techs string) []string {
	var out []string
	for _, t := range strings.Split(techs, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
