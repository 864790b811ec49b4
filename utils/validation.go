package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// ValidPhone reports whether the string looks like a ten digit Indian mobile number.
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// ValidPincode reports whether the string is a six digit postal code.
func ValidPincode(pin string) bool {
	return pincodeRegex.MatchString(strings.TrimSpace(pin))
}
