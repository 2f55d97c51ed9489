package utils

import (
	"strconv"
)

// ParseInt parses query-string integers with a fallback
func ParseInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return value
}
