// ABOUTME: Utility functions for parsing integers from markup attributes
// ABOUTME: Provides safe parsing with default values

package parse

import (
	"strconv"
	"strings"
)

// AnySize is returned by LargestIconSize for sizes="any" (scalable icons)
const AnySize = 1 << 16

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// LargestIconSize returns the largest width in a <link sizes> value such as
// "16x16 32x32". It returns AnySize for "any" and 0 when nothing parses.
func LargestIconSize(sizes string) int {
	largest := 0
	for _, token := range strings.Fields(strings.ToLower(sizes)) {
		if token == "any" {
			return AnySize
		}
		w, _, ok := strings.Cut(token, "x")
		if !ok {
			continue
		}
		if v := IntOrZero(w); v > largest {
			largest = v
		}
	}
	return largest
}
