package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from free text shown on the dashboard.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

func SanitizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := SanitizeText(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
