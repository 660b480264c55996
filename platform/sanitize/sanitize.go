// Package sanitize provides text sanitization utilities to prevent XSS attacks.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
func StripHTML(s string) string {
	// Remove HTML tags
	result := htmlTagRegex.ReplaceAllString(s, "")
	// Decode common HTML entities
	result = decodeEntities(result)
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes a single-line user value for logs and headers: HTML is stripped
// and CR/LF are flattened to spaces.
func Text(s string) string {
	result := StripHTML(s)
	result = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(result)
	return strings.TrimSpace(result)
}

func decodeEntities(s string) string {
	return strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#34;", "\"",
		"&#39;", "'",
		"&#43;", "+",
		"&nbsp;", " ",
		"&amp;", "&",
	).Replace(s)
}
