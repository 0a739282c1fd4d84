// Package strutil provides small string parsing and cleanup helpers shared
// across handlers and services.
package strutil

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	divOpenPattern = regexp.MustCompile(`(?i)<div[^>]*>`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
)

// ConvertToInt parses s as a decimal integer.
func ConvertToInt(s string) (int, error) {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return value, nil
}

// ConvertToInt64 parses s as a decimal 64-bit integer.
func ConvertToInt64(s string) (int64, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return value, nil
}

// CleanEditorInput flattens rich-text editor markup into plain text. Line
// break tags and closing divs become newlines, remaining tags are stripped,
// HTML entities are decoded and the result is trimmed.
func CleanEditorInput(text string) string {
	replacer := strings.NewReplacer(
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
		"</div>", "\n",
	)
	text = replacer.Replace(text)
	text = divOpenPattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	return strings.TrimSpace(text)
}
