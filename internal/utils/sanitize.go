package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText вырезает HTML из пользовательского ввода и обрезает пробелы.
func SanitizeText(s string) string {
	// StrictPolicy экранирует сущности, а в БД храним обычный текст
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
