package utils

import (
	"net/url"
	"strings"
)

// Param - пара ключ/значение строки запроса; порядок сохраняется.
type Param struct {
	Key   string
	Value string
}

// FullURL превращает относительный путь в абсолютный URL сайта.
func FullURL(domain, path string, query ...Param) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(domain, "/"))
	if path != "" && !strings.HasPrefix(path, "/") {
		b.WriteByte('/')
	}
	b.WriteString(path)

	for i, p := range query {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
