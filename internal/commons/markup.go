package commons

import (
	"strings"

	"golang.org/x/net/html"
)

// stripMarkup removes embedded HTML from a Commons extmetadata value and
// collapses runs of whitespace. Artist and credit fields frequently carry
// anchor tags, spans and trailing entity noise.
func stripMarkup(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tokenizer.Token().Data)
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
