package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	brTag  = regexp.MustCompile(`(?i)<br\s*/?>`)
	digits = regexp.MustCompile(`\d+`)
)

// htmlText strips markup and collapses whitespace.
func htmlText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// htmlList splits a <BR />-delimited blob into plain-text items.
func htmlList(s string) []string {
	var out []string
	for _, part := range brTag.Split(s, -1) {
		if t := htmlText(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// starFromText extracts the first integer in s ("5 stars luxury" -> "5").
func starFromText(s string) *string {
	return ptr(digits.FindString(s))
}

// cleanStar renders numeric ratings without a trailing ".0".
func cleanStar(v any) *string {
	if f := flt(v); f != nil {
		return ptr(str(*f))
	}
	return starFromText(str(v))
}
