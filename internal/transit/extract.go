package transit

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	rowSelector   = ".arrival_times_results_row"
	valueSelector = ".right"
)

// labelPattern matches a line label inside an arrival row's text. It accepts
// the long form "Línea 9" with any short run of non-digit characters in place
// of the accented "í" (so "LÃ­nea 9" and "L?nea 9" still match) and the short
// form "L9". The number must not be part of a longer number.
func labelPattern(line string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?:^|[^\p{L}\p{N}])L(?:[^\s\d]{1,4}(?i:nea)[\s\x{00A0}]*)?` +
			regexp.QuoteMeta(line) +
			`(?:[^\p{N}]|$)`,
	)
}

// Extract returns the formatted arrivals for line found in markup. Markup that
// cannot be read at all yields NoData; markup without rows for the line
// yields NoBuses.
func Extract(markup, line string) string {
	v, err := ExtractFrom(strings.NewReader(markup), line)
	if err != nil {
		return NoData
	}
	return v
}

// ExtractFrom parses the document in r and returns the formatted arrivals for
// line. The error is non-nil only when r could not be read or parsed.
func ExtractFrom(r io.Reader, line string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}
	return Format(Arrivals(doc.Selection, line)), nil
}

// Arrivals returns, in document order, at most MaxArrivals non-empty values
// from the arrival rows of sel that belong to line.
func Arrivals(sel *goquery.Selection, line string) []string {
	pattern := labelPattern(line)
	var values []string

	sel.Find(rowSelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if !pattern.MatchString(rowText(row)) {
			return true
		}
		v := strings.TrimSpace(row.Find(valueSelector).First().Text())
		if v == "" {
			return true
		}
		values = append(values, v)
		return len(values) < MaxArrivals
	})

	return values
}

// rowText returns the text of every node under sel joined by spaces.
// Selection.Text concatenates adjacent elements, which would turn a label
// "L9" followed by a value "3 min" into "L93 min".
func rowText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// Format joins arrival values for display, or returns NoBuses if there are none.
func Format(values []string) string {
	if len(values) == 0 {
		return NoBuses
	}
	if len(values) > MaxArrivals {
		values = values[:MaxArrivals]
	}
	return strings.Join(values, ValueSeparator)
}
