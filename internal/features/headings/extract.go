package headings

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	reHeading = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	reTag     = regexp.MustCompile(`<[^>]*>`)
)

// entities are decoded one after another in this order; anything else is
// left as written.
var entities = [][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
}

// ExtractText returns the text of the first <h1> in html with nested tags
// stripped and the common entities decoded. It reports false when there is
// no <h1> or its text is blank.
func ExtractText(html string) (string, bool) {
	m := reHeading.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}

	text := reTag.ReplaceAllString(m[1], "")
	for _, e := range entities {
		text = strings.ReplaceAll(text, e[0], e[1])
	}
	text = strings.TrimSpace(text)

	return text, text != ""
}

// browserEscapes rewrites the html renderer's escapes into the forms a
// browser's innerHTML produces.
var browserEscapes = strings.NewReplacer(
	"&#34;", "&quot;",
	"\u00a0", "&nbsp;",
)

// BodyMarkup parses a full document and returns the serialized inner
// markup of its <body>.
func BodyMarkup(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	html, err := doc.Find("body").First().Html()
	if err != nil {
		return "", fmt.Errorf("serialize body: %w", err)
	}

	return browserEscapes.Replace(html), nil
}
