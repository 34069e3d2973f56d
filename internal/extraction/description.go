package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	closingTagPattern  = regexp.MustCompile(`</[a-zA-Z][a-zA-Z0-9]*\s*>`)
	inlineSpacePattern = regexp.MustCompile(`[ \t\f\v]+`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// PrepareDescription normalizes a description cell before it goes into the
// prompt. Postings pasted from job boards as HTML are reduced to their text;
// a cell counts as HTML only when it opens with a tag and closes at least one
// element, so prose that merely mentions "<p>" or "<br>" is left alone.
// If cleaning leaves nothing, raw is returned as-is.
func PrepareDescription(raw string) string {
	text := raw
	if looksLikeHTML(text) {
		if extracted, err := htmlToText(text); err == nil {
			text = extracted
		}
	}

	text = normalizeText(text)
	if text == "" {
		return raw
	}
	return text
}

func looksLikeHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") && closingTagPattern.MatchString(text)
}

func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6").AppendHtml("\n")

	return doc.Find("body").Text(), nil
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpacePattern.ReplaceAllString(line, " "))
	}

	text = strings.Join(lines, "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
