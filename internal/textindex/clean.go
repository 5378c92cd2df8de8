package textindex

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup removes HTML tags from text so pasted rich-text FAQ
// answers and dataset rows index as plain words. Non-HTML input passes
// through with whitespace collapsed.
func StripMarkup(text string) string {
	if !strings.ContainsRune(text, '<') {
		return collapse(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return collapse(text)
	}

	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return collapse(doc.Text())
}

func collapse(text string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
}
