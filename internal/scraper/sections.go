package scraper

import (
	"github.com/PuerkitoBio/goquery"
)

// HeadingTag is the heading level that introduces a platform section
const HeadingTag = "h2"

// FindHeadings returns every element of the given tag whose text satisfies match,
// in document order.
func FindHeadings(doc *goquery.Document, tag string, match func(string) bool) *goquery.Selection {
	return doc.Find(tag).FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return match(sel.Text())
	})
}

// NextTable returns the table belonging to a heading: the first following sibling that
// is a table, or that wraps one, before the next heading of the same level.
// The result is an empty selection when the section has no table.
func NextTable(heading *goquery.Selection) *goquery.Selection {
	if heading.Length() == 0 {
		return heading
	}
	heading = heading.First()

	siblings := heading.NextUntil(goquery.NodeName(heading))
	for i := range siblings.Nodes {
		sib := siblings.Eq(i)
		if sib.Is("table") {
			return sib
		}
		if inner := sib.Find("table").First(); inner.Length() > 0 {
			return inner
		}
	}

	return siblings.Slice(0, 0)
}
