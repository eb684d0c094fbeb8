package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/logger"
)

// ErrParse marks a page that could not be parsed as markup at all
var ErrParse = errors.New("parsing HTML")

// Page holds the accepted rows of every platform, in document order
type Page map[contest.Platform][]contest.Entry

// Parse reads a document and extracts the rows of all three platforms.
// sourceURL is used to resolve relative contest links.
func Parse(r io.Reader, sourceURL string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var base *url.URL
	if sourceURL != "" {
		base, err = url.Parse(sourceURL)
		if err != nil {
			base = nil
		}
	}

	return Extract(doc, base), nil
}

// Extract walks every matching section of every platform. Repeated sections for the same
// platform are all read and their rows concatenated in document order.
func Extract(doc *goquery.Document, base *url.URL) Page {
	page := make(Page, len(contest.Platforms))

	for _, platform := range contest.Platforms {
		entries := make([]contest.Entry, 0)
		dropped := 0

		headings := FindHeadings(doc, HeadingTag, platform.MatchHeading)
		headings.Each(func(_ int, heading *goquery.Selection) {
			table := NextTable(heading)
			if table.Length() == 0 {
				logger.Debug("Section has no table", logger.Fields{
					"platform": string(platform),
					"heading":  heading.Text(),
				})
				return
			}
			rows, n := MapRows(platform, table, base)
			entries = append(entries, rows...)
			dropped += n
		})

		if dropped > 0 {
			logger.Debug("Dropped incomplete rows", logger.Fields{
				"platform": string(platform),
				"dropped":  dropped,
			})
		}

		page[platform] = entries
	}

	return page
}
