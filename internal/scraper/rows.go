package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/contest-digest/internal/contest"
)

// RowMapper converts the cells of one table row into an entry.
// It reports false when the row lacks a required field.
type RowMapper func(cells *goquery.Selection, base *url.URL) (contest.Entry, bool)

// mappers holds the column semantics of each platform's table
var mappers = map[contest.Platform]RowMapper{
	contest.Codeforces: mapCodeforces,
	contest.AtCoder:    mapAtCoder,
	contest.Luogu:      mapLuogu,
}

// MapRows applies the platform's row mapper to every data row of a table.
// Rows are returned in table order; rejected rows are counted in dropped.
func MapRows(platform contest.Platform, table *goquery.Selection, base *url.URL) (entries []contest.Entry, dropped int) {
	mapper, ok := mappers[platform]
	if !ok {
		return nil, 0
	}

	entries = make([]contest.Entry, 0)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() == 0 {
			// header row
			return
		}
		entry, ok := mapper(cells, base)
		if !ok {
			dropped++
			return
		}
		entries = append(entries, entry)
	})

	return entries, dropped
}

// Codeforces: name link | ... | start | duration in hours (optional)
func mapCodeforces(cells *goquery.Selection, base *url.URL) (contest.Entry, bool) {
	if cells.Length() < 3 {
		return contest.Entry{}, false
	}

	link := cells.Eq(0).Find("a").First()
	entry := contest.Entry{
		Platform: contest.Codeforces,
		Name:     strings.TrimSpace(link.Text()),
		URL:      resolveLink(link, base),
		Start:    contest.ParseDateTime(cells.Eq(2).Text()),
	}
	if cells.Length() > 3 {
		entry.Duration, entry.HasDuration = contest.ParseDuration(cells.Eq(3).Text())
	}

	return entry, entry.Name != "" && entry.Start.Raw() != ""
}

// AtCoder: name link (may wrap inline markup) | start
func mapAtCoder(cells *goquery.Selection, base *url.URL) (contest.Entry, bool) {
	if cells.Length() < 2 {
		return contest.Entry{}, false
	}

	link := cells.Eq(0).Find("a").First()
	entry := contest.Entry{
		Platform: contest.AtCoder,
		Name:     innerText(link),
		URL:      resolveLink(link, base),
		Start:    contest.ParseDateTime(cells.Eq(1).Text()),
	}

	return entry, entry.Name != "" && entry.Start.Raw() != ""
}

// Luogu: name link | start | end | type (optional)
func mapLuogu(cells *goquery.Selection, base *url.URL) (contest.Entry, bool) {
	if cells.Length() < 3 {
		return contest.Entry{}, false
	}

	link := cells.Eq(0).Find("a").First()
	entry := contest.Entry{
		Platform: contest.Luogu,
		Name:     strings.TrimSpace(link.Text()),
		URL:      resolveLink(link, base),
		Start:    contest.ParseDateTime(cells.Eq(1).Text()),
		End:      contest.ParseDateTime(cells.Eq(2).Text()),
	}
	if cells.Length() > 3 {
		entry.Type = strings.TrimSpace(cells.Eq(3).Text())
	}

	return entry, entry.Name != "" && entry.Start.Raw() != ""
}

// innerText decodes the inner markup of sel to plain text: nested tags are dropped,
// entities decoded and the surrounding whitespace trimmed.
func innerText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	markup, err := sel.Html()
	if err != nil {
		return strings.TrimSpace(sel.Text())
	}
	return PlainText(markup)
}

// PlainText strips tags from an HTML fragment and decodes its entities
func PlainText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + markup + "</div>"))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	return strings.TrimSpace(doc.Find("div").First().Text())
}

// resolveLink returns the absolute href of a link, or "" when it has none
func resolveLink(link *goquery.Selection, base *url.URL) string {
	href, ok := link.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return ""
	}
	if base == nil {
		return href
	}
	u, err := base.Parse(href)
	if err != nil {
		return ""
	}
	return u.String()
}
