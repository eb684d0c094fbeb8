// Package scraper fetches the contest listing page and extracts per-platform contest rows.
//
// Extraction happens in two independent steps. FindHeadings locates the section headings
// for a platform and NextTable finds the table that belongs to each heading, skipping any
// markup noise in between. MapRows then applies the platform's column semantics to every
// table row. Rows missing a name or start time are dropped without failing the page.
package scraper
