// Package contest provides the contest data model and the date/time handling shared by
// every platform parser.
//
// Source pages publish naive wall-clock date-times in the canonical form
// "YYYY-MM-DD HH:MM[:SS]". ParseDateTime turns them into a DateTime result that either
// carries a parsed instant or the original text, so a malformed value degrades to its raw
// form instead of failing the row. Policy renders the platform-specific display strings
// and Window implements the rolling "next seven days" filter.
package contest
