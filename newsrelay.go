// Package newsrelay fetches a news headline page, extracts the full text of
// each linked article with heuristic HTML matching, and republishes the
// cleaned content to a remote content-management endpoint while recording a
// success or failure outcome for every article.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, wordpress/).
package newsrelay
