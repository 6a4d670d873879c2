// Package newsscout discovers news-like articles on arbitrary company
// websites. It combines feed discovery, structured data, CMS adapters,
// HTML heuristics and pagination crawling under a per-run request and time
// budget, then deduplicates, enriches and classifies what it finds.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package newsscout
