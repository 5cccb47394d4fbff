package model

import "time"

// StartTimeLayout is the textual form of a show's start time, both in the
// store and in the read models. It is UTC and second-precision so that it
// compares lexicographically with SQLite's datetime('now').
const StartTimeLayout = "2006-01-02 15:04:05"

// Show links one venue and one artist at a start time.
type Show struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venueId"`
	ArtistID  string    `json:"artistId"`
	StartTime time.Time `json:"startTime"`
}

// ShowListing is one row of the all-shows page.
type ShowListing struct {
	VenueID         string `json:"venueId"`
	VenueName       string `json:"venueName"`
	ArtistID        string `json:"artistId"`
	ArtistName      string `json:"artistName"`
	ArtistImageLink string `json:"artistImageLink"`
	StartTime       string `json:"startTime"`
}

// FormatStartTime renders t the way start times are stored and projected.
func FormatStartTime(t time.Time) string {
	return t.UTC().Format(StartTimeLayout)
}

// SearchResult is what both search pages render.
type SearchResult[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}
