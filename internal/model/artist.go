package model

import "time"

// Artist is a performer that plays shows at venues.
type Artist struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Genres             []string  `json:"genres"`
	ImageLink          string    `json:"imageLink"`
	FacebookLink       string    `json:"facebookLink"`
	WebsiteLink        string    `json:"websiteLink"`
	SeekingVenue       bool      `json:"seekingVenue"`
	SeekingDescription string    `json:"seekingDescription"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ArtistSummary is an artist as it appears in listings and search results.
// NumUpcomingShows is zero in the plain artist listing, which only needs names.
type ArtistSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"numUpcomingShows"`
}

// ArtistShow is a show seen from an artist's page: the venue side of the join.
type ArtistShow struct {
	VenueID        string `json:"venueId"`
	VenueName      string `json:"venueName"`
	VenueImageLink string `json:"venueImageLink"`
	StartTime      string `json:"startTime"`
}

type ArtistDetail struct {
	Artist
	PastShows          []ArtistShow `json:"pastShows"`
	UpcomingShows      []ArtistShow `json:"upcomingShows"`
	PastShowsCount     int          `json:"pastShowsCount"`
	UpcomingShowsCount int          `json:"upcomingShowsCount"`
}
