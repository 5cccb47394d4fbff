// Package model defines the data structures used throughout the application.
//
// Two kinds of types live here:
//   - entities (Venue, Artist, Show) that map one-to-one onto table rows
//   - read models (LocalityGroup, VenueDetail, ShowListing, ...) that the
//     query layer hands to the presentation layer. They are plain values and
//     never carry database handles.
package model

import "time"

// Venue is a place that hosts shows.
//
// Genres is never nil once loaded from the store; an empty list is stored
// as "[]" rather than NULL.
type Venue struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Genres             []string  `json:"genres"`
	ImageLink          string    `json:"imageLink"`
	FacebookLink       string    `json:"facebookLink"`
	WebsiteLink        string    `json:"websiteLink"`
	SeekingTalent      bool      `json:"seekingTalent"`
	SeekingDescription string    `json:"seekingDescription"`
	CreatedAt          time.Time `json:"createdAt"`
}

// VenueSummary is a venue as it appears in listings and search results.
type VenueSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"numUpcomingShows"`
}

// LocalityGroup collects the venues sharing one exact (city, state) pair.
type LocalityGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueShow is a show seen from a venue's page: the artist side of the join.
type VenueShow struct {
	ArtistID        string `json:"artistId"`
	ArtistName      string `json:"artistName"`
	ArtistImageLink string `json:"artistImageLink"`
	StartTime       string `json:"startTime"`
}

// VenueDetail is a venue with its shows split at the database's "now".
type VenueDetail struct {
	Venue
	PastShows          []VenueShow `json:"pastShows"`
	UpcomingShows      []VenueShow `json:"upcomingShows"`
	PastShowsCount     int         `json:"pastShowsCount"`
	UpcomingShowsCount int         `json:"upcomingShowsCount"`
}
