// Package repository declares the data-access contracts of the booking
// directory. The sqlite sub-package implements all of them on one *DB.
//
// Query methods evaluate "now" with the database clock, never the
// application's, so every listing agrees on which shows are upcoming.
package repository

import (
	"context"

	"github.com/sakif/booking/internal/model"
)

// RecentLimit is how many recently listed venues/artists the home page shows.
const RecentLimit = 10

type VenueRepository interface {
	CreateVenue(ctx context.Context, venue *model.Venue) error
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	UpdateVenue(ctx context.Context, venue *model.Venue) error
	DeleteVenue(ctx context.Context, id string) error

	ListVenuesByLocality(ctx context.Context) ([]model.LocalityGroup, error)
	SearchVenues(ctx context.Context, term string) ([]model.VenueSummary, error)
	VenueDetail(ctx context.Context, id string) (*model.VenueDetail, error)
	RecentVenues(ctx context.Context, limit int) ([]model.VenueSummary, error)
}

type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist *model.Artist) error
	GetArtist(ctx context.Context, id string) (*model.Artist, error)
	UpdateArtist(ctx context.Context, artist *model.Artist) error
	DeleteArtist(ctx context.Context, id string) error

	ListArtists(ctx context.Context) ([]model.ArtistSummary, error)
	SearchArtists(ctx context.Context, term string) ([]model.ArtistSummary, error)
	ArtistDetail(ctx context.Context, id string) (*model.ArtistDetail, error)
	RecentArtists(ctx context.Context, limit int) ([]model.ArtistSummary, error)
}

type ShowRepository interface {
	CreateShow(ctx context.Context, show *model.Show) error
	ListShows(ctx context.Context) ([]model.ShowListing, error)
}
