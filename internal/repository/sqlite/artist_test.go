package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
)

func TestCreateArtist(t *testing.T) {
	db := newTestDB(t)

	artist := &model.Artist{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Genres:             []string{"Rock n Roll"},
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	}
	require.NoError(t, db.CreateArtist(context.Background(), artist))
	assert.NotEmpty(t, artist.ID)

	found, err := db.GetArtist(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, artist.Name, found.Name)
	assert.Equal(t, []string{"Rock n Roll"}, found.Genres)
	assert.True(t, found.SeekingVenue)
	assert.Equal(t, artist.SeekingDescription, found.SeekingDescription)
}

func TestGetArtist_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetArtist(context.Background(), "nonexistent-id")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateArtist(t *testing.T) {
	db := newTestDB(t)
	artist := createTestArtist(t, db, "Matt Quevedo")

	artist.Name = "Matt Q"
	artist.Genres = []string{"Jazz"}
	artist.SeekingVenue = true
	require.NoError(t, db.UpdateArtist(context.Background(), artist))

	found, err := db.GetArtist(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Matt Q", found.Name)
	assert.Equal(t, []string{"Jazz"}, found.Genres)
	assert.True(t, found.SeekingVenue)
}

func TestUpdateArtist_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateArtist(context.Background(), &model.Artist{ID: "ghost", Name: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteArtist_CascadesToShows(t *testing.T) {
	db := newTestDB(t)
	venue := createTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	artist := createTestArtist(t, db, "The Wild Sax Band")
	insertShowAt(t, db, venue.ID, artist.ID, "datetime('now', '+1 day')")

	require.NoError(t, db.DeleteArtist(context.Background(), artist.ID))

	detail, err := db.VenueDetail(context.Background(), venue.ID)
	require.NoError(t, err)
	assert.Zero(t, detail.UpcomingShowsCount)

	err = db.DeleteArtist(context.Background(), artist.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListArtists_StorageOrder(t *testing.T) {
	db := newTestDB(t)
	first := createTestArtist(t, db, "Guns N Petals")
	second := createTestArtist(t, db, "Matt Quevedo")
	third := createTestArtist(t, db, "The Wild Sax Band")

	artists, err := db.ListArtists(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 3)
	assert.Equal(t, first.ID, artists[0].ID)
	assert.Equal(t, second.ID, artists[1].ID)
	assert.Equal(t, third.ID, artists[2].ID)
	assert.Equal(t, "Matt Quevedo", artists[1].Name)
}

func TestSearchArtists(t *testing.T) {
	db := newTestDB(t)
	createTestArtist(t, db, "Guns N Petals")
	createTestArtist(t, db, "Matt Quevedo")
	createTestArtist(t, db, "The Wild Sax Band")

	results, err := db.SearchArtists(context.Background(), "A")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = db.SearchArtists(context.Background(), "band")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Wild Sax Band", results[0].Name)

	results, err = db.SearchArtists(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchArtists_FoldsNonASCIICase(t *testing.T) {
	db := newTestDB(t)
	emilie := createTestArtist(t, db, "Émilie Simon")
	createTestArtist(t, db, "Emily Haines")

	for _, term := range []string{"émilie", "ÉMILIE", "Émilie Simon"} {
		t.Run(term, func(t *testing.T) {
			results, err := db.SearchArtists(context.Background(), term)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, emilie.ID, results[0].ID)
		})
	}
}

func TestArtistDetail_PartitionsAtDatabaseNow(t *testing.T) {
	db := newTestDB(t)
	venue := createTestVenue(t, db, "The Dueling Pianos Bar", "New York", "NY")
	artist := createTestArtist(t, db, "Matt Quevedo")

	insertShowAt(t, db, venue.ID, artist.ID, "datetime('now', '-30 days')")
	insertShowAt(t, db, venue.ID, artist.ID, "datetime('now')")
	insertShowAt(t, db, venue.ID, artist.ID, "datetime('now', '+30 days')")

	detail, err := db.ArtistDetail(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.PastShowsCount)
	assert.Equal(t, 1, detail.UpcomingShowsCount)

	show := detail.UpcomingShows[0]
	assert.Equal(t, venue.ID, show.VenueID)
	assert.Equal(t, "The Dueling Pianos Bar", show.VenueName)
}

func TestArtistDetail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.ArtistDetail(context.Background(), "nonexistent-id")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
