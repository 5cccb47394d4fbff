package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/repository"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// In-memory stand-ins for the sqlite repository. Each has an err field:
// when set, every mutation fails with it, which is how the tests drive the
// persistence-failure paths a real database rarely produces on demand.

var errDiskFull = errors.New("database or disk is full")

type mockVenueRepo struct {
	venues map[string]*model.Venue
	order  []string
	nextID int
	err    error
}

var _ repository.VenueRepository = (*mockVenueRepo)(nil)

func newMockVenueRepo() *mockVenueRepo {
	return &mockVenueRepo{venues: make(map[string]*model.Venue)}
}

func (m *mockVenueRepo) CreateVenue(_ context.Context, v *model.Venue) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	v.ID = fmt.Sprintf("venue-%d", m.nextID)
	stored := *v
	m.venues[v.ID] = &stored
	m.order = append(m.order, v.ID)
	return nil
}

func (m *mockVenueRepo) GetVenue(_ context.Context, id string) (*model.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return nil, apperror.NotFound("venue", id)
	}
	result := *v
	return &result, nil
}

func (m *mockVenueRepo) UpdateVenue(_ context.Context, v *model.Venue) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.venues[v.ID]; !ok {
		return apperror.NotFound("venue", v.ID)
	}
	stored := *v
	m.venues[v.ID] = &stored
	return nil
}

func (m *mockVenueRepo) DeleteVenue(_ context.Context, id string) error {
	if _, ok := m.venues[id]; !ok {
		return apperror.NotFound("venue", id)
	}
	if m.err != nil {
		return m.err
	}
	delete(m.venues, id)
	return nil
}

func (m *mockVenueRepo) ListVenuesByLocality(_ context.Context) ([]model.LocalityGroup, error) {
	var groups []model.LocalityGroup
	for _, id := range m.order {
		v, ok := m.venues[id]
		if !ok {
			continue
		}
		found := false
		for i := range groups {
			if groups[i].City == v.City && groups[i].State == v.State {
				groups[i].Venues = append(groups[i].Venues, model.VenueSummary{ID: v.ID, Name: v.Name})
				found = true
			}
		}
		if !found {
			groups = append(groups, model.LocalityGroup{City: v.City, State: v.State,
				Venues: []model.VenueSummary{{ID: v.ID, Name: v.Name}}})
		}
	}
	return groups, nil
}

func (m *mockVenueRepo) SearchVenues(_ context.Context, term string) ([]model.VenueSummary, error) {
	out := []model.VenueSummary{}
	for _, id := range m.order {
		if v, ok := m.venues[id]; ok && strings.Contains(strings.ToLower(v.Name), strings.ToLower(term)) {
			out = append(out, model.VenueSummary{ID: v.ID, Name: v.Name})
		}
	}
	return out, nil
}

func (m *mockVenueRepo) VenueDetail(ctx context.Context, id string) (*model.VenueDetail, error) {
	v, err := m.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.VenueDetail{Venue: *v, PastShows: []model.VenueShow{}, UpcomingShows: []model.VenueShow{}}, nil
}

func (m *mockVenueRepo) RecentVenues(_ context.Context, limit int) ([]model.VenueSummary, error) {
	out := []model.VenueSummary{}
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		if v, ok := m.venues[m.order[i]]; ok {
			out = append(out, model.VenueSummary{ID: v.ID, Name: v.Name})
		}
	}
	return out, nil
}

type mockArtistRepo struct {
	artists map[string]*model.Artist
	order   []string
	nextID  int
	err     error
}

var _ repository.ArtistRepository = (*mockArtistRepo)(nil)

func newMockArtistRepo() *mockArtistRepo {
	return &mockArtistRepo{artists: make(map[string]*model.Artist)}
}

func (m *mockArtistRepo) CreateArtist(_ context.Context, a *model.Artist) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	a.ID = fmt.Sprintf("artist-%d", m.nextID)
	stored := *a
	m.artists[a.ID] = &stored
	m.order = append(m.order, a.ID)
	return nil
}

func (m *mockArtistRepo) GetArtist(_ context.Context, id string) (*model.Artist, error) {
	a, ok := m.artists[id]
	if !ok {
		return nil, apperror.NotFound("artist", id)
	}
	result := *a
	return &result, nil
}

func (m *mockArtistRepo) UpdateArtist(_ context.Context, a *model.Artist) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.artists[a.ID]; !ok {
		return apperror.NotFound("artist", a.ID)
	}
	stored := *a
	m.artists[a.ID] = &stored
	return nil
}

func (m *mockArtistRepo) DeleteArtist(_ context.Context, id string) error {
	if _, ok := m.artists[id]; !ok {
		return apperror.NotFound("artist", id)
	}
	if m.err != nil {
		return m.err
	}
	delete(m.artists, id)
	return nil
}

func (m *mockArtistRepo) ListArtists(_ context.Context) ([]model.ArtistSummary, error) {
	out := []model.ArtistSummary{}
	for _, id := range m.order {
		if a, ok := m.artists[id]; ok {
			out = append(out, model.ArtistSummary{ID: a.ID, Name: a.Name})
		}
	}
	return out, nil
}

func (m *mockArtistRepo) SearchArtists(_ context.Context, term string) ([]model.ArtistSummary, error) {
	out := []model.ArtistSummary{}
	for _, id := range m.order {
		if a, ok := m.artists[id]; ok && strings.Contains(strings.ToLower(a.Name), strings.ToLower(term)) {
			out = append(out, model.ArtistSummary{ID: a.ID, Name: a.Name})
		}
	}
	return out, nil
}

func (m *mockArtistRepo) ArtistDetail(ctx context.Context, id string) (*model.ArtistDetail, error) {
	a, err := m.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ArtistDetail{Artist: *a, PastShows: []model.ArtistShow{}, UpcomingShows: []model.ArtistShow{}}, nil
}

func (m *mockArtistRepo) RecentArtists(_ context.Context, limit int) ([]model.ArtistSummary, error) {
	out := []model.ArtistSummary{}
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		if a, ok := m.artists[m.order[i]]; ok {
			out = append(out, model.ArtistSummary{ID: a.ID, Name: a.Name})
		}
	}
	return out, nil
}

type mockShowRepo struct {
	shows []model.Show
	err   error
}

var _ repository.ShowRepository = (*mockShowRepo)(nil)

func (m *mockShowRepo) CreateShow(_ context.Context, s *model.Show) error {
	if m.err != nil {
		return m.err
	}
	s.ID = fmt.Sprintf("show-%d", len(m.shows)+1)
	m.shows = append(m.shows, *s)
	return nil
}

func (m *mockShowRepo) ListShows(_ context.Context) ([]model.ShowListing, error) {
	out := []model.ShowListing{}
	for _, s := range m.shows {
		out = append(out, model.ShowListing{
			VenueID:   s.VenueID,
			ArtistID:  s.ArtistID,
			StartTime: model.FormatStartTime(s.StartTime),
		})
	}
	return out, nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestVenueService(t *testing.T) (*VenueService, *mockVenueRepo) {
	t.Helper()
	repo := newMockVenueRepo()
	return NewVenueService(repo, testLogger()), repo
}

func newTestArtistService(t *testing.T) (*ArtistService, *mockArtistRepo) {
	t.Helper()
	repo := newMockArtistRepo()
	return NewArtistService(repo, testLogger()), repo
}
