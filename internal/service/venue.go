// Package service contains the business layer of the booking directory.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → binds and validates forms, renders pages
//	Service (business layer) → runs mutations, classifies failures, logs
//	Repository (data layer)  → SQL, transactions, the database clock
//
// Services receive already-validated, typed values. They do not re-check
// form rules; their job on the write path is to turn any storage failure
// into apperror.Persistence (so the user never sees driver text) while
// letting NotFound through untouched, and to log what happened.
//
// Services depend on the repository interfaces, never on the sqlite
// package, so tests swap in the in-memory mocks from the _test files.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/repository"
)

// VenueService handles venue queries and mutations.
type VenueService struct {
	repo   repository.VenueRepository
	logger *slog.Logger
}

func NewVenueService(repo repository.VenueRepository, logger *slog.Logger) *VenueService {
	return &VenueService{
		repo:   repo,
		logger: logger,
	}
}

// ListByLocality returns every venue grouped under its (city, state).
func (s *VenueService) ListByLocality(ctx context.Context) ([]model.LocalityGroup, error) {
	groups, err := s.repo.ListVenuesByLocality(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing venues: %w", err)
	}
	return groups, nil
}

// Search matches term against venue names, ignoring case.
func (s *VenueService) Search(ctx context.Context, term string) (model.SearchResult[model.VenueSummary], error) {
	venues, err := s.repo.SearchVenues(ctx, term)
	if err != nil {
		return model.SearchResult[model.VenueSummary]{}, fmt.Errorf("searching venues: %w", err)
	}
	return model.SearchResult[model.VenueSummary]{Count: len(venues), Data: venues}, nil
}

// Get returns the venue or an apperror.ErrNotFound.
func (s *VenueService) Get(ctx context.Context, id string) (*model.Venue, error) {
	return s.repo.GetVenue(ctx, id)
}

// Detail returns the venue with its past and upcoming shows.
func (s *VenueService) Detail(ctx context.Context, id string) (*model.VenueDetail, error) {
	return s.repo.VenueDetail(ctx, id)
}

// Recent returns the most recently listed venues.
func (s *VenueService) Recent(ctx context.Context) ([]model.VenueSummary, error) {
	venues, err := s.repo.RecentVenues(ctx, repository.RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent venues: %w", err)
	}
	return venues, nil
}

// Create persists a new venue. Any storage failure comes back as
// apperror.ErrPersistence; the cause is logged, not returned to the user.
func (s *VenueService) Create(ctx context.Context, venue *model.Venue) error {
	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		s.logger.Error("failed to create venue",
			slog.String("name", venue.Name),
			slog.String("error", err.Error()),
		)
		return apperror.Persistence("create venue", err)
	}

	s.logger.Info("venue created",
		slog.String("id", venue.ID),
		slog.String("name", venue.Name),
	)
	return nil
}

// Update saves every mutable field of venue.
func (s *VenueService) Update(ctx context.Context, venue *model.Venue) error {
	if err := s.repo.UpdateVenue(ctx, venue); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to update venue",
			slog.String("id", venue.ID),
			slog.String("error", err.Error()),
		)
		return apperror.Persistence("update venue", err)
	}

	s.logger.Info("venue updated",
		slog.String("id", venue.ID),
		slog.String("name", venue.Name),
	)
	return nil
}

// Delete removes the venue and, by cascade, its shows.
func (s *VenueService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteVenue(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete venue",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return apperror.Persistence("delete venue", err)
	}

	s.logger.Info("venue deleted", slog.String("id", id))
	return nil
}
