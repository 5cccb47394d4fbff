package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/repository"
)

// ShowService lists and books shows. Shows are never edited or deleted
// directly; they disappear with their venue or artist.
type ShowService struct {
	repo   repository.ShowRepository
	logger *slog.Logger
}

func NewShowService(repo repository.ShowRepository, logger *slog.Logger) *ShowService {
	return &ShowService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all shows, earliest first.
func (s *ShowService) List(ctx context.Context) ([]model.ShowListing, error) {
	shows, err := s.repo.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return shows, nil
}

// Create books a show. Unknown venue or artist ids are rejected by the
// store's foreign keys and reported like any other persistence failure.
func (s *ShowService) Create(ctx context.Context, show *model.Show) error {
	if err := s.repo.CreateShow(ctx, show); err != nil {
		s.logger.Error("failed to create show",
			slog.String("venue_id", show.VenueID),
			slog.String("artist_id", show.ArtistID),
			slog.String("error", err.Error()),
		)
		return apperror.Persistence("create show", err)
	}

	s.logger.Info("show created",
		slog.String("id", show.ID),
		slog.String("venue_id", show.VenueID),
		slog.String("artist_id", show.ArtistID),
		slog.String("start_time", model.FormatStartTime(show.StartTime)),
	)
	return nil
}
