package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/repository"
)

// ArtistService handles artist queries and mutations.
type ArtistService struct {
	repo   repository.ArtistRepository
	logger *slog.Logger
}

func NewArtistService(repo repository.ArtistRepository, logger *slog.Logger) *ArtistService {
	return &ArtistService{
		repo:   repo,
		logger: logger,
	}
}

func (s *ArtistService) List(ctx context.Context) ([]model.ArtistSummary, error) {
	artists, err := s.repo.ListArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing artists: %w", err)
	}
	return artists, nil
}

func (s *ArtistService) Search(ctx context.Context, term string) (model.SearchResult[model.ArtistSummary], error) {
	artists, err := s.repo.SearchArtists(ctx, term)
	if err != nil {
		return model.SearchResult[model.ArtistSummary]{}, fmt.Errorf("searching artists: %w", err)
	}
	return model.SearchResult[model.ArtistSummary]{Count: len(artists), Data: artists}, nil
}

func (s *ArtistService) Get(ctx context.Context, id string) (*model.Artist, error) {
	return s.repo.GetArtist(ctx, id)
}

func (s *ArtistService) Detail(ctx context.Context, id string) (*model.ArtistDetail, error) {
	return s.repo.ArtistDetail(ctx, id)
}

func (s *ArtistService) Recent(ctx context.Context) ([]model.ArtistSummary, error) {
	artists, err := s.repo.RecentArtists(ctx, repository.RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent artists: %w", err)
	}
	return artists, nil
}

func (s *ArtistService) Create(ctx context.Context, artist *model.Artist) error {
	if err := s.repo.CreateArtist(ctx, artist); err != nil {
		s.logger.Error("failed to create artist",
			slog.String("name", artist.Name),
			slog.String("error", err.Error()),
		)
		return apperror.Persistence("create artist", err)
	}

	s.logger.Info("artist created",
		slog.String("id", artist.ID),
		slog.String("name", artist.Name),
	)
	return nil
}

func (s *ArtistService) Update(ctx context.Context, artist *model.Artist) error {
	if err := s.repo.UpdateArtist(ctx, artist); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to update artist",
			slog.String("id", artist.ID),
			slog.String("error", err.Error()),
		)
		return apperror.Persistence("update artist", err)
	}

	s.logger.Info("artist updated",
		slog.String("id", artist.ID),
		slog.String("name", artist.Name),
	)
	return nil
}

func (s *ArtistService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteArtist(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete artist",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return apperror.Persistence("delete artist", err)
	}

	s.logger.Info("artist deleted", slog.String("id", id))
	return nil
}
