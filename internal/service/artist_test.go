package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
)

func TestArtistCreate_Success(t *testing.T) {
	svc, _ := newTestArtistService(t)

	artist := &model.Artist{Name: "Guns N Petals", Genres: []string{"Rock n Roll"}}
	if err := svc.Create(context.Background(), artist); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if artist.ID == "" {
		t.Error("expected artist to have an ID")
	}
}

func TestArtistCreate_PersistenceFailure(t *testing.T) {
	svc, repo := newTestArtistService(t)
	repo.err = errDiskFull

	err := svc.Create(context.Background(), &model.Artist{Name: "Guns N Petals"})
	if !errors.Is(err, apperror.ErrPersistence) {
		t.Errorf("error = %v, want ErrPersistence", err)
	}
	if !errors.Is(err, errDiskFull) {
		t.Error("the underlying cause should stay reachable for logging")
	}
}

func TestArtistUpdate_NotFound(t *testing.T) {
	svc, _ := newTestArtistService(t)

	err := svc.Update(context.Background(), &model.Artist{ID: "ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestArtistDelete(t *testing.T) {
	svc, _ := newTestArtistService(t)
	artist := &model.Artist{Name: "Matt Quevedo"}
	if err := svc.Create(context.Background(), artist); err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), artist.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(context.Background(), artist.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
}

func TestArtistList_StorageOrder(t *testing.T) {
	svc, _ := newTestArtistService(t)
	names := []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"}
	for _, name := range names {
		if err := svc.Create(context.Background(), &model.Artist{Name: name}); err != nil {
			t.Fatalf("setup: Create(%q) error = %v", name, err)
		}
	}

	artists, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for i, want := range names {
		if artists[i].Name != want {
			t.Errorf("artists[%d].Name = %q, want %q", i, artists[i].Name, want)
		}
	}
}

func TestArtistSearch(t *testing.T) {
	svc, _ := newTestArtistService(t)
	for _, name := range []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"} {
		if err := svc.Create(context.Background(), &model.Artist{Name: name}); err != nil {
			t.Fatalf("setup: Create(%q) error = %v", name, err)
		}
	}

	result, err := svc.Search(context.Background(), "band")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Count != 1 || result.Data[0].Name != "The Wild Sax Band" {
		t.Errorf("Search(band) = %+v, want only The Wild Sax Band", result)
	}
}

func TestShowCreate(t *testing.T) {
	repo := &mockShowRepo{}
	svc := NewShowService(repo, testLogger())

	show := &model.Show{VenueID: "v1", ArtistID: "a1", StartTime: time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)}
	if err := svc.Create(context.Background(), show); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if show.ID == "" {
		t.Error("expected show to have an ID")
	}

	shows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(shows) != 1 || shows[0].StartTime != "2035-04-01 20:00:00" {
		t.Errorf("List() = %+v, want the created show", shows)
	}
}

func TestShowCreate_PersistenceFailure(t *testing.T) {
	repo := &mockShowRepo{err: errors.New("FOREIGN KEY constraint failed")}
	svc := NewShowService(repo, testLogger())

	err := svc.Create(context.Background(), &model.Show{VenueID: "missing", ArtistID: "a1"})
	if !errors.Is(err, apperror.ErrPersistence) {
		t.Errorf("error = %v, want ErrPersistence", err)
	}
}
