package handler

import (
	"net/http"

	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/service"
)

type HomeHandler struct {
	venues  *service.VenueService
	artists *service.ArtistService
	view    *View
}

func NewHomeHandler(venues *service.VenueService, artists *service.ArtistService, view *View) *HomeHandler {
	return &HomeHandler{venues: venues, artists: artists, view: view}
}

type homeData struct {
	Venues  []model.VenueSummary
	Artists []model.ArtistSummary
}

// HandleHome renders the landing page with the newest listings.
//
// HTTP: GET /
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venues.Recent(r.Context())
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	artists, err := h.artists.Recent(r.Context())
	if err != nil {
		h.view.Error(w, r, err)
		return
	}

	h.view.Render(w, r, http.StatusOK, "pages/home", "", homeData{Venues: venues, Artists: artists})
}
