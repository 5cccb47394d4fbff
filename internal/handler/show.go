package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/service"
	"github.com/sakif/booking/internal/validation"
)

// ShowHandler serves the show listing and the booking form.
type ShowHandler struct {
	shows   *service.ShowService
	venues  *service.VenueService
	artists *service.ArtistService
	view    *View
	logger  *slog.Logger
}

func NewShowHandler(shows *service.ShowService, venues *service.VenueService, artists *service.ArtistService, view *View, logger *slog.Logger) *ShowHandler {
	return &ShowHandler{shows: shows, venues: venues, artists: artists, view: view, logger: logger}
}

type showFormData struct {
	Form    validation.ShowForm
	Errors  validation.Errors
	Venues  []model.VenueSummary
	Artists []model.ArtistSummary
}

// HandleList renders every booked show, earliest first.
//
// HTTP: GET /shows
func (h *ShowHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	shows, err := h.shows.List(r.Context())
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "pages/shows", "Shows", shows)
}

// HandleNew renders the booking form with the start time set to now.
//
// HTTP: GET /shows/create
func (h *ShowHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	data, err := h.formData(r.Context(), validation.NewShowForm(time.Now()), nil)
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "forms/new_show", "New show", data)
}

// HandleCreate books a show.
//
// HTTP: POST /shows/create
func (h *ShowHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := validation.BindShowForm(r.PostForm)

	errs := validateForm(form)
	var show *model.Show
	if errs == nil {
		var err error
		if show, err = form.Show(); err != nil {
			errs = fieldErrors(err)
		}
	}
	if errs != nil {
		h.logger.Debug("show form rejected", slog.Any("errors", errs.Messages()))
		data, err := h.formData(r.Context(), form, errs)
		if err != nil {
			h.view.Error(w, r, err)
			return
		}
		h.view.Render(w, r, http.StatusUnprocessableEntity, "forms/new_show", "New show", data, fixErrorsNotice(errs))
		return
	}

	if err := h.shows.Create(r.Context(), show); err != nil {
		h.view.Redirect(w, r, "/", "An error occurred. Show could not be listed.")
		return
	}
	h.view.Redirect(w, r, "/", "Show was successfully listed!")
}

// formData loads the venue and artist choices for the booking form.
func (h *ShowHandler) formData(ctx context.Context, form validation.ShowForm, errs validation.Errors) (showFormData, error) {
	groups, err := h.venues.ListByLocality(ctx)
	if err != nil {
		return showFormData{}, err
	}
	artists, err := h.artists.List(ctx)
	if err != nil {
		return showFormData{}, err
	}

	var venues []model.VenueSummary
	for _, g := range groups {
		venues = append(venues, g.Venues...)
	}
	return showFormData{Form: form, Errors: errs, Venues: venues, Artists: artists}, nil
}
