package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/service"
	"github.com/sakif/booking/internal/validation"
)

// VenueHandler serves the venue pages and forms.
type VenueHandler struct {
	venues *service.VenueService
	view   *View
	logger *slog.Logger
}

func NewVenueHandler(venues *service.VenueService, view *View, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{venues: venues, view: view, logger: logger}
}

type venueSearchData struct {
	Term   string
	Result model.SearchResult[model.VenueSummary]
}

// HandleList renders all venues grouped by city and state.
//
// HTTP: GET /venues
func (h *VenueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.venues.ListByLocality(r.Context())
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "pages/venues", "Venues", groups)
}

// HandleSearch renders the venues whose name contains search_term.
//
// HTTP: GET or POST /venues/search
func (h *VenueHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.FormValue("search_term")

	result, err := h.venues.Search(r.Context(), term)
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "pages/search_venues", "Venue search",
		venueSearchData{Term: term, Result: result})
}

// HandleDetail renders one venue with its past and upcoming shows.
//
// HTTP: GET /venues/{id}
func (h *VenueHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.venues.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "pages/show_venue", detail.Name, detail)
}

// HandleNew renders the empty creation form.
//
// HTTP: GET /venues/create
func (h *VenueHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "forms/new_venue", "New venue", venueFormData{})
}

// HandleCreate validates and stores a new venue.
//
// HTTP: POST /venues/create
//
// An invalid form is rendered again with the submitted values and one
// message per failed field; nothing is stored. Whether the insert succeeds
// or not, the user lands on the home page with a notice.
func (h *VenueHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := validation.BindVenueForm(r.PostForm)

	if errs := validateForm(form); errs != nil {
		h.logger.Debug("venue form rejected", slog.Any("errors", errs.Messages()))
		h.view.Render(w, r, http.StatusUnprocessableEntity, "forms/new_venue", "New venue",
			venueFormData{Form: form, Errors: errs}, fixErrorsNotice(errs))
		return
	}

	var venue model.Venue
	form.Apply(&venue)
	if err := h.venues.Create(r.Context(), &venue); err != nil {
		h.view.Redirect(w, r, "/", fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name))
		return
	}
	h.view.Redirect(w, r, "/", fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
}

// HandleEdit renders the edit form pre-filled with the stored venue.
//
// HTTP: GET /venues/{id}/edit
func (h *VenueHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venues.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "forms/edit_venue", "Edit "+venue.Name,
		venueFormData{ID: venue.ID, Form: validation.VenueFormFrom(venue)})
}

// HandleUpdate overwrites every field of a stored venue with the form.
//
// HTTP: POST /venues/{id}/edit
func (h *VenueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venues.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := validation.BindVenueForm(r.PostForm)

	if errs := validateForm(form); errs != nil {
		h.view.Render(w, r, http.StatusUnprocessableEntity, "forms/edit_venue", "Edit "+venue.Name,
			venueFormData{ID: venue.ID, Form: form, Errors: errs}, fixErrorsNotice(errs))
		return
	}

	form.Apply(venue)
	if err := h.venues.Update(r.Context(), venue); err != nil {
		h.view.Error(w, r, err)
		return
	}
	http.Redirect(w, r, "/venues/"+venue.ID, http.StatusSeeOther)
}

// HandleDelete removes a venue and its shows, then answers with the page
// the script should navigate to.
//
// HTTP: DELETE /venues/{id}
func (h *VenueHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.venues.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.view.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redirectResponse{Redirect: "/"})
}

// HandleDeleteForm is the scriptless variant of HandleDelete.
//
// HTTP: POST /venues/{id}/delete
func (h *VenueHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.venues.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Redirect(w, r, "/", "Venue was successfully deleted.")
}
