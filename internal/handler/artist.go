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

// ArtistHandler serves the artist pages and forms.
type ArtistHandler struct {
	artists *service.ArtistService
	view    *View
	logger  *slog.Logger
}

func NewArtistHandler(artists *service.ArtistService, view *View, logger *slog.Logger) *ArtistHandler {
	return &ArtistHandler{artists: artists, view: view, logger: logger}
}

type artistSearchData struct {
	Term   string
	Result model.SearchResult[model.ArtistSummary]
}

// HandleList renders all artists in the order they were listed.
//
// HTTP: GET /artists
func (h *ArtistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	artists, err := h.artists.List(r.Context())
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "pages/artists", "Artists", artists)
}

// HandleSearch renders the artists whose name contains search_term.
//
// HTTP: GET or POST /artists/search
func (h *ArtistHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.FormValue("search_term")

	result, err := h.artists.Search(r.Context(), term)
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "pages/search_artists", "Artist search",
		artistSearchData{Term: term, Result: result})
}

// HandleDetail renders one artist with its past and upcoming shows.
//
// HTTP: GET /artists/{id}
func (h *ArtistHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.artists.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "pages/show_artist", detail.Name, detail)
}

// HandleNew renders the empty creation form.
//
// HTTP: GET /artists/create
func (h *ArtistHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "forms/new_artist", "New artist", artistFormData{})
}

// HandleCreate validates and stores a new artist.
//
// HTTP: POST /artists/create
//
// An invalid form is rendered again with the submitted values and one
// message per failed field; nothing is stored. Whether the insert succeeds
// or not, the user lands on the home page with a notice.
func (h *ArtistHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := validation.BindArtistForm(r.PostForm)

	if errs := validateForm(form); errs != nil {
		h.logger.Debug("artist form rejected", slog.Any("errors", errs.Messages()))
		h.view.Render(w, r, http.StatusUnprocessableEntity, "forms/new_artist", "New artist",
			artistFormData{Form: form, Errors: errs}, fixErrorsNotice(errs))
		return
	}

	var artist model.Artist
	form.Apply(&artist)
	if err := h.artists.Create(r.Context(), &artist); err != nil {
		h.view.Redirect(w, r, "/", fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
		return
	}
	h.view.Redirect(w, r, "/", fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
}

// HandleEdit renders the edit form pre-filled with the stored artist.
//
// HTTP: GET /artists/{id}/edit
func (h *ArtistHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	artist, err := h.artists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "forms/edit_artist", "Edit "+artist.Name,
		artistFormData{ID: artist.ID, Form: validation.ArtistFormFrom(artist)})
}

// HandleUpdate overwrites every field of a stored artist with the form.
//
// HTTP: POST /artists/{id}/edit
func (h *ArtistHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	artist, err := h.artists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.view.Error(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := validation.BindArtistForm(r.PostForm)

	if errs := validateForm(form); errs != nil {
		h.view.Render(w, r, http.StatusUnprocessableEntity, "forms/edit_artist", "Edit "+artist.Name,
			artistFormData{ID: artist.ID, Form: form, Errors: errs}, fixErrorsNotice(errs))
		return
	}

	form.Apply(artist)
	if err := h.artists.Update(r.Context(), artist); err != nil {
		h.view.Error(w, r, err)
		return
	}
	http.Redirect(w, r, "/artists/"+artist.ID, http.StatusSeeOther)
}

// HandleDelete removes an artist and its shows, then answers with the page
// the script should navigate to.
//
// HTTP: DELETE /artists/{id}
func (h *ArtistHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.artists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.view.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redirectResponse{Redirect: "/"})
}

// HandleDeleteForm is the scriptless variant of HandleDelete.
//
// HTTP: POST /artists/{id}/delete
func (h *ArtistHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.artists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.view.Error(w, r, err)
		return
	}
	h.view.Redirect(w, r, "/", "Artist was successfully deleted.")
}
