package validation

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/sakif/booking/internal/apperror"
	"github.com/sakif/booking/internal/model"
)

// VenueForm is the create/edit venue form.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=500"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ArtistForm is the create/edit artist form.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=500"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ShowForm is the create show form. StartTime stays a string so the form
// can be re-rendered with exactly what the user typed.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required"`
	VenueID   string `form:"venue_id" validate:"required"`
	StartTime string `form:"start_time" validate:"required,showtime"`
}

func BindVenueForm(values url.Values) VenueForm {
	return VenueForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Address:            field(values, "address"),
		Phone:              field(values, "phone"),
		ImageLink:          field(values, "image_link"),
		Genres:             multi(values, "genres"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingTalent:      checkbox(values, "seeking_talent"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

func BindArtistForm(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Phone:              field(values, "phone"),
		ImageLink:          field(values, "image_link"),
		Genres:             multi(values, "genres"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingVenue:       checkbox(values, "seeking_venue"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

func BindShowForm(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  field(values, "artist_id"),
		VenueID:   field(values, "venue_id"),
		StartTime: field(values, "start_time"),
	}
}

// NewShowForm is the empty show form, start time defaulting to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: model.FormatStartTime(now)}
}

// Apply overwrites every mutable field of v with the form's values.
func (f VenueForm) Apply(v *model.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.Genres = f.Genres
	v.FacebookLink = f.FacebookLink
	v.WebsiteLink = f.WebsiteLink
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

// VenueFormFrom pre-fills the edit form.
func VenueFormFrom(v *model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             v.Genres,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (f ArtistForm) Apply(a *model.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.Genres = f.Genres
	a.FacebookLink = f.FacebookLink
	a.WebsiteLink = f.WebsiteLink
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}

func ArtistFormFrom(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             a.Genres,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

// Show converts a validated form. Call only after Struct(f) returned nil.
func (f ShowForm) Show() (*model.Show, error) {
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, apperror.ValidationFailed("start_time", "Not a valid datetime value.")
	}
	return &model.Show{
		VenueID:   f.VenueID,
		ArtistID:  f.ArtistID,
		StartTime: start,
	}, nil
}

// HasGenre is used by templates to pre-select options.
func HasGenre(genres []string, genre string) bool {
	return slices.Contains(genres, genre)
}

func field(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// multi returns nil when nothing was selected so "required" fires.
func multi(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// checkbox accepts the usual encodings of a ticked box ("y", "on", ...).
func checkbox(values url.Values, key string) bool {
	switch strings.ToLower(values.Get(key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}
