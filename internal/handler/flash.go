package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
)

const (
	flashCookie = "booking_flash"
	flashMaxAge = 300 // seconds; a flash only has to survive one redirect
)

// FlashStore keeps one-shot notices in a signed cookie. The cookie is
// signed, not encrypted: notices are shown to the same user anyway, they
// just must not be forgeable.
type FlashStore struct {
	codec  *securecookie.SecureCookie
	logger *slog.Logger
}

func NewFlashStore(hashKey []byte, logger *slog.Logger) *FlashStore {
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(flashMaxAge)

	return &FlashStore{codec: codec, logger: logger}
}

// Add appends msg to the notices pending for the next page render.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, msg string) {
	msgs := append(f.read(r), msg)

	encoded, err := f.codec.Encode(flashCookie, msgs)
	if err != nil {
		f.logger.Error("failed to encode flash", slog.String("error", err.Error()))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    encoded,
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending notices and clears the cookie.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []string {
	if _, err := r.Cookie(flashCookie); err != nil {
		return nil
	}
	msgs := f.read(r)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs
}

// read decodes the cookie. Tampered or expired cookies are ignored.
func (f *FlashStore) read(r *http.Request) []string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := f.codec.Decode(flashCookie, c.Value, &msgs); err != nil {
		f.logger.Debug("discarding flash cookie", slog.String("error", err.Error()))
		return nil
	}
	return msgs
}
