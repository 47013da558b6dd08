package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/meting-gateway/internal/catalog"
	"github.com/cesargomez89/meting-gateway/internal/constants"
	"github.com/cesargomez89/meting-gateway/internal/domain"
	"github.com/cesargomez89/meting-gateway/internal/logger"
	"github.com/cesargomez89/meting-gateway/internal/store"
)

type Handler struct {
	ProviderManager *catalog.ProviderManager
	SettingsRepo    *store.SettingsRepo
	DefaultRetry    uint8
	SearchLimit     uint
	Logger          *logger.Logger
}

func NewHandler(pm *catalog.ProviderManager, sr *store.SettingsRepo, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		ProviderManager: pm,
		SettingsRepo:    sr,
		DefaultRetry:    constants.DefaultPlaylistRetry,
		SearchLimit:     constants.DefaultSearchLimit,
		Logger:          log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)

	r.Get("/settings/playlist-retry", h.GetPlaylistRetry)
	r.Put("/settings/playlist-retry", h.SetPlaylistRetry)

	r.Route("/{provider}", func(r chi.Router) {
		r.Get("/"+constants.RoutePic+"/{id}", h.Pic)
		r.Get("/"+constants.RouteURL+"/{id}", h.URL)
		r.Get("/"+constants.RouteLyric+"/{id}", h.Lyric)
		r.Get("/"+constants.RouteSong+"/{id}", h.Song)
		r.Get("/"+constants.RoutePlaylist+"/{id}", h.Playlist)
		r.Get("/"+constants.RouteArtist+"/{id}", h.Artist)
		r.Get("/"+constants.RouteSearch+"/{keyword}", h.Search)
	})
}

// provider resolves the {provider} segment, writing 404 when it is unknown.
func (h *Handler) provider(w http.ResponseWriter, r *http.Request) (catalog.Provider, bool) {
	p, err := h.ProviderManager.Get(chi.URLParam(r, "provider"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return p, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", constants.MimeTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("Failed to write response", "error", err)
	}
}

// writeError maps a provider failure to its HTTP status.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	h.Logger.Warn("Request failed",
		"path", r.URL.Path,
		"kind", domain.KindOf(err).String(),
		"status", status,
		"error", err,
	)
	http.Error(w, http.StatusText(status), status)
}

// StatusFor returns the HTTP status reported for err.
func StatusFor(err error) int {
	var unknown *catalog.UnknownProviderError
	if errors.As(err, &unknown) {
		return http.StatusNotFound
	}

	switch domain.KindOf(err) {
	case domain.KindRemote, domain.KindNoField, domain.KindTypeMismatch:
		return http.StatusBadGateway
	case domain.KindServer, domain.KindEncode:
		return http.StatusInternalServerError
	case domain.KindNone:
		return http.StatusNotFound
	case domain.KindUnimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
