package httpapp

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/meting-gateway/internal/constants"
	"github.com/cesargomez89/meting-gateway/internal/http/dto"
)

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("meting-gateway\n\n")
	b.WriteString("GET /{provider}/pic/{id}          redirect to the cover image\n")
	b.WriteString("GET /{provider}/url/{id}          redirect to the playback address\n")
	b.WriteString("GET /{provider}/lrc/{id}          lyric text\n")
	b.WriteString("GET /{provider}/song/{id}         song record\n")
	b.WriteString("GET /{provider}/playlist/{id}     playlist songs\n")
	b.WriteString("GET /{provider}/artist/{id}       artist songs\n")
	b.WriteString("GET /{provider}/search/{keyword}  search songs (?limit=&page=&type=)\n")
	b.WriteString("GET /settings/playlist-retry      playlist batch retry budget\n")
	b.WriteString("PUT /settings/playlist-retry?value=N\n\n")
	fmt.Fprintf(&b, "providers: %s\n", strings.Join(h.ProviderManager.Names(), ", "))

	w.Header().Set("Content-Type", constants.MimeTypeText)
	w.Write([]byte(b.String()))
}

// idParam returns the {id} segment, writing 400 when it is empty.
func idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func (h *Handler) Pic(w http.ResponseWriter, r *http.Request) {
	p, ok := h.provider(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	target, err := p.Pic(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) URL(w http.ResponseWriter, r *http.Request) {
	p, ok := h.provider(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	target, err := p.URL(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) Lyric(w http.ResponseWriter, r *http.Request) {
	p, ok := h.provider(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	lyric, err := p.Lyric(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", constants.MimeTypeText)
	w.Write([]byte(lyric))
}

func (h *Handler) Song(w http.ResponseWriter, r *http.Request) {
	p, ok := h.provider(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	song, err := p.Song(r.Context(), id, linksFor(r, p.Name()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, song)
}

func (h *Handler) Playlist(w http.ResponseWriter, r *http.Request) {
	p, ok := h.provider(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	retry := h.DefaultRetry
	if h.SettingsRepo != nil {
		stored, err := h.SettingsRepo.PlaylistRetry(r.Context(), h.DefaultRetry)
		if err != nil {
			h.Logger.Warn("Failed to read playlist retry setting", "error", err)
		}
		retry = stored
	}

	songs, err := p.Playlist(r.Context(), id, retry, linksFor(r, p.Name()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, songs)
}

func (h *Handler) Artist(w http.ResponseWriter, r *http.Request) {
	p, ok := h.provider(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	songs, err := p.Artist(r.Context(), id, linksFor(r, p.Name()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, songs)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	p, ok := h.provider(w, r)
	if !ok {
		return
	}

	keyword := chi.URLParam(r, "keyword")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(keyword); err == nil {
			keyword = unescaped
		}
	}
	if keyword == "" {
		http.Error(w, "keyword is required", http.StatusBadRequest)
		return
	}

	opts, errs := dto.ParseSearchOptions(r.URL.Query(), h.SearchLimit)
	if len(errs) > 0 {
		h.writeJSON(w, http.StatusBadRequest, errs.Response())
		return
	}

	songs, err := p.Search(r.Context(), keyword, opts, linksFor(r, p.Name()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, songs)
}

func (h *Handler) GetPlaylistRetry(w http.ResponseWriter, r *http.Request) {
	retry, err := h.SettingsRepo.PlaylistRetry(r.Context(), h.DefaultRetry)
	if err != nil {
		h.Logger.Warn("Failed to read playlist retry setting", "error", err)
	}
	h.writeJSON(w, http.StatusOK, dto.PlaylistRetryResponse{PlaylistRetry: retry})
}

func (h *Handler) SetPlaylistRetry(w http.ResponseWriter, r *http.Request) {
	retry, errs := dto.ParseRetry(r.URL.Query().Get("value"))
	if len(errs) > 0 {
		h.writeJSON(w, http.StatusBadRequest, errs.Response())
		return
	}

	if err := h.SettingsRepo.SetPlaylistRetry(r.Context(), retry); err != nil {
		h.Logger.Error("Failed to store playlist retry setting", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.Logger.Info("Playlist retry updated", "value", retry)
	h.writeJSON(w, http.StatusOK, dto.PlaylistRetryResponse{PlaylistRetry: retry})
}
