package server

import (
	"errors"
	"net/http"
	"strings"

	"paramedai/internal/media"
)

var mediaKinds = map[string]bool{
	"audio": true,
	"image": true,
}

// handleMediaList lists archived objects of one kind so crews can pull
// up earlier recordings and photos for a case review.
func (h *Handler) handleMediaList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.deps.Archive == nil {
		http.Error(w, "media archive not configured", http.StatusServiceUnavailable)
		return
	}
	kind := strings.TrimSpace(r.URL.Query().Get("kind"))
	if !mediaKinds[kind] {
		http.Error(w, "kind must be one of audio, image", http.StatusBadRequest)
		return
	}
	keys, err := h.deps.Archive.List(r.Context(), kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":  kind,
		"keys":  keys,
		"count": len(keys),
	})
}

// handleMediaURL returns a short-lived presigned link for one archived
// object.
func (h *Handler) handleMediaURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.deps.Archive == nil {
		http.Error(w, "media archive not configured", http.StatusServiceUnavailable)
		return
	}
	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}
	url, err := h.deps.Archive.URL(r.Context(), key)
	if errors.Is(err, media.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"key": key,
		"url": url,
	})
}

// handleMediaObject streams the archived bytes directly, for clients
// that cannot reach the object store.
func (h *Handler) handleMediaObject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.deps.Archive == nil {
		http.Error(w, "media archive not configured", http.StatusServiceUnavailable)
		return
	}
	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}
	data, err := h.deps.Archive.Fetch(r.Context(), key)
	if errors.Is(err, media.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}
