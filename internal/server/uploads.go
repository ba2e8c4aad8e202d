package server

import (
	"io"
	"log"
	"net/http"
	"strings"

	"paramedai/internal/genui"
	"paramedai/internal/stt"
)

const maxImageBytes = 10 * 1024 * 1024

func (h *Handler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.deps.Transcriber == nil {
		http.Error(w, "transcription backend not configured", http.StatusServiceUnavailable)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "audio file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if !stt.SupportedMIME(contentType) {
		http.Error(w, "unsupported audio format: "+contentType, http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read audio file", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, "empty audio file", http.StatusBadRequest)
		return
	}

	if key, err := h.deps.Archive.Store(r.Context(), "audio", header.Filename, contentType, data); err != nil {
		log.Printf("[server] archive audio failed: %v", err)
	} else if key != "" {
		log.Printf("[server] archived audio as %s", key)
	}

	result, err := h.deps.Transcriber.Transcribe(r.Context(), data, header.Filename, contentType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

var allowedImageTypes = map[string]bool{
	"image/jpeg":               true,
	"image/jpg":                true,
	"image/png":                true,
	"image/gif":                true,
	"image/bmp":                true,
	"image/webp":               true,
	"application/octet-stream": true,
}

func (h *Handler) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if !allowedImageTypes[contentType] {
		http.Error(w, "unsupported image format: "+contentType, http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read image file", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, "empty image file", http.StatusBadRequest)
		return
	}
	if len(data) > maxImageBytes {
		http.Error(w, "image too large, maximum size is 10 MB", http.StatusBadRequest)
		return
	}

	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		query = "Analyze this medical image and provide findings."
	}
	imageType := strings.TrimSpace(r.FormValue("image_type"))

	if key, err := h.deps.Archive.Store(r.Context(), "image", header.Filename, contentType, data); err != nil {
		log.Printf("[server] archive image failed: %v", err)
	} else if key != "" {
		log.Printf("[server] archived image as %s", key)
	}

	resp, err := h.deps.Clinical.AnalyzeImage(r.Context(), data, contentType, query, imageType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	widgets := resp.Widgets
	if widgets == nil {
		widgets = []genui.Widget{}
	}
	if imageType == "" {
		imageType = detectImageType(widgets)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"text":       resp.Text,
		"widgets":    widgets,
		"image_type": imageType,
	})
}

// detectImageType infers what the image showed from the cards the model
// produced when the client did not say. Only widgets whose payload
// decodes into the matching card shape count.
func detectImageType(widgets []genui.Widget) string {
	for _, w := range widgets {
		card, err := genui.DecodeCard(w)
		if err != nil {
			continue
		}
		switch card.(type) {
		case *genui.ECGAnalysisCard:
			return "ecg"
		case *genui.VitalSignsCard:
			return "monitor"
		}
	}
	return ""
}
