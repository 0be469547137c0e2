package http

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"toolrent-console/internal/logger"
	"toolrent-console/internal/storage"
)

// maxImageBytes bounds what is read into memory for caching
const maxImageBytes = 10 << 20

// ImageHandler serves tool images. Tool records carry image paths relative
// to the remote service, so the console fetches them from there and keeps a
// copy when it has a store.
type ImageHandler struct {
	origin string
	client *http.Client
	cache  storage.ImageStore
}

// NewImageHandler creates a handler reading from origin. A nil client uses
// http.DefaultClient.
func NewImageHandler(origin string, client *http.Client) *ImageHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageHandler{
		origin: strings.TrimRight(origin, "/"),
		client: client,
	}
}

// Serve handles GET /img/{name}
func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		http.Error(w, "Invalid image name", http.StatusBadRequest)
		return
	}

	// Determine content type from file extension
	contentType := ""
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	default:
		http.Error(w, "Unsupported image type", http.StatusBadRequest)
		return
	}

	if h.serveCached(w, name, contentType) {
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.origin+"/img/"+name, nil)
	if err != nil {
		http.Error(w, "Invalid image name", http.StatusBadRequest)
		return
	}
	logger.ExternalServiceCall("toolrent-api", "GET /img", "image", name)
	resp, err := h.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("toolrent-api", "GET /img", err, "image", name)
		http.Error(w, "Image unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	setImageHeaders(w, contentType)
	if h.cache == nil {
		_, err := io.Copy(w, resp.Body)
		logShortWrite(name, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		http.Error(w, "Image unavailable", http.StatusBadGateway)
		return
	}
	if len(body) <= maxImageBytes {
		if err := h.cache.Save(name, bytes.NewReader(body)); err != nil {
			logger.Warn("Image cache write failed", "image", name, "error", err)
		}
	}
	_, err = w.Write(body)
	logShortWrite(name, err)
}

// serveCached writes a stored copy of name and reports whether it did
func (h *ImageHandler) serveCached(w http.ResponseWriter, name, contentType string) bool {
	if h.cache == nil {
		return false
	}
	ok, size, err := h.cache.Exists(name)
	if err != nil || !ok {
		return false
	}
	rc, err := h.cache.Open(name)
	if err != nil {
		return false
	}
	defer rc.Close()

	setImageHeaders(w, contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	_, err = io.Copy(w, rc)
	logShortWrite(name, err)
	return true
}

// logShortWrite records an image the client did not receive in full
func logShortWrite(name string, err error) {
	if err != nil {
		logger.Warn("Image write failed", "image", name, "error", err)
	}
}

func setImageHeaders(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
}
