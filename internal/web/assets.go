package web

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const assetCacheControl = "public, max-age=3600"

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// imageCandidates maps /images/<rel> to files under s.Assets. Story
// image fields may leave off the extension.
func (s *Server) imageCandidates(urlPath string) ([]string, bool) {
	rel := strings.Trim(strings.TrimPrefix(urlPath, "/images/"), "/")
	if rel == "" || s.Assets == "" {
		return nil, false
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || filepath.IsAbs(clean) || strings.Contains(clean, "..") {
		return nil, false
	}

	resolved := filepath.Join(s.Assets, clean)
	back, err := filepath.Rel(s.Assets, resolved)
	if err != nil || strings.Contains(back, "..") {
		return nil, false
	}

	candidates := []string{resolved}
	if filepath.Ext(clean) == "" {
		for _, ext := range imageExtensions {
			candidates = append(candidates, resolved+ext)
		}
	}
	return candidates, true
}

// GET /images/<path> serves a story image, or a generated placeholder
// when the story has not shipped one yet.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	candidates, ok := s.imageCandidates(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	for _, p := range candidates {
		f, err := os.Open(p) // #nosec G304 -- p is under the validated asset dir
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			_ = f.Close()
			continue
		}
		defer f.Close()
		if ct := mime.TypeByExtension(filepath.Ext(p)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", assetCacheControl)
		http.ServeContent(w, r, filepath.Base(p), info.ModTime(), f)
		return
	}

	b, err := placeholderPNG(strings.TrimPrefix(r.URL.Path, "/images/"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypePNG)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(b); err != nil {
		s.logger().Printf("write placeholder: %v", err)
	}
}
