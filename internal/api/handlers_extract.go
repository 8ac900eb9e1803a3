package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/doctree"
	"github.com/dgallion1/docsift/internal/extract"
	"github.com/dgallion1/docsift/internal/parser"
	"github.com/dgallion1/docsift/internal/persona"
	"github.com/dgallion1/docsift/internal/pipeline"
)

// handleOutline returns the outline of one uploaded document. A document
// that cannot be decoded yields the empty outline, not an error status.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := s.readUpload(file)
	if err != nil {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	log := s.log.With("request_id", middleware.GetReqID(r.Context()), "document", filename)
	ext, err := pipeline.Extractor(s.cfg, config.ModeOutline, s.stats, log)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	outline := extract.EmptyOutline()
	if st, err := ext.ExtractReader(bytes.NewReader(data), filename); err != nil {
		log.Warn("extraction failed, returning empty outline", "error", err)
	} else {
		outline = extract.NewOutline(st)
	}
	writeJSON(w, http.StatusOK, outline)
}

// handleRank ranks the sections of the uploaded documents for a persona.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	role := strings.TrimSpace(r.FormValue("persona"))
	task := strings.TrimSpace(r.FormValue("job"))
	if role == "" || task == "" {
		jsonError(w, "persona and job are required", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	log := s.log.With("request_id", middleware.GetReqID(r.Context()))
	ext, err := pipeline.Extractor(s.cfg, config.ModeRank, s.stats, log)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var names []string
	var structures []*doctree.Structure
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		names = append(names, filename)
		st, err := s.extractUpload(ext, fh, filename)
		if err != nil {
			log.Warn("document contributes no sections", "document", filename, "error", err)
			continue
		}
		structures = append(structures, st)
	}

	profile := persona.NewProfile(role, task)
	result, err := pipeline.Ranker(s.cfg).Rank(names, structures, profile)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) extractUpload(ext *extract.Extractor, fh *multipart.FileHeader, filename string) (*doctree.Structure, error) {
	if !parser.IsSupportedExtension(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := s.readUpload(f)
	if err != nil {
		return nil, err
	}
	return ext.ExtractReader(bytes.NewReader(data), filename)
}

func (s *Server) readUpload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return data, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
