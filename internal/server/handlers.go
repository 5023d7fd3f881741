package server

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/rtexport/pkg/buildinfo"
	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/export"
	rtio "github.com/matzehuels/rtexport/pkg/io"
	"github.com/matzehuels/rtexport/pkg/pipeline"
)

// exportRequest is the body of POST /exports.
type exportRequest struct {
	// Config is TOML text applied on top of the defaults.
	Config string `json:"config,omitempty"`
	// Scene is a JSON scene snapshot.
	Scene json.RawMessage `json:"scene"`
}

// exportResponse describes a finished export.
type exportResponse struct {
	ID       string      `json:"id"`
	Files    []string    `json:"files"`
	Stats    exportStats `json:"stats"`
	Duration string      `json:"duration"`
}

type exportStats struct {
	Meshes    int `json:"meshes"`
	Materials int `json:"materials"`
	Lights    int `json:"lights"`
	Frames    int `json:"frames"`
	Skipped   int `json:"skipped"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.counter.Snapshot())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Scene) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}

	cfg := config.Default()
	if req.Config != "" {
		var err error
		if cfg, err = config.Parse(req.Config, cfg); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if !filepath.IsLocal(export.Paths(cfg.Prefix).Scene) {
		s.writeError(w, errors.New(errors.ErrCodeInvalidConfig, "prefix %q leaves the export directory", cfg.Prefix))
		return
	}

	host, err := rtio.ReadJSON(bytes.NewReader(req.Scene))
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := uuid.NewString()
	dir := filepath.Join(s.dir, id)

	s.mu.Lock()
	res, err := s.runner.Execute(r.Context(), host, pipeline.Options{Config: cfg, Dir: dir})
	s.mu.Unlock()
	if err != nil {
		// Failed exports get no ID; drop their partial output.
		_ = os.RemoveAll(dir)
		s.writeError(w, err)
		return
	}

	files := make([]string, len(res.Export.Files))
	for i, f := range res.Export.Files {
		files[i], _ = filepath.Rel(dir, f)
		files[i] = filepath.ToSlash(files[i])
	}
	st := res.Export.Stats
	s.logger.Info("export stored", "id", id, "files", len(files), "duration", st.Duration)
	writeJSON(w, http.StatusCreated, exportResponse{
		ID:    id,
		Files: files,
		Stats: exportStats{
			Meshes:    st.Meshes,
			Materials: st.Materials,
			Lights:    st.Lights,
			Frames:    st.Frames,
			Skipped:   st.Skipped,
		},
		Duration: st.Duration.String(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	dir, err := s.exportDir(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	files := []string{}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list export"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "files": files})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	dir, err := s.exportDir(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	name := filepath.FromSlash(chi.URLParam(r, "*"))
	if !filepath.IsLocal(name) {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid file name %q", name))
		return
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeNotFound, err, "file %s", name))
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "file %s", name))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	dir, err := s.exportDir(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "remove export"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportDir resolves an export ID to its directory.
func (s *Server) exportDir(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.New(errors.ErrCodeNotFound, "export %q not found", id)
	}
	dir := filepath.Join(s.dir, id)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", errors.New(errors.ErrCodeNotFound, "export %s not found", id)
	}
	return dir, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidLayer,
		errors.ErrCodeUnknownCommand:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidScene, errors.ErrCodeHostQuery:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
