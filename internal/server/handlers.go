package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/model"
	"github.com/ziadkadry99/slidepack/internal/slide"
	"github.com/ziadkadry99/slidepack/internal/theme"
)

// multipartMemory is how much of a multipart upload is held in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	p, err := s.reader.ImportFromArchive(r.Context(), data)
	if err != nil {
		s.writeArchiveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleImportFiles(w http.ResponseWriter, r *http.Request) {
	files, err := readUploads(r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	reader := s.reader
	if r.URL.Query().Get("assets") == "true" {
		reader = archive.NewReader(
			archive.WithLogger(s.logger),
			archive.WithMaxEntrySize(s.cfg.MaxEntryBytes),
			archive.WithFileSetAssets(true),
		)
	}

	p, err := reader.ImportFromFileSet(r.Context(), files)
	if err != nil {
		s.writeArchiveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleWrite(mode archive.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p *model.Project
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeBodyError(w, err)
			return
		}
		if p == nil {
			writeError(w, http.StatusBadRequest, "request body must be a project")
			return
		}
		p = p.Clone()
		model.Renumber(p.Slides)

		data, err := s.writer.Write(r.Context(), p, mode)
		if err != nil {
			s.writeArchiveError(w, err)
			return
		}

		op := catalog.OpSave
		name := archiveName(p.Name, "")
		if mode == archive.ModeStandalone {
			op = catalog.OpExport
			name = archiveName(p.Name, "-player")
		}
		s.record(r, catalog.EntryFor(op, p, "api", name, len(data)))

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) handleCompileTheme(w http.ResponseWriter, r *http.Request) {
	var colors model.ThemeColors
	if err := json.NewDecoder(r.Body).Decode(&colors); err != nil {
		writeBodyError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, theme.CompilePalette(colors))
}

func (s *Server) handleParseSlides(w http.ResponseWriter, r *http.Request) {
	files, err := readUploads(r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	slides := make([]model.Slide, 0, len(files))
	for _, f := range files {
		sl, err := slide.ParseFile(f.Name, f.Data)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slides = append(slides, sl)
	}
	model.Renumber(slides)
	writeJSON(w, http.StatusOK, slides)
}

// record adds a history entry when history is enabled. Failures are logged
// and do not affect the response.
func (s *Server) record(r *http.Request, e catalog.Entry) {
	if s.catalog == nil {
		return
	}
	if _, err := s.catalog.Record(r.Context(), e); err != nil {
		s.logger.Warn("recording history entry failed", zap.Error(err))
	}
}

func (s *Server) writeArchiveError(w http.ResponseWriter, err error) {
	var fe *archive.FormatError
	var ee *archive.ExportError
	switch {
	case errors.As(err, &fe):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &ee):
		s.logger.Error("writing archive failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// readUploads collects the "files" parts of a multipart request. A "paths"
// value at the same position carries the file's folder-relative path, since
// multipart filenames arrive without directories.
func readUploads(r *http.Request) ([]archive.NamedFile, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, err
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	paths := r.MultipartForm.Value["paths"]
	files := make([]archive.NamedFile, 0, len(headers))
	for i, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		f := archive.NamedFile{Name: path.Base(model.CleanRelPath(fh.Filename)), Data: data}
		if i < len(paths) && paths[i] != "" {
			f.Path = paths[i]
			f.Name = path.Base(model.CleanRelPath(paths[i]))
		}
		files = append(files, f)
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// archiveName derives a download filename from a project name.
func archiveName(name, suffix string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r < 0x20:
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "presentation"
	}
	return name + suffix + ".zip"
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeBodyError maps request decoding failures, reporting oversized bodies
// as 413 and everything else as 400.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
