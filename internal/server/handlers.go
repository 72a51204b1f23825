package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joshuapare/elfmap/elf"
	"github.com/joshuapare/elfmap/elf/printer"
)

const (
	maxInspectBytes = 256 << 20 // upload cap
	multipartMemory = 32 << 20
	fallbackName    = "upload"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// errorKind maps a parse error onto its wire kind.
func errorKind(err error) string {
	switch {
	case errors.Is(err, elf.ErrBadMagic):
		return "bad-magic"
	case errors.Is(err, elf.ErrTruncatedHeader):
		return "truncated-header"
	case errors.Is(err, elf.ErrMalformedTableBounds):
		return "malformed-table-bounds"
	default:
		return "error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, kind string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error(), Kind: kind})
}

// writeFile streams the whole-file JSON envelope.
func (s *Server) writeFile(w http.ResponseWriter, f *elf.File) {
	w.Header().Set("Content-Type", "application/json")
	p := printer.New(w, printer.Options{Format: printer.FormatJSON})
	if err := p.PrintFile(f); err != nil {
		s.log.Error("write envelope", "file", f.Name, "err", err)
	}
}

// resolvePath joins a request path onto the served root and rejects paths
// that would escape it.
func (s *Server) resolvePath(name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute paths are not allowed")
	}
	path := filepath.Join(s.root, name)
	if path != s.root && !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the served root", name)
	}
	return path, nil
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "bad-request", errors.New("missing file parameter"))
		return
	}

	path, err := s.resolvePath(name)
	if err != nil {
		s.writeError(w, http.StatusForbidden, "forbidden", err)
		return
	}

	start := time.Now()
	f, err := elf.Open(path)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.writeError(w, http.StatusNotFound, "not-found", err)
			return
		}
		s.metrics.observeParse(errorKind(err), elapsed)
		s.writeError(w, http.StatusUnprocessableEntity, errorKind(err), err)
		return
	}

	s.metrics.observeParse("ok", elapsed)
	s.writeFile(w, f)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	var data []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			s.writeError(w, http.StatusBadRequest, "bad-request", err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "bad-request", err)
			return
		}
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "bad-request", err)
			return
		}
		if name == "" {
			name = r.FormValue("name")
		}
		if name == "" {
			name = header.Filename
		}
	} else {
		var err error
		data, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxInspectBytes))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "bad-request", err)
			return
		}
	}
	if name == "" {
		name = fallbackName
	}

	start := time.Now()
	f, err := elf.Inspect(name, data)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.metrics.observeParse(errorKind(err), elapsed)
		s.writeError(w, http.StatusUnprocessableEntity, errorKind(err), err)
		return
	}

	s.metrics.observeParse("ok", elapsed)
	s.writeFile(w, f)
}
