package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dgallion1/mdrender/internal/compiler"
	"github.com/dgallion1/mdrender/internal/parser"
)

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	src, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "markdown exceeds max size", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	doc := parser.Parse(src)
	tree, err := s.compiler.Compile(doc, src)
	if err != nil {
		var re *compiler.RenderError
		if errors.As(err, &re) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error": re.Error(),
				"kind":  re.Kind,
				"path":  re.Path,
			})
			return
		}
		s.log.Error("render failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tree":        nodeViews(tree.Children),
		"diagnostics": diagnosticViews(tree.Diagnostics),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
