package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getlistd/listd/pkg/keeper"
	"github.com/getlistd/listd/pkg/portability"
)

// statusResponse is the /api/status payload.
type statusResponse struct {
	Name      string           `json:"name"`
	Version   string           `json:"version"`
	StartedAt time.Time        `json:"startedAt"`
	Uptime    string           `json:"uptime"`
	Lists     *keeper.Overview `json:"lists"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &statusResponse{
		Name:      "listd",
		Version:   s.version,
		StartedAt: s.startTime,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Lists:     s.registry.Overview(),
	})
}

func (s *Server) handleLists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Overview())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = portability.FormatJSON
	}

	doc, err := portability.Export(s.stores)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := portability.Encode(doc, format)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	switch format {
	case portability.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	case portability.FormatXML:
		w.Header().Set("Content-Type", "application/xml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	replace := false
	if v := r.URL.Query().Get("replace"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeErrorCode(w, http.StatusBadRequest, "invalid_query", "replace must be a boolean")
			return
		}
		replace = parsed
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	format := portability.FormatJSON
	if ct := r.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = portability.FormatYAML
	}
	doc, err := portability.Decode(body, format)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "invalid_document", err.Error())
		return
	}

	summary, err := portability.Import(s.stores, doc, replace)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "import_failed", err.Error())
		return
	}
	s.log.Info("import complete", "total", summary.Total, "replace", replace)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	counts := s.registry.ResetAll()
	s.log.Info("all lists reset", "counts", counts)
	writeJSON(w, http.StatusOK, map[string]interface{}{"reset": counts})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	counts := s.registry.ClearAll()
	s.log.Info("all lists cleared", "counts", counts)
	writeJSON(w, http.StatusOK, map[string]interface{}{"cleared": counts})
}
