package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wadahiro/urllens/internal/compare"
	"github.com/wadahiro/urllens/internal/state"
	"github.com/wadahiro/urllens/internal/urlparse"
)

type inspectResponse struct {
	Slots      []inspectSlot      `json:"slots"`
	Comparison *inspectComparison `json:"comparison,omitempty"`
}

type inspectSlot struct {
	URL    string         `json:"url"`
	Note   string         `json:"note,omitempty"`
	Parsed *inspectParsed `json:"parsed,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type inspectParsed struct {
	Protocol string            `json:"protocol"`
	Host     string            `json:"host"`
	Path     string            `json:"path"`
	Params   map[string]string `json:"params"`
}

type inspectComparison struct {
	Missing      []string `json:"missing"`
	ValueChanged []string `json:"valueChanged"`
	AllIdentical bool     `json:"allIdentical"`
}

// handleInspect is the JSON mirror of the index page: same query-string
// contract, same classification.
func (h *Handler) handleInspect(w http.ResponseWriter, r *http.Request) {
	slots := state.Decode(r.URL.Query())

	var resp inspectResponse
	var maps []map[string]string
	for _, s := range slots {
		is := inspectSlot{URL: s.URL, Note: s.Note}
		if s.URL != "" {
			p, err := urlparse.Parse(s.URL)
			h.telemetry.ObserveParse(err == nil)
			if err != nil {
				is.Error = err.Error()
			} else {
				params := p.ParamMap()
				is.Parsed = &inspectParsed{
					Protocol: p.Protocol,
					Host:     p.Host,
					Path:     p.Path,
					Params:   params,
				}
				maps = append(maps, params)
			}
		}
		resp.Slots = append(resp.Slots, is)
	}

	if len(maps) >= 2 {
		res := compare.Compare(maps)
		h.telemetry.ObserveCompare(res.AllIdentical)
		resp.Comparison = &inspectComparison{
			Missing:      emptyNotNil(res.Missing),
			ValueChanged: emptyNotNil(res.ValueChanged),
			AllIdentical: res.AllIdentical,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Encode inspect response failed", "error", err)
	}
}

// emptyNotNil keeps empty sets as [] instead of null in the JSON output.
func emptyNotNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
