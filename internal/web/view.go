package web

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/wadahiro/urllens/internal/compare"
	"github.com/wadahiro/urllens/internal/state"
	"github.com/wadahiro/urllens/internal/urlparse"
)

// PageData is everything the index template needs.
type PageData struct {
	Theme      string
	Slots      []SlotView
	Comparison *ComparisonView
	ShareURL   string
	AddURL     string // empty when the slot cap is reached
}

// SlotView is one URL slot with its parse outcome.
type SlotView struct {
	Index     int // 1-based, matches the urlN query key
	URL       string
	Note      string
	Label     string
	Error     string // parse failure reason, empty on success
	Parsed    *ParsedView
	RemoveURL string // empty for the only remaining slot
}

// ParsedView is the rendered decomposition of one slot's URL.
type ParsedView struct {
	Protocol         string
	Host             string
	Path             string
	RegisteredDomain string
	PublicSuffix     string
	Params           []ParamView
}

// ParamView is one query parameter row. InspectURL is set when the value is
// itself an absolute http(s) URL worth chasing into a fresh inspection.
type ParamView struct {
	Key        string
	Value      string
	InspectURL string
}

// ComparisonView is the cross-URL parameter table.
type ComparisonView struct {
	Labels       []string
	Rows         []CompareRow
	AllIdentical bool
	MissingCount int
	ChangedCount int
}

// CompareRow is one key across all compared URLs.
type CompareRow struct {
	Key    string
	Status string // same, changed, or missing
	Cells  []CompareCell
}

// CompareCell is one key's value in one URL. Diff carries inline markup for
// changed rows, rendered against the first compared URL's value.
type CompareCell struct {
	Present bool
	Value   string
	Diff    template.HTML
}

func (h *Handler) buildPageData(slots []state.Slot) PageData {
	data := PageData{Theme: h.theme}

	var labels []string
	var maps []map[string]string
	for i, s := range slots {
		sv := SlotView{
			Index: i + 1,
			URL:   s.URL,
			Note:  s.Note,
			Label: slotLabel(i, s.Note),
		}
		if len(slots) > 1 {
			sv.RemoveURL = removeURL(slots, i)
		}
		if s.URL != "" {
			p, err := urlparse.Parse(s.URL)
			h.telemetry.ObserveParse(err == nil)
			if err != nil {
				sv.Error = err.Error()
			} else {
				sv.Parsed = buildParsedView(p)
				labels = append(labels, sv.Label)
				maps = append(maps, p.ParamMap())
			}
		}
		data.Slots = append(data.Slots, sv)
	}

	if len(maps) >= 2 {
		res := compare.Compare(maps)
		h.telemetry.ObserveCompare(res.AllIdentical)
		data.Comparison = buildComparisonView(labels, maps, res)
	}

	data.ShareURL = shareURL(slots)
	if len(slots) < state.MaxSlots {
		data.AddURL = addURL(slots)
	}
	return data
}

func buildParsedView(p *urlparse.ParsedURL) *ParsedView {
	v := &ParsedView{
		Protocol: p.Protocol,
		Host:     p.Host,
		Path:     p.Path,
	}
	if p.Host != "" {
		info := urlparse.HostDetails(p.Host)
		v.RegisteredDomain = info.RegisteredDomain
		v.PublicSuffix = info.PublicSuffix
	}
	for _, kv := range p.Params {
		v.Params = append(v.Params, ParamView{
			Key:        kv.Key,
			Value:      kv.Value,
			InspectURL: paramInspectURL(kv.Value),
		})
	}
	return v
}

func buildComparisonView(labels []string, maps []map[string]string, res compare.Result) *ComparisonView {
	missing := toSet(res.Missing)
	changed := toSet(res.ValueChanged)

	union := make(map[string]struct{})
	for _, m := range maps {
		for k := range m {
			union[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	urlparse.SortKeys(keys)

	view := &ComparisonView{
		Labels:       labels,
		AllIdentical: res.AllIdentical,
		MissingCount: len(res.Missing),
		ChangedCount: len(res.ValueChanged),
	}
	for _, k := range keys {
		row := CompareRow{Key: k, Status: "same"}
		if _, ok := missing[k]; ok {
			row.Status = "missing"
		} else if _, ok := changed[k]; ok {
			row.Status = "changed"
		}

		baseline := ""
		haveBaseline := false
		for _, m := range maps {
			v, ok := m[k]
			cell := CompareCell{Present: ok, Value: v}
			if ok && row.Status == "changed" {
				if !haveBaseline {
					baseline, haveBaseline = v, true
				} else if v != baseline {
					cell.Diff = diffHTML(baseline, v)
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// diffHTML renders value diff spans as escaped HTML with ins/del markup.
func diffHTML(previous, current string) template.HTML {
	var b strings.Builder
	for _, s := range compare.DiffValue(previous, current) {
		text := template.HTMLEscapeString(s.Text)
		switch s.Op {
		case compare.SpanInsert:
			b.WriteString("<ins>" + text + "</ins>")
		case compare.SpanDelete:
			b.WriteString("<del>" + text + "</del>")
		default:
			b.WriteString(text)
		}
	}
	return template.HTML(b.String())
}

func slotLabel(i int, note string) string {
	if note != "" {
		return note
	}
	return "URL " + strconv.Itoa(i+1)
}

// slotValues is the presentation encoding of slots: unlike state.Encode it
// always emits urlN, so empty rows keep their place through the address bar
// (state.Decode treats a present-but-empty urlN as a real slot).
func slotValues(slots []state.Slot) url.Values {
	values := url.Values{}
	for i, s := range slots {
		if i >= state.MaxSlots {
			break
		}
		n := strconv.Itoa(i + 1)
		values.Set("url"+n, s.URL)
		if s.Note != "" {
			values.Set("note"+n, s.Note)
		}
	}
	return values
}

func addURL(slots []state.Slot) string {
	grown := append(append([]state.Slot{}, slots...), state.Slot{})
	return "/?" + slotValues(grown).Encode()
}

func removeURL(slots []state.Slot, i int) string {
	rest := append(append([]state.Slot{}, slots[:i]...), slots[i+1:]...)
	if len(rest) == 0 {
		return "/"
	}
	return "/?" + slotValues(rest).Encode()
}

// shareURL is the canonical encoding of the current slots, with empty
// fields dropped.
func shareURL(slots []state.Slot) string {
	values := state.Encode(slots)
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}

// paramInspectURL links a parameter value back into the inspector when the
// value is itself an absolute http(s) URL.
func paramInspectURL(value string) string {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return "/?url1=" + url.QueryEscape(value)
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
