package urlparse

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrNotAbsolute is returned by Parse for inputs without a scheme.
var ErrNotAbsolute = errors.New("not an absolute URL")

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// ParsedURL is the structural decomposition of an absolute URL.
// Params is sorted by key in ascending collation order.
type ParsedURL struct {
	Protocol string
	Host     string
	Path     string
	Params   []Param
}

// Parse decomposes a raw string into protocol, host, path, and sorted query
// parameters. Surrounding whitespace is trimmed first, mirroring what browser
// address bars do. The input must be an absolute URL; anything without a
// scheme (or rejected by net/url) returns an error and no result.
//
// The host is reported exactly as net/url parses it, port included. A URL
// with an authority and no path reports "/". For a key repeated in the query
// the last occurrence wins.
func Parse(raw string) (*ParsedURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("parse %q: %w", raw, ErrNotAbsolute)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", trimmed, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("parse %q: %w", trimmed, ErrNotAbsolute)
	}

	p := &ParsedURL{
		Protocol: u.Scheme,
		Host:     u.Host,
		Path:     u.Path,
	}
	if u.Opaque != "" {
		// mailto:user@example.com and friends carry their target in the
		// opaque part, not in Path.
		p.Path = u.Opaque
	} else if p.Path == "" && u.Host != "" {
		p.Path = "/"
	}
	p.Params = sortedParams(u.RawQuery)

	return p, nil
}

// ParamMap returns the parameters as a flat key-value map.
func (p *ParsedURL) ParamMap() map[string]string {
	m := make(map[string]string, len(p.Params))
	for _, kv := range p.Params {
		m[kv.Key] = kv.Value
	}
	return m
}

// sortedParams parses a raw query string into key-sorted parameters.
// Malformed pairs are dropped, valid ones kept (the net/url behavior).
func sortedParams(rawQuery string) []Param {
	if rawQuery == "" {
		return nil
	}

	values, _ := url.ParseQuery(rawQuery)
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	SortKeys(keys)

	params := make([]Param, 0, len(keys))
	for _, k := range keys {
		vs := values[k]
		params = append(params, Param{Key: k, Value: vs[len(vs)-1]})
	}
	return params
}

// SortKeys sorts parameter keys in place in ascending Unicode collation
// order. All key ordering in this module goes through here so the page,
// the API, and the comparator agree.
func SortKeys(keys []string) {
	// A Collator is not safe for concurrent use, so build one per call.
	collate.New(language.Und).SortStrings(keys)
}
