package state

import (
	"net/url"
	"strconv"
)

// MaxSlots is the number of URL slots the inspector supports.
const MaxSlots = 3

// Slot is one URL entry with its optional note.
type Slot struct {
	URL  string
	Note string
}

// Encode flattens slots into the url1..url3 / note1..note3 query keys.
// An empty field emits no key at all, so the canonical encoding of an
// untouched page is the empty query string. Positions beyond MaxSlots are
// never emitted.
func Encode(slots []Slot) url.Values {
	values := url.Values{}
	for i, s := range slots {
		if i >= MaxSlots {
			break
		}
		n := strconv.Itoa(i + 1)
		if s.URL != "" {
			values.Set("url"+n, s.URL)
		}
		if s.Note != "" {
			values.Set("note"+n, s.Note)
		}
	}
	return values
}

// Decode reads url1..url3 / note1..note3 back into slots. Presence is what
// counts: a urlN key with an empty value still yields a slot, and noteN
// attaches to the slot from its own urlN. A note whose urlN is absent is
// dropped. With no urlN keys at all Decode returns exactly one empty slot,
// the starting state of the page. It never returns zero slots.
func Decode(values url.Values) []Slot {
	var slots []Slot
	for i := 1; i <= MaxSlots; i++ {
		n := strconv.Itoa(i)
		if !values.Has("url" + n) {
			continue
		}
		slots = append(slots, Slot{
			URL:  values.Get("url" + n),
			Note: values.Get("note" + n),
		})
	}
	if len(slots) == 0 {
		slots = []Slot{{}}
	}
	return slots
}
