// Package catalog loads the read-only reference data: the aircraft library
// and the container-type table used for slot-width resolution. Catalogs that
// are missing, unreadable, or structurally invalid degrade to empty; the
// caller decides how loudly to warn about that.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/skylane/loadplan/internal/model"
)

// Entry is one container-type record. Prefix matching against container IDs
// happens in stored order, first match wins.
type Entry struct {
	Prefix     string `json:"Prefix"`
	Type       string `json:"ULD Type"`
	WidthSlots int    `json:"Width (slots)"`
	Deck       string `json:"Deck"`
	Notes      string `json:"Notes"`
}

// ContainerTypes is an ordered container-type table. The zero value (nil) is
// a valid empty catalog: every lookup falls back to the defaults.
type ContainerTypes []Entry

// Width resolves the slot width for a container ID. The first entry whose
// prefix starts the ID wins. No match, an empty catalog, or a non-positive
// stored width all yield 1.
func (ct ContainerTypes) Width(containerID string) int {
	for _, e := range ct {
		if strings.HasPrefix(containerID, e.Prefix) {
			if e.WidthSlots < 1 {
				return 1
			}
			return e.WidthSlots
		}
	}
	return 1
}

// Lookup returns the first entry whose prefix starts the ID, for callers
// that need the type code or deck hint rather than just the width.
func (ct ContainerTypes) Lookup(containerID string) (Entry, bool) {
	for _, e := range ct {
		if strings.HasPrefix(containerID, e.Prefix) {
			return e, true
		}
	}
	return Entry{}, false
}

// TypeCode returns the display type code for a container ID, or "" when the
// ID matches no entry.
func (ct ContainerTypes) TypeCode(containerID string) string {
	e, ok := ct.Lookup(containerID)
	if !ok {
		return ""
	}
	return e.Type
}

// LoadContainerTypes reads the container-type table from a JSON array file.
// Any failure returns an empty catalog together with the error so the caller
// can warn and continue with default widths.
func LoadContainerTypes(path string) (ContainerTypes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read container-type catalog: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse container-type catalog %s: %w", path, err)
	}
	return entries, nil
}

// Library is the aircraft catalog keyed by model name.
type Library map[string]model.Aircraft

// Models returns the catalog's model names sorted for stable listings.
func (l Library) Models() []string {
	names := make([]string, 0, len(l))
	for m := range l {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// LoadAircraft reads the aircraft library from a JSON array file. Records
// without a model name are skipped. Missing deck fields stay zero; a missing
// or mis-sized arm sequence is handled later by arm synthesis.
func LoadAircraft(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aircraft catalog: %w", err)
	}

	var aircraft []model.Aircraft
	if err := json.Unmarshal(data, &aircraft); err != nil {
		return nil, fmt.Errorf("parse aircraft catalog %s: %w", path, err)
	}

	lib := make(Library, len(aircraft))
	for _, a := range aircraft {
		if a.Model == "" {
			continue
		}
		if a.MainDeck.RowLength == 0 {
			a.MainDeck.RowLength = 8
		}
		if a.LowerDeck.RowLength == 0 {
			a.LowerDeck.RowLength = 8
		}
		lib[a.Model] = a
	}
	return lib, nil
}
