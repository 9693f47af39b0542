// Package pokemon holds the creature record returned by the upstream lookup
// service and the pure selectors that derive display fields from it.
package pokemon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/poke-roster/internal/errors"
)

// Field paths into the upstream record
const (
	pathName         = "name"
	pathID           = "id"
	pathArtwork      = "sprites.other.official-artwork.front_default"
	pathFrontDefault = "sprites.front_default"
	pathCryLatest    = "cries.latest"
	pathCryLegacy    = "cries.legacy"
	pathMoveNames    = "moves.#.move.name"
)

// Record is a creature record as returned by the upstream service.
// It is read-only once constructed; the raw JSON is kept so it can be
// persisted exactly as it was received.
type Record struct {
	raw []byte
}

// NewRecord validates raw as a JSON object and wraps it
func NewRecord(raw []byte) (*Record, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.InvalidArgument("record is not valid JSON")
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return nil, errors.InvalidArgument("record must be a JSON object")
	}

	cp := make([]byte, len(raw))
	copy(cp, raw)
	return &Record{raw: cp}, nil
}

// Raw returns a copy of the record's JSON
func (r *Record) Raw() []byte {
	if r == nil {
		return nil
	}
	cp := make([]byte, len(r.raw))
	copy(cp, r.raw)
	return cp
}

// Name returns the upstream name, e.g. "pikachu"
func (r *Record) Name() string {
	return r.str(pathName)
}

// ID returns the upstream numeric id, 0 when absent
func (r *Record) ID() int {
	if r == nil {
		return 0
	}
	return int(gjson.GetBytes(r.raw, pathID).Int())
}

// str returns the string at path, treating null, non-strings and "" as absent
func (r *Record) str(path string) string {
	if r == nil {
		return ""
	}
	res := gjson.GetBytes(r.raw, path)
	if res.Type != gjson.String {
		return ""
	}
	return res.Str
}

// NormalizeKey lowercases and trims a user supplied name or id so that all
// cache and lookup operations agree on one key.
func NormalizeKey(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// DisplayName upper-cases the first letter of name
func DisplayName(name string) string {
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + name[size:]
}
