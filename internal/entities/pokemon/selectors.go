package pokemon

import (
	"sort"

	"github.com/tidwall/gjson"
)

// SelectSprite returns the official artwork URL, falling back to the default
// front sprite, or "" when the record has neither.
func SelectSprite(r *Record) string {
	return firstNonEmpty(r.str(pathArtwork), r.str(pathFrontDefault))
}

// SelectCry returns the latest cry URL, falling back to the legacy one.
func SelectCry(r *Record) string {
	return firstNonEmpty(r.str(pathCryLatest), r.str(pathCryLegacy))
}

// SelectMoveNames returns one name per move reference, sorted ascending.
// Duplicates reported upstream are kept.
func SelectMoveNames(r *Record) []string {
	names := []string{}
	if r == nil {
		return names
	}

	for _, res := range gjson.GetBytes(r.raw, pathMoveNames).Array() {
		if res.Type == gjson.String {
			names = append(names, res.Str)
		}
	}
	sort.Strings(names)
	return names
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
