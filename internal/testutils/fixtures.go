package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
)

// PikachuJSON is a trimmed PokeAPI response for pikachu
const PikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"sprites": {
		"front_default": "https://example.test/sprites/25.png",
		"other": {
			"official-artwork": {
				"front_default": "https://example.test/artwork/25.png"
			}
		}
	},
	"cries": {
		"latest": "https://example.test/cries/latest/25.ogg",
		"legacy": "https://example.test/cries/legacy/25.ogg"
	},
	"moves": [
		{"move": {"name": "thunder-shock"}},
		{"move": {"name": "growl"}},
		{"move": {"name": "tail-whip"}},
		{"move": {"name": "quick-attack"}},
		{"move": {"name": "thunderbolt"}}
	]
}`

// BulbasaurJSON has no artwork and only a legacy cry
const BulbasaurJSON = `{
	"id": 1,
	"name": "bulbasaur",
	"sprites": {"front_default": "https://example.test/sprites/1.png", "other": {}},
	"cries": {"latest": null, "legacy": "https://example.test/cries/legacy/1.ogg"},
	"moves": [
		{"move": {"name": "tackle"}},
		{"move": {"name": "growl"}},
		{"move": {"name": "vine-whip"}},
		{"move": {"name": "razor-leaf"}}
	]
}`

// CreatureJSON builds a minimal record with the given id and name
func CreatureJSON(id int, name string) string {
	return fmt.Sprintf(`{"id":%d,"name":%q,"moves":[{"move":{"name":"tackle"}}]}`, id, name)
}

// CreateTestRecord parses raw into a record, failing the test on error
func CreateTestRecord(t *testing.T, raw string) *pokemon.Record {
	t.Helper()
	record, err := pokemon.NewRecord([]byte(raw))
	require.NoError(t, err)
	return record
}
