// Package pokeapi is the client for the public PokeAPI lookup service
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/poke-roster/internal/clients/pokeapi Client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
	"github.com/KirkDiggler/poke-roster/internal/errors"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultHTTPTimeout bounds a single lookup
	DefaultHTTPTimeout = 10 * time.Second

	// NotFoundMessage is shown to the user when a lookup fails
	NotFoundMessage = "Pokemon not found. Try a name like 'pikachu' or an ID like '25'."

	// maxBodySize caps how much of a response body is read
	maxBodySize = 8 << 20

	userAgent = "poke-roster/1.0"
)

// Client defines the interface for upstream lookups
type Client interface {
	// GetPokemon fetches the record for an already normalized name or id.
	// Returns errors.NotFound when the service reports no match or the
	// request cannot be completed.
	GetPokemon(ctx context.Context, key string) (*pokemon.Record, error)
}

// Config contains configuration options for the client.
type Config struct {
	// BaseURL for the API (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to DefaultHTTPTimeout)
	HTTPTimeout time.Duration
	// HTTPClient overrides the transport, mostly for tests (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.HTTPTimeout < 0 {
		return errors.InvalidArgumentf("http timeout must be positive, got %s", cfg.HTTPTimeout)
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.InvalidArgumentf("invalid base URL: %q", cfg.BaseURL)
	}
	return nil
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *client) pokemonURL(key string) string {
	return c.baseURL + "/pokemon/" + url.PathEscape(key)
}

func (c *client) GetPokemon(ctx context.Context, key string) (*pokemon.Record, error) {
	if key == "" {
		return nil, errors.InvalidArgument("key is required")
	}

	endpoint := c.pokemonURL(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	slog.Debug("Calling PokeAPI", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.WrapWithCode(ctxErr, errors.GetCode(ctxErr), "lookup canceled")
		}
		slog.Debug("PokeAPI request failed", "key", key, "error", err)
		return nil, notFound(key, err)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // body already consumed
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("PokeAPI returned non-success status", "key", key, "status", resp.StatusCode)
		return nil, notFound(key, fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, notFound(key, err)
	}

	record, err := pokemon.NewRecord(body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to decode pokemon response")
	}

	return record, nil
}

func notFound(key string, cause error) error {
	return errors.NotFound(NotFoundMessage).
		WithCause(cause).
		WithMeta("key", key)
}
