package vocab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/desertthunder/flashdeck/internal/models"
	"github.com/desertthunder/flashdeck/internal/shared"
)

// CatalogScheme selects the SQLite catalog as the vocabulary source.
const CatalogScheme = "db:"

// Source yields the cards of one vocabulary resource.
type Source interface {
	Load(ctx context.Context) ([]models.Card, error)
	String() string
}

// CardLister is the read side of the catalog.
type CardLister interface {
	Cards() ([]models.Card, error)
}

// FileSource reads a local vocabulary file.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

func (s FileSource) Load(ctx context.Context) ([]models.Card, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return Parse(data, FormatFor(s.Path))
}

// HTTPSource fetches a JSON vocabulary document with a single GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) String() string { return s.URL }

func (s HTTPSource) Load(ctx context.Context) ([]models.Card, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return Parse(body, FormatFor(req.URL.Path))
}

// CatalogSource reads every live card from the SQLite catalog.
type CatalogSource struct {
	Catalog CardLister
}

func (s CatalogSource) String() string { return CatalogScheme }

func (s CatalogSource) Load(ctx context.Context) ([]models.Card, error) {
	if s.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog not opened", shared.ErrUnknownSource)
	}
	return s.Catalog.Cards()
}

// OpenOpts carries what some sources need to be constructed.
type OpenOpts struct {
	Client  *http.Client
	Catalog CardLister
}

// Open returns the [Source] described by spec: "db:", an http(s) URL, or a file path.
func Open(spec string, opts OpenOpts) (Source, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return nil, fmt.Errorf("%w: empty source", shared.ErrMissingArgument)
	case spec == CatalogScheme || spec == "db":
		if opts.Catalog == nil {
			return nil, fmt.Errorf("%w: %s requires the catalog database", shared.ErrUnknownSource, spec)
		}
		return CatalogSource{Catalog: opts.Catalog}, nil
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return HTTPSource{URL: spec, Client: opts.Client}, nil
	case strings.Contains(spec, "://"):
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownSource, spec)
	default:
		return FileSource{Path: spec}, nil
	}
}

// IsCatalog reports whether spec selects the SQLite catalog.
func IsCatalog(spec string) bool {
	spec = strings.TrimSpace(spec)
	return spec == CatalogScheme || spec == "db"
}

// LoadCards loads and validates the cards of src.
func LoadCards(ctx context.Context, src Source) ([]models.Card, error) {
	cards, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrLoadFailed, src, err)
	}

	var errs []error
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: entry %d: %v", shared.ErrInvalidCard, i, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrLoadFailed, src, errors.Join(errs...))
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrLoadFailed, src, shared.ErrEmptyDeck)
	}

	return cards, nil
}

// LoadDeck loads src into a [models.Deck].
func LoadDeck(ctx context.Context, src Source) (*models.Deck, error) {
	cards, err := LoadCards(ctx, src)
	if err != nil {
		return nil, err
	}
	return models.NewDeck(cards), nil
}
