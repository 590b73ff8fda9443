package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Sentinel values used when the backend omits a field.
const (
	UnknownName  = "Desconhecido"
	NotAvailable = "N/A"
)

// Quantity bounds for a single search.
const (
	MinQuantity     = 1
	MaxQuantity     = 30
	DefaultQuantity = 10
)

// ErrMissingNiche is returned when a search is attempted without a niche.
var ErrMissingNiche = eris.New("a market niche is required")

// SearchCriteria describes a single lead search: what to look for and where.
type SearchCriteria struct {
	Niche    string `json:"niche"`
	Country  string `json:"country"`
	AreaCode string `json:"area_code,omitempty"`
	Quantity int    `json:"quantity"`
}

// Validate rejects criteria that must not reach the backend.
func (c SearchCriteria) Validate() error {
	if strings.TrimSpace(c.Niche) == "" {
		return ErrMissingNiche
	}
	return nil
}

// Normalize returns a copy with the country default applied and the quantity
// clamped to [MinQuantity, MaxQuantity]. A zero quantity becomes
// DefaultQuantity.
func (c SearchCriteria) Normalize(defaultCountry string) SearchCriteria {
	if strings.TrimSpace(c.Country) == "" {
		c.Country = defaultCountry
	}
	switch {
	case c.Quantity == 0:
		c.Quantity = DefaultQuantity
	case c.Quantity < MinQuantity:
		c.Quantity = MinQuantity
	case c.Quantity > MaxQuantity:
		c.Quantity = MaxQuantity
	}
	return c
}

// Lead is a single business contact extracted from the backend's response.
// Fields the backend omitted carry sentinel values, never empty strings.
type Lead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`
}

// SearchResult is the outcome of one search invocation. Leads preserve the
// backend's row order. RawText is the unmodified response, kept for
// diagnostics. SourceURLs are the deduplicated grounding sources in
// first-seen order.
type SearchResult struct {
	Leads      []Lead   `json:"leads"`
	RawText    string   `json:"raw_text"`
	SourceURLs []string `json:"source_urls"`
}
