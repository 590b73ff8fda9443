package leads

import (
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
)

// Assemble combines the leads extracted from text with the deduplicated
// grounding sources into a single result. It always succeeds: an
// unparseable response degrades to zero leads with the raw text preserved.
func Assemble(text string, rawSourceURLs []string) model.SearchResult {
	seen := make(map[string]struct{}, len(rawSourceURLs))
	urls := make([]string, 0, len(rawSourceURLs))
	for _, u := range rawSourceURLs {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	return model.SearchResult{
		Leads:      ExtractLeads(text),
		RawText:    text,
		SourceURLs: urls,
	}
}
