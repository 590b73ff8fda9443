package main

import (
	"context"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/config"
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/leads"
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/resilience"
	"github.com/LUMNISEDUCACIONAL/leadhunter/pkg/gemini"
)

// newSearcher wires the retrieval client from config.
func newSearcher(c *config.Config) *leads.Searcher {
	client := gemini.NewClient(c.Gemini.Key,
		gemini.WithBaseURL(c.Gemini.BaseURL),
		gemini.WithModel(c.Gemini.Model),
	)
	return leads.NewSearcher(client)
}

// runSearch executes one search with the caller-side retry policy. The
// retrieval client itself never retries; transient backend failures are
// retried here, validation errors and permanent failures are not.
func runSearch(ctx context.Context, searcher *leads.Searcher, c *config.Config, criteria model.SearchCriteria) (model.SearchResult, error) {
	criteria = criteria.Normalize(c.Search.Country)

	retryCfg := resilience.DefaultConfig()
	retryCfg.MaxAttempts = c.Search.Retries + 1
	retryCfg.OnRetry = resilience.RetryLogger("gemini", "search")

	return resilience.Do(ctx, retryCfg, func(ctx context.Context) (model.SearchResult, error) {
		return searcher.Search(ctx, criteria)
	})
}
