package leads

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
	"github.com/LUMNISEDUCACIONAL/leadhunter/pkg/gemini"
)

// retrievalMessage is the opaque user-facing text for any backend failure.
// The raw cause is logged, never shown.
const retrievalMessage = "search failed, check credentials or try again later"

// RetrievalError reports a transport/auth/backend failure from the
// retrieval step. Its message is deliberately opaque; the cause stays
// reachable through Unwrap for logging and retry classification.
type RetrievalError struct {
	cause error
}

func (e *RetrievalError) Error() string {
	return retrievalMessage
}

func (e *RetrievalError) Unwrap() error {
	return e.cause
}

// IsRetrievalError reports whether err originated in the retrieval step.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// Searcher runs the full pipeline: build the prompt, call the backend,
// assemble the structured result. It holds no state across invocations and
// is safe for concurrent independent searches.
type Searcher struct {
	client gemini.Client
}

// NewSearcher creates a Searcher backed by the given retrieval client.
func NewSearcher(client gemini.Client) *Searcher {
	return &Searcher{client: client}
}

// Search runs one search invocation. Either the backend call fails as a
// RetrievalError with no leads, or it succeeds with zero or more leads —
// never a mix of error and data. Cancellation is the caller's concern: an
// abandoned call holds no resources needing release.
func (s *Searcher) Search(ctx context.Context, criteria model.SearchCriteria) (model.SearchResult, error) {
	if err := criteria.Validate(); err != nil {
		return model.SearchResult{}, err
	}

	prompt := BuildPrompt(criteria)
	zap.L().Debug("prompt built",
		zap.String("niche", criteria.Niche),
		zap.String("country", criteria.Country),
		zap.Int("quantity", criteria.Quantity),
	)

	retrieval, err := s.client.Retrieve(ctx, prompt)
	if err != nil {
		zap.L().Error("retrieval failed", zap.Error(err))
		return model.SearchResult{}, &RetrievalError{cause: err}
	}

	result := Assemble(retrieval.Text, retrieval.SourceURLs)
	zap.L().Info("search complete",
		zap.String("niche", criteria.Niche),
		zap.Int("leads", len(result.Leads)),
		zap.Int("sources", len(result.SourceURLs)),
	)

	return result, nil
}
