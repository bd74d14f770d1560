package translate

import "context"

// Translator turns Japanese free text into English. Implementations must
// be safe for concurrent use; the crawl pipeline calls them from a worker
// pool.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Noop returns input unchanged. Used when no translation credentials are
// configured and in tests.
type Noop struct{}

func (Noop) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}
