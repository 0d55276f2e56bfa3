package openai

import (
	"context"

	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// FixtureCompletion is the canned completion served in test mode. It uses
// the canonical slide text format, so the rest of the pipeline exercises
// its real code paths without network access or API credits.
const FixtureCompletion = `Slide 1: Ham on Rye
- I Like Ham.
- Ham is good.
Slide 2: Ham on Ham
- Bacon is also good.
- Are fish bacon?
Slide 3: Rye on Ham
- Are you a fish?
- Can fish eat bread?
`

// FixtureClient is a CompletionClient that returns a fixed completion
// without touching the network. Selected by the test_mode config toggle.
type FixtureClient struct {
	text string
}

// NewFixtureClient creates a fixture client serving the default canned
// completion.
func NewFixtureClient() *FixtureClient {
	return &FixtureClient{text: FixtureCompletion}
}

// NewFixtureClientWithText creates a fixture client serving custom text
func NewFixtureClientWithText(text string) *FixtureClient {
	return &FixtureClient{text: text}
}

// Complete returns the canned completion regardless of the prompt
func (c *FixtureClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.text, nil
}

// Ensure FixtureClient implements ports.CompletionClient
var _ ports.CompletionClient = (*FixtureClient)(nil)
