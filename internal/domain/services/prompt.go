package services

import (
	"fmt"
	"strings"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// promptClosing directs the model to answer in the line format the
// completion parser understands.
const promptClosing = `Create a pitch deck for my business to be presented to investors.

The pitch deck should have slides for the: problem, solution, market, product, business model, competitive advantages, team, and business model.

Each slide should be in the following format:

Slide 1: Slide Title
- A relevant point.
- Additional points...
`

// BuildPitchPrompt composes the completion prompt from the business
// description. Name, Vision, Problem, and Solution are required; each
// optional field that is non-empty contributes exactly one labeled clause.
// Pure function of its inputs.
func BuildPitchPrompt(input ports.PitchInput) (string, error) {
	required := []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"vision", input.Vision},
		{"problem", input.Problem},
		{"solution", input.Solution},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return "", &entities.MissingFieldError{Field: f.name}
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "My business, %q, has the following vision: <| %s |>\n\n", input.Name, input.Vision)
	fmt.Fprintf(&b, "Customers have a problem: <| %s |>\n\n", input.Problem)
	fmt.Fprintf(&b, "My business solves this problem by: <| %s |>\n\n", input.Solution)

	if input.Advantage != "" {
		fmt.Fprintf(&b, "Our business has the following competitive advantages: <| %s |>\n\n", input.Advantage)
	}

	if input.Market != "" {
		fmt.Fprintf(&b, "The following is known about the business market: <| %s |>\n\n", input.Market)
	}

	if input.Team != "" {
		fmt.Fprintf(&b, "The team behind the business is: <| %s |>\n\n", input.Team)
	}

	b.WriteString(promptClosing)

	return b.String(), nil
}
