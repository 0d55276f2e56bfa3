package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnayar/pitchdeck/internal/adapters/secondary/openai"
	"github.com/vnayar/pitchdeck/internal/domain/entities"
)

func TestCompletionParser_Parse(t *testing.T) {
	p := NewCompletionParser()

	t.Run("extracts slides and bullets in order", func(t *testing.T) {
		text := `Slide 1: Ham on Rye
- I Like Ham.
- Ham is good.
Slide 2: Ham on Ham
- Bacon is also good.
- Are fish bacon?
`
		slides := p.Parse(text)

		require.Len(t, slides, 2)
		assert.Equal(t, "Ham on Rye", slides[0].Title)
		assert.Equal(t, []string{"I Like Ham.", "Ham is good."}, slides[0].Items)
		assert.Equal(t, "Ham on Ham", slides[1].Title)
		assert.Equal(t, []string{"Bacon is also good.", "Are fish bacon?"}, slides[1].Items)
	})

	t.Run("splits title on first colon only", func(t *testing.T) {
		slides := p.Parse("Slide 1: Growth: Year One\n")

		require.Len(t, slides, 1)
		assert.Equal(t, "Growth: Year One", slides[0].Title)
	})

	t.Run("ignores surrounding prose", func(t *testing.T) {
		text := `Sure, here is your pitch deck:

Slide 1: The Idea
- One point.

Let me know if you need anything else!
`
		slides := p.Parse(text)

		require.Len(t, slides, 1)
		assert.Equal(t, "The Idea", slides[0].Title)
		assert.Equal(t, []string{"One point."}, slides[0].Items)
	})

	t.Run("tolerates leading whitespace on lines", func(t *testing.T) {
		text := "  Slide 1: Indented\n\t- Tab bullet\n"
		slides := p.Parse(text)

		require.Len(t, slides, 1)
		assert.Equal(t, "Indented", slides[0].Title)
		assert.Equal(t, []string{"Tab bullet"}, slides[0].Items)
	})

	t.Run("no recognizable lines yields empty slice, not nil", func(t *testing.T) {
		slides := p.Parse("I cannot help with that request.")

		assert.NotNil(t, slides)
		assert.Empty(t, slides)
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		slides := p.Parse("")

		assert.NotNil(t, slides)
		assert.Empty(t, slides)
	})

	t.Run("slide with no bullets has empty items", func(t *testing.T) {
		slides := p.Parse("Slide 1: Lonely Title\n")

		require.Len(t, slides, 1)
		assert.Equal(t, []string{}, slides[0].Items)
	})
}

func TestCompletionParser_ParseStrict(t *testing.T) {
	p := NewCompletionParser()

	t.Run("clean input produces no warnings", func(t *testing.T) {
		slides, warnings := p.ParseStrict("Slide 1: Clean\n- Point.\n")

		require.Len(t, slides, 1)
		assert.Empty(t, warnings)
	})

	t.Run("bullet before any slide is dropped with warning", func(t *testing.T) {
		slides, warnings := p.ParseStrict("- Orphan bullet\nSlide 1: Real\n- Kept\n")

		require.Len(t, slides, 1)
		assert.Equal(t, []string{"Kept"}, slides[0].Items)
		require.Len(t, warnings, 1)
		assert.Equal(t, 1, warnings[0].Line)
		assert.Equal(t, "bullet before any slide", warnings[0].Reason)
	})

	t.Run("slide marker without colon is dropped with warning", func(t *testing.T) {
		slides, warnings := p.ParseStrict("Slide one has no colon\n")

		assert.Empty(t, slides)
		require.Len(t, warnings, 1)
		assert.Equal(t, "slide marker without colon", warnings[0].Reason)
	})

	t.Run("unrecognized lines are reported with position", func(t *testing.T) {
		text := "Slide 1: First\nsome prose here\n- Point.\nmore prose\n"
		slides, warnings := p.ParseStrict(text)

		require.Len(t, slides, 1)
		require.Len(t, warnings, 2)
		assert.Equal(t, 2, warnings[0].Line)
		assert.Equal(t, "some prose here", warnings[0].Text)
		assert.Equal(t, "unrecognized line", warnings[0].Reason)
		assert.Equal(t, 4, warnings[1].Line)
	})

	t.Run("blank lines never warn", func(t *testing.T) {
		_, warnings := p.ParseStrict("\n\nSlide 1: Spaced\n\n- Point.\n\n")

		assert.Empty(t, warnings)
	})

	t.Run("parse and strict agree on slides", func(t *testing.T) {
		text := "junk\nSlide 1: A\n- x\nSlide 2: B\n"
		lenient := p.Parse(text)
		strict, _ := p.ParseStrict(text)

		assert.Equal(t, lenient, strict)
	})
}

func TestCompletionParser_FixtureRoundTrip(t *testing.T) {
	p := NewCompletionParser()

	slides, warnings := p.ParseStrict(openai.FixtureCompletion)

	assert.Empty(t, warnings)
	require.Len(t, slides, 3)

	assert.Equal(t, "Ham on Rye", slides[0].Title)
	assert.Equal(t, []string{"I Like Ham.", "Ham is good."}, slides[0].Items)
	assert.Equal(t, "Ham on Ham", slides[1].Title)
	assert.Equal(t, []string{"Bacon is also good.", "Are fish bacon?"}, slides[1].Items)
	assert.Equal(t, "Rye on Ham", slides[2].Title)
}

func TestCompletionParser_SlideValidity(t *testing.T) {
	p := NewCompletionParser()

	slides := p.Parse("Slide 1: Valid\n- A point.\n")
	require.Len(t, slides, 1)

	var slide entities.Slide = slides[0]
	assert.NoError(t, slide.Validate())
	assert.False(t, slide.HasImage())
	assert.Equal(t, "A point.", slide.ImagePrompt())
}
