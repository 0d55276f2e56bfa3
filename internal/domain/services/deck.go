package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// DeckGenerationService runs the pitch-deck pipeline: build a prompt from
// the form input, obtain a completion, parse it into slides, optionally
// augment slides with images, render beamer markup, and convert it into the
// requested artifact. Each request is fully independent; the service holds
// no per-request state.
type DeckGenerationService struct {
	completions ports.CompletionClient
	parser      ports.CompletionParser
	augmenter   ports.ImageAugmenter
	renderer    ports.DeckRenderer
	converter   ports.Converter
	metrics     ports.MetricsRecorder
	author      string
	institute   string
}

// NewDeckGenerationService creates a new deck generation service. The
// augmenter and metrics recorder may be nil, disabling image augmentation
// and metrics respectively.
func NewDeckGenerationService(
	completions ports.CompletionClient,
	parser ports.CompletionParser,
	augmenter ports.ImageAugmenter,
	renderer ports.DeckRenderer,
	converter ports.Converter,
) *DeckGenerationService {
	return &DeckGenerationService{
		completions: completions,
		parser:      parser,
		augmenter:   augmenter,
		renderer:    renderer,
		converter:   converter,
	}
}

// SetMetrics attaches a metrics recorder
func (s *DeckGenerationService) SetMetrics(metrics ports.MetricsRecorder) {
	s.metrics = metrics
}

// SetTitlePageDefaults sets the optional author and institute lines emitted
// on every deck's title page
func (s *DeckGenerationService) SetTitlePageDefaults(author, institute string) {
	s.author = author
	s.institute = institute
}

// GenerateDeck runs the full pipeline for one request. The logoPath, if
// non-empty, must point to an image file readable for the duration of the
// call; the caller retains ownership of it.
func (s *DeckGenerationService) GenerateDeck(ctx context.Context, input ports.PitchInput, format ports.OutputFormat, logoPath string) (*ports.GenerateResult, error) {
	if !s.converter.Supports(format) {
		return nil, &entities.UnknownFormatError{Format: string(format)}
	}

	start := time.Now()
	result, err := s.generate(ctx, input, format, logoPath)
	if s.metrics != nil {
		s.metrics.RecordRequest(err == nil, time.Since(start))
	}
	return result, err
}

func (s *DeckGenerationService) generate(ctx context.Context, input ports.PitchInput, format ports.OutputFormat, logoPath string) (*ports.GenerateResult, error) {
	prompt, err := s.timedPrompt(input)
	if err != nil {
		return nil, err
	}

	completion, err := s.timedCompletion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	slides, warnings := s.timedParse(completion)
	for _, w := range warnings {
		log.Printf("[WARN] [pipeline] dropped completion line %d (%s): %q", w.Line, w.Reason, w.Text)
	}

	// Image files must outlive rendering and conversion; remove them only
	// once the artifact bytes are in memory.
	if s.augmenter != nil {
		created, err := s.timedAugment(ctx, slides)
		defer removeFiles(created)
		if err != nil {
			return nil, err
		}
	}

	// Slides are taken as parsed. A content-less slide (for example a bare
	// "Slide 2:" line) is a legitimate lossy-parse result and still renders
	// as an empty frame; the deck title is already guaranteed by the prompt
	// builder's required-field check.
	deck := &entities.Deck{
		Title:     input.Name,
		Subtitle:  input.Vision,
		Author:    s.author,
		Institute: s.institute,
		Date:      time.Now().Format("2006-01-02"),
		LogoPath:  logoPath,
		Slides:    slides,
	}

	markup, err := s.timedRender(deck)
	if err != nil {
		return nil, fmt.Errorf("rendering deck: %w", err)
	}

	artifact, err := s.timedConvert(ctx, markup, format)
	if err != nil {
		return nil, err
	}

	return &ports.GenerateResult{
		Artifact:   artifact,
		Format:     format,
		Filename:   artifactFilename(deck.Title, format),
		Warnings:   warnings,
		SlideCount: len(slides),
	}, nil
}

func (s *DeckGenerationService) timedPrompt(input ports.PitchInput) (string, error) {
	defer s.recordStage(ports.StagePrompt, time.Now())
	return BuildPitchPrompt(input)
}

func (s *DeckGenerationService) timedCompletion(ctx context.Context, prompt string) (string, error) {
	defer s.recordStage(ports.StageCompletion, time.Now())
	return s.completions.Complete(ctx, prompt)
}

func (s *DeckGenerationService) timedParse(completion string) ([]entities.Slide, []ports.ParseWarning) {
	defer s.recordStage(ports.StageParse, time.Now())
	slides, warnings := s.parser.ParseStrict(completion)
	if s.metrics != nil {
		s.metrics.RecordParseWarnings(len(warnings))
	}
	return slides, warnings
}

func (s *DeckGenerationService) timedAugment(ctx context.Context, slides []entities.Slide) ([]string, error) {
	defer s.recordStage(ports.StageAugment, time.Now())
	return s.augmenter.Augment(ctx, slides)
}

func (s *DeckGenerationService) timedRender(deck *entities.Deck) (string, error) {
	defer s.recordStage(ports.StageRender, time.Now())
	return s.renderer.Render(deck)
}

// timedConvert writes the markup into a per-request temp directory and
// invokes the external converter. The directory and everything in it are
// removed on every exit path.
func (s *DeckGenerationService) timedConvert(ctx context.Context, markup string, format ports.OutputFormat) ([]byte, error) {
	defer s.recordStage(ports.StageConvert, time.Now())

	workDir, err := os.MkdirTemp("", "pitchdeck-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	texPath := filepath.Join(workDir, "deck.tex")
	if err := os.WriteFile(texPath, []byte(markup), 0600); err != nil {
		return nil, fmt.Errorf("writing markup file: %w", err)
	}

	return s.converter.Convert(ctx, texPath, format)
}

func (s *DeckGenerationService) recordStage(stage string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordStage(stage, time.Since(start))
	}
}

// artifactFilename derives a download filename from the deck title,
// replacing characters that are unsafe inside a Content-Disposition header
// or a filesystem path.
func artifactFilename(title string, format ports.OutputFormat) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "pitchdeck"
	}
	return name + "." + format.Extension()
}

func removeFiles(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] [pipeline] removing temp file %s: %v", path, err)
		}
	}
}

// Ensure DeckGenerationService implements ports.DeckService
var _ ports.DeckService = (*DeckGenerationService)(nil)
