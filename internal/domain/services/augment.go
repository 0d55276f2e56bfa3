package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// ImageAugmenterService attaches generated illustrations to every other
// slide, starting with the first. Fetches run concurrently under a bounded
// worker pool; slide order is unaffected because each worker writes only
// its own slide.
type ImageAugmenterService struct {
	generator   ports.ImageGenerator
	httpClient  ports.HTTPClient
	tempDir     string
	concurrency int
	skipFailed  bool
}

// NewImageAugmenterService creates a new image augmenter service
func NewImageAugmenterService(generator ports.ImageGenerator, httpClient ports.HTTPClient, cfg entities.ImagesConfig) *ImageAugmenterService {
	return &ImageAugmenterService{
		generator:   generator,
		httpClient:  httpClient,
		tempDir:     os.TempDir(),
		concurrency: cfg.GetConcurrency(),
		skipFailed:  cfg.SkipFailed,
	}
}

// SetTempDir overrides the directory for downloaded image files
func (s *ImageAugmenterService) SetTempDir(dir string) {
	s.tempDir = dir
}

// Augment generates and downloads an image for slides at odd 1-based
// positions, recording the local file path on each slide. It returns the
// paths of every file it created, including on error, so the caller can
// guarantee cleanup once the deck has been rendered and converted.
func (s *ImageAugmenterService) Augment(ctx context.Context, slides []entities.Slide) ([]string, error) {
	var (
		mu      sync.Mutex
		created []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range slides {
		if i%2 != 0 {
			// Only odd 1-based positions receive images.
			continue
		}

		slide := &slides[i]
		g.Go(func() error {
			path, err := s.fetchSlideImage(gctx, slide)
			if path != "" {
				mu.Lock()
				created = append(created, path)
				mu.Unlock()
			}
			if err != nil {
				if s.skipFailed {
					log.Printf("[WARN] [augmenter] skipping image for slide %q: %v", slide.Title, err)
					return nil
				}
				return err
			}
			slide.ImagePath = path
			return nil
		})
	}

	err := g.Wait()

	mu.Lock()
	defer mu.Unlock()
	return created, err
}

// fetchSlideImage generates an image for one slide and downloads it to a
// uniquely named temp file. The file path is returned even when the
// download fails partway, so the file can still be cleaned up.
func (s *ImageAugmenterService) fetchSlideImage(ctx context.Context, slide *entities.Slide) (string, error) {
	prompt := slide.ImagePrompt()
	if prompt == "" {
		prompt = slide.Title
	}

	url, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &entities.FetchError{URL: url, Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &entities.FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &entities.FetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	path := filepath.Join(s.tempDir, "pitchdeck-img-"+uuid.NewString()+".png")
	f, err := os.Create(path) // #nosec G304 - path is built from a fresh UUID under the temp dir
	if err != nil {
		return "", &entities.FetchError{URL: url, Err: err}
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return path, &entities.FetchError{URL: url, Err: err}
	}

	if err := f.Close(); err != nil {
		return path, &entities.FetchError{URL: url, Err: err}
	}

	return path, nil
}

// Ensure ImageAugmenterService implements ports.ImageAugmenter
var _ ports.ImageAugmenter = (*ImageAugmenterService)(nil)
