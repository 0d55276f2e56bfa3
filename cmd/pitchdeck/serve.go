package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/vnayar/pitchdeck/internal/adapters/primary/http"
	"github.com/vnayar/pitchdeck/internal/adapters/secondary/beamer"
	"github.com/vnayar/pitchdeck/internal/adapters/secondary/browser"
	"github.com/vnayar/pitchdeck/internal/adapters/secondary/config"
	"github.com/vnayar/pitchdeck/internal/adapters/secondary/convert"
	"github.com/vnayar/pitchdeck/internal/adapters/secondary/monitoring"
	"github.com/vnayar/pitchdeck/internal/adapters/secondary/openai"
	"github.com/vnayar/pitchdeck/internal/adapters/secondary/parser"
	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
	"github.com/vnayar/pitchdeck/internal/domain/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pitch-deck server",
	Long: `Start the HTTP server that serves the submission form and turns
submitted business descriptions into downloadable pitch decks.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to serve on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().Bool("test-mode", false, "Serve canned completions instead of calling the generation API")
	serveCmd.Flags().Bool("no-images", false, "Disable slide image augmentation")
	serveCmd.Flags().Bool("no-browser", false, "Don't open browser automatically")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadAndValidateConfig(ctx, cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		cfg.Logging.Verbose = true
	}

	logger := httpadapter.NewHTTPLoggerWithLevel("serve", cfg.Logging.Verbose, cfg.Logging.GetLevel())

	decks := buildDeckService(cfg, logger)
	monitor := monitoring.NewPipelineMonitor()
	decks.SetMetrics(monitor)

	server := httpadapter.NewServerWithLogging(decks, &cfg.Server, &cfg.Logging)
	server.SetMonitor(monitor)

	return startAndManageServer(ctx, cfg, server, logger)
}

// loadAndValidateConfig assembles the effective configuration. Precedence,
// lowest to highest: built-in defaults, global config, local config,
// environment variables, CLI flags.
func loadAndValidateConfig(ctx context.Context, cmd *cobra.Command) (*entities.Config, error) {
	loader := config.NewTOMLLoader()
	merger := config.NewMerger()

	globalCfg, err := loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	localCfg, err := loader.LoadLocal(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	cfg := merger.Merge(config.GetDefaultConfig(), globalCfg, localCfg)
	cfg = merger.ApplyEnvVars(cfg)
	cfg = merger.ApplyFlags(cfg, collectFlags(cmd))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// collectFlags gathers the flag overrides that were actually set
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	if port, err := cmd.Flags().GetInt("port"); err == nil && port > 0 {
		flags["port"] = port
	}
	if host, err := cmd.Flags().GetString("host"); err == nil && host != "" {
		flags["host"] = host
	}
	if testMode, err := cmd.Flags().GetBool("test-mode"); err == nil && testMode {
		flags["test-mode"] = true
	}
	if noImages, err := cmd.Flags().GetBool("no-images"); err == nil && noImages {
		flags["no-images"] = true
	}
	if cmd.Flags().Changed("no-browser") {
		noBrowser, _ := cmd.Flags().GetBool("no-browser")
		flags["no-browser"] = noBrowser
	}

	return flags
}

// buildDeckService constructs the generation pipeline from configuration.
// Test mode swaps the completion client for a canned fixture and disables
// image augmentation, so the whole pipeline runs without network access.
func buildDeckService(cfg *entities.Config, logger *httpadapter.HTTPLogger) *services.DeckGenerationService {
	var completions ports.CompletionClient
	var augmenter ports.ImageAugmenter

	if cfg.OpenAI.TestMode {
		logger.Info("test mode enabled, serving fixture completions")
		completions = openai.NewFixtureClient()
	} else {
		client := openai.NewClient(cfg.OpenAI)
		completions = client

		if cfg.Images.Enabled {
			httpClient := ports.NewRealHTTPClient(ports.HTTPClientConfig{
				Timeout:         cfg.OpenAI.GetTimeout(),
				MaxRetries:      2,
				RetryDelay:      time.Second,
				FollowRedirects: true,
				UserAgent:       "pitchdeck/" + Version,
			})
			augmenter = services.NewImageAugmenterService(client, httpClient, cfg.Images)
		}
	}

	decks := services.NewDeckGenerationService(
		completions,
		parser.NewCompletionParser(),
		augmenter,
		beamer.NewRenderer(),
		convert.NewToolConverter(cfg.Converter),
	)

	return decks
}

// startAndManageServer starts the HTTP server, optionally opens the browser,
// and blocks until the context is cancelled or the server fails.
func startAndManageServer(ctx context.Context, cfg *entities.Config, server *httpadapter.Server, logger *httpadapter.HTTPLogger) error {
	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Server.Port

	// Fail fast on an occupied port rather than inside the serve goroutine
	addr := fmt.Sprintf("%s:%d", host, port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is not available: %w", port, err)
	}
	_ = listener.Close()

	if err := server.Start(ctx, port, host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	url := fmt.Sprintf("http://%s:%d", host, port)
	logger.Info("serving pitch-deck form at %s", url)

	if cfg.Browser.AutoOpen {
		launcher := browser.NewLauncherWithPreference(cfg.Browser.Browser)
		if name, err := launcher.Detect(); err == nil {
			logger.Debug("opening %s", name)
		}
		if err := launcher.Launch(url, false); err != nil {
			logger.Warn("could not open browser: %v", err)
		}
	}

	<-ctx.Done()

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}
