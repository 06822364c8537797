package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/movies"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
)

type options struct {
	configPath  string
	formID      string
	definitions string
	openapi     string
	schema      string
	renderer    string
	output      string
	preset      string
	submit      bool
	list        bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.StringVar(&opts.formID, "form", "login", "form id to render (login, register or a definition id)")
	flag.StringVar(&opts.definitions, "definitions", "", "directory of form definitions (defaults to the built-in forms)")
	flag.StringVar(&opts.openapi, "openapi", "", "OpenAPI document path or URL to build the form from")
	flag.StringVar(&opts.schema, "schema", "", "component schema name, used with -openapi")
	flag.StringVar(&opts.renderer, "renderer", "", "renderer to use: tui or vanilla (overrides config)")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.preset, "preset", "", "preset file (yaml or json) applied to the form")
	flag.BoolVar(&opts.submit, "submit", false, "send the completed login or register form to the movies backend")
	flag.BoolVar(&opts.list, "list", false, "list the available form ids and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "formkit: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging)
	logger := logging.Component("cli")

	if opts.renderer != "" {
		cfg.Render.Renderer = opts.renderer
	}
	if opts.definitions == "" {
		opts.definitions = cfg.Definitions
	}

	registry, err := newRegistry(cfg.Render)
	if err != nil {
		return err
	}
	if err := registry.SetDefault(cfg.Render.Renderer); err != nil {
		return err
	}

	orchOptions := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(cfg.Render.Renderer),
		orchestrator.WithOpenAPILoader(openapi.NewLoader(
			openapi.WithHTTPClient(&http.Client{}, cfg.Movies.Timeout),
		)),
		orchestrator.WithLogger(logger),
	}
	if opts.definitions != "" {
		store, err := definition.LoadFS(os.DirFS(opts.definitions))
		if err != nil {
			return err
		}
		orchOptions = append(orchOptions, orchestrator.WithDefinitions(store))
	}
	if opts.preset != "" {
		preset, err := loadPreset(opts.preset)
		if err != nil {
			return err
		}
		orchOptions = append(orchOptions, orchestrator.WithTransformers(preset))
	}
	orch := orchestrator.New(orchOptions...)

	if opts.list {
		for _, id := range orch.Forms() {
			fmt.Fprintln(stdout, id)
		}
		return nil
	}

	req, err := buildRequest(opts, cfg.Render)
	if err != nil {
		return err
	}
	result, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	logger.Debug().Str("content_type", result.ContentType).Int("bytes", len(result.Output)).Msg("form rendered")

	if opts.submit {
		if err := submit(ctx, cfg.Movies, logger, opts.formID, result); err != nil {
			return err
		}
	}
	return writeOutput(opts.output, stdout, result.Output)
}

func newRegistry(cfg config.RenderConfig) (*render.Registry, error) {
	terminal, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(cfg.Format)),
		tui.WithMaxAttempts(cfg.MaxAttempts),
		tui.WithConfirmSubmit(cfg.Confirm),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
	)
	if err != nil {
		return nil, err
	}
	html, err := vanilla.New(vanilla.WithDefaultStyles())
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(terminal, html)
}

func buildRequest(opts options, cfg config.RenderConfig) (orchestrator.Request, error) {
	req := orchestrator.Request{FormID: opts.formID, Renderer: cfg.Renderer}
	if cfg.Theme != "" {
		req.RenderOptions.Theme = &theme.RendererConfig{Theme: cfg.Theme, Variant: cfg.Variant}
	}

	location := strings.TrimSpace(opts.openapi)
	if location == "" {
		return req, nil
	}
	if opts.schema == "" {
		return req, errors.New("-schema is required with -openapi")
	}
	req.Schema = opts.schema
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		src, err := openapi.SourceFromURL(location)
		if err != nil {
			return req, err
		}
		req.Source = src
		return req, nil
	}
	req.Source = openapi.SourceFromFile(location)
	return req, nil
}

//nolint:gocritic // zerolog.Logger is passed by value
func submit(ctx context.Context, cfg config.MoviesConfig, logger zerolog.Logger, formID string, result orchestrator.Result) error {
	client, err := movies.New(cfg.BaseURL,
		movies.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		movies.WithTMDB(cfg.TMDBURL, cfg.TMDBAPIKey),
		movies.WithBreaker(cfg.BreakerFailures, cfg.BreakerTimeout),
		movies.WithRateLimit(rate.Limit(cfg.TMDBRate), cfg.TMDBBurst),
		movies.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	switch formID {
	case "login":
		session := movies.NewSession()
		if err := client.SubmitLogin(ctx, session, result.Form); err != nil {
			return err
		}
		logger.Info().Str("username", session.Username()).Msg("logged in")
	case "register":
		if err := client.SubmitRegistration(ctx, result.Form); err != nil {
			return err
		}
		logger.Info().Msg("account created")
	default:
		return fmt.Errorf("-submit supports the login and register forms, got %q", formID)
	}
	return nil
}

// loadPreset accepts absolute paths and paths relative to the working
// directory, including ones that climb out of it.
func loadPreset(path string) (*orchestrator.PresetTransformer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
