package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/morispolanco/subjuntivo-buscador/api"
	"github.com/morispolanco/subjuntivo-buscador/engine"
	"github.com/morispolanco/subjuntivo-buscador/logger"
	"github.com/morispolanco/subjuntivo-buscador/pipeline"
	"github.com/morispolanco/subjuntivo-buscador/redis"
	"github.com/morispolanco/subjuntivo-buscador/tasks"
	"github.com/morispolanco/subjuntivo-buscador/types"
	"github.com/morispolanco/subjuntivo-buscador/worker"
)

type Config struct {
	ConfigPath      string `envconfig:"SUBJ_CONFIG_PATH" default:""`
	ResourceDir     string `envconfig:"SUBJ_RESOURCE_DIR" default:""`
	Strategy        string `envconfig:"SUBJ_STRATEGY" default:""`
	RestAPIActive   bool   `envconfig:"SUBJ_REST_API_ACTIVE" default:"false"`
	RestAPIPort     string `envconfig:"SUBJ_REST_API_PORT" default:"10000"`
	RequestTimeout  int    `envconfig:"SUBJ_REQUEST_TIMEOUT_SECONDS" default:"120"`
	CacheEnabled    bool   `envconfig:"SUBJ_CACHE_ENABLED" default:"false"`
	CacheTTLSeconds int    `envconfig:"SUBJ_CACHE_TTL_SECONDS" default:"86400"`
}

const pipelineStartMaxRetries = 5

func main() {
	logger.SetupLogging()
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var config Config
	var strategy string
	cmd := &cobra.Command{
		Use:           "subjuntivo",
		Short:         "Find Spanish subjunctive verbs in text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := envconfig.Process("", &config); err != nil {
				return fmt.Errorf("failed to read environment: %w", err)
			}
			if strategy != "" {
				config.Strategy = strategy
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&strategy, "strategy", "", "tagged, pattern or remote (overrides the configuration file)")

	cmd.AddCommand(serveCmd(&config), workerCmd(&config), analyzeCmd(&config))
	return cmd
}

func serveCmd(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			mainLogger := logger.NewLogger("Main")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ppln, closeCache, err := loadPipeline(ctx, *config, mainLogger)
			if err != nil {
				mainLogger.Error().Caller().Err(err).Msg("Could not start pipeline")
				return err
			}
			defer closeCache()
			return serveAPI(ctx, *config, ppln, mainLogger)
		},
	}
}

func workerCmd(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume analysis tasks from RabbitMQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			mainLogger := logger.NewLogger("Main")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ppln, closeCache, err := loadPipeline(ctx, *config, mainLogger)
			if err != nil {
				mainLogger.Error().Caller().Err(err).Msg("Could not start pipeline")
				return err
			}
			defer closeCache()

			if config.RestAPIActive {
				go func() {
					if err := serveAPI(ctx, *config, ppln, mainLogger); err != nil {
						mainLogger.Error().Err(err).Msg("REST API stopped with error")
					}
				}()
			}

			mainLogger.Info().Msg("Start subjunctive worker")
			for {
				rmqWorker, err := worker.New(ppln)
				if err != nil {
					mainLogger.Error().Caller().Err(err).Msg("Could not initialize RMQ worker")
					return err
				}
				err = rmqWorker.StartWorker(ctx)
				if ctx.Err() != nil {
					return nil
				}
				mainLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(5 * time.Second):
				}
			}
		},
	}
}

func engineConfiguration(config Config) (types.EngineConfiguration, error) {
	cfg, err := types.LoadEngineConfiguration(config.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if config.ResourceDir != "" {
		cfg.ResourceDir = config.ResourceDir
	}
	if config.Strategy != "" {
		cfg.Strategy = strings.ToLower(strings.TrimSpace(config.Strategy))
	}
	return cfg, cfg.Validate()
}

// loadPipeline builds the engine, retrying while the model tables cannot be read.
func loadPipeline(ctx context.Context, config Config, mainLogger zerolog.Logger) (pipeline.Pipeline, func(), error) {
	cfg, err := engineConfiguration(config)
	if err != nil {
		return nil, nil, err
	}
	var analyzer engine.Analyzer
	for retry := 0; ; retry++ {
		analyzer, err = engine.New(cfg)
		if err == nil {
			break
		}
		if !errors.Is(err, engine.ErrModelUnavailable) || retry+1 >= pipelineStartMaxRetries {
			return nil, nil, err
		}
		mainLogger.Err(err).Msg("Failed to load engine. Retrying in 5 sec")
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	mainLogger.Info().Str("strategy", analyzer.Strategy()).Msg("Engine loaded")

	params := pipeline.DefaultSubjunctiveParams()
	params.CacheTTL = time.Duration(config.CacheTTLSeconds) * time.Second
	if !config.CacheEnabled {
		return pipeline.Subjunctive(analyzer, nil, params), func() {}, nil
	}
	cache, err := redis.NewClient(tasks.ResultsDB)
	if err != nil {
		return nil, nil, fmt.Errorf("result cache: %w", err)
	}
	mainLogger.Info().Dur("ttl", params.CacheTTL).Msg("Result cache enabled")
	return pipeline.Subjunctive(analyzer, cache, params), func() { _ = cache.Close() }, nil
}

func serveAPI(ctx context.Context, config Config, ppln pipeline.Pipeline, mainLogger zerolog.Logger) error {
	apiRequest := &api.Request{
		Pipeline: ppln,
		Timeout:  time.Duration(config.RequestTimeout) * time.Second,
	}
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.RestAPIPort),
		Handler:           api.NewHandler(apiRequest),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	mainLogger.Info().Msgf("REST API on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
