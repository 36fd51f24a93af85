package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/chatsift/pkg/classifier"
	"github.com/umputun/chatsift/pkg/config"
	"github.com/umputun/chatsift/pkg/dispatch"
	"github.com/umputun/chatsift/pkg/notify"
	"github.com/umputun/chatsift/pkg/repository"
	"github.com/umputun/chatsift/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address override"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] chatsift failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads the config, wires all components and blocks until the context
// is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	setupLog(opts.Debug, cfg.LLM.APIKey)
	log.Printf("[INFO] starting chatsift version %s", revision)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	// the yes/no extractor is optional, only wired when an LLM endpoint is
	// configured
	var extractor classifier.DecisionExtractor
	if cfg.LLM.Endpoint != "" {
		extractor = classifier.NewExtractor(cfg.GetLLMConfig())
		log.Printf("[INFO] decision cleanup enabled with model %s", cfg.LLM.Model)
	}

	// no classifier endpoint means fallback-only triage
	var remote dispatch.Classifier
	if cfg.Classifier.Endpoint != "" {
		remote = classifier.NewClient(cfg.GetClassifierConfig(), extractor)
		log.Printf("[INFO] remote classifier at %s, %d retries", cfg.Classifier.Endpoint, cfg.Classifier.MaxRetries)
	} else {
		log.Printf("[WARN] no classifier endpoint configured, using rule-based fallback for all messages")
	}

	alerter := notify.NewWebhook(cfg.GetNotifyConfig())
	dispatcher := dispatch.New(remote, repos.Settings, alerter, repos.Records)

	processor := dispatch.NewProcessor(dispatcher, cfg.Dispatch.MaxWorkers, cfg.Dispatch.QueueSize)
	processor.Start(ctx)
	defer processor.Stop()

	srv := server.New(cfg, processor, repos.Settings, repos.Records, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	for _, s := range secs {
		if s != "" {
			logOpts = append(logOpts, lgr.Secret(s))
		}
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
