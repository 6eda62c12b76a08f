package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/config"
	"github.com/fraudlens/fraudlens/internal/services"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

const configFileHint = config.ConfigFileName

// Environment variables consulted for the store target, in order.
const (
	EnvStore       = "FRAUDLENS_STORE"
	EnvDatabaseURL = "DATABASE_URL"
)

// newService builds the service used by every command. Tests replace it.
var newService = services.NewDefaultAnalysisService

// commandEnv carries the configuration shared by all commands: the
// optional project config file, loaded after .env.
type commandEnv struct {
	project *config.ProjectConfig
}

// loadCommandEnv loads .env and the project config.
// A missing default fraudlens.yaml is not an error; a missing --config file is.
func loadCommandEnv(cmd *cobra.Command) (*commandEnv, error) {
	_ = godotenv.Load()

	configPath, _ := cmd.Flags().GetString("config")
	var (
		projectCfg *config.ProjectConfig
		err        error
	)
	if configPath != "" {
		projectCfg, err = config.LoadFile(configPath)
	} else {
		projectCfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			return &commandEnv{}, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %v: %w", describeConfig(configPath), err, fraudlens.ErrInvalidConfig)
	}
	return &commandEnv{project: projectCfg}, nil
}

func describeConfig(configPath string) string {
	if configPath == "" {
		return configFileHint
	}
	return configPath
}

// storeTarget resolves the store.
// Precedence: --store > $FRAUDLENS_STORE > $DATABASE_URL > fraudlens.yaml > default
func (e *commandEnv) storeTarget(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	for _, name := range []string{EnvStore, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	if e.project != nil && e.project.Store != "" {
		return e.project.Store
	}
	return fraudlens.DefaultStoreTarget
}

// dataDir resolves the source directory from the argument or data_dir.
func (e *commandEnv) dataDir(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if e.project != nil && e.project.DataDir != "" {
		return e.project.DataDir, nil
	}
	return "", missingDataDir(cmd)
}

// extensions prefers --ext over the config file.
func (e *commandEnv) extensions(cmd *cobra.Command, flagValue []string) []string {
	if cmd.Flags().Changed("ext") || e.project == nil {
		return flagValue
	}
	if len(e.project.Extensions) > 0 {
		return e.project.Extensions
	}
	return flagValue
}

// batchSize prefers --batch-size over the config file.
func (e *commandEnv) batchSize(cmd *cobra.Command, flagValue int) int {
	if !cmd.Flags().Changed("batch-size") && e.project != nil && e.project.BatchSize != 0 {
		return e.project.BatchSize
	}
	return flagValue
}

// timeout returns the effective timeout, preferring fraudlens.yaml if the flag wasn't set.
func (e *commandEnv) timeout(cmd *cobra.Command, flagValue time.Duration) (time.Duration, error) {
	if !cmd.Flags().Changed("timeout") && e.project != nil && e.project.Timeout != "" {
		parsed, err := e.project.TimeoutDuration()
		if err != nil {
			return 0, fmt.Errorf("%v in %s: %w", err, configFileHint, fraudlens.ErrInvalidConfig)
		}
		return parsed, nil
	}
	return flagValue, nil
}

// newRunContext bounds a command by timeout and cancels it on SIGINT/SIGTERM.
func newRunContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = fraudlens.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
