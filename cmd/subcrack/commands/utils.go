/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the subcrack commands. Provides configuration
loading, logging setup, preset resolution, text loading and the engine/problem
construction used by every command that runs a search.
*/

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/core"
	"github.com/kleascm/subcrack/pkg/logging"
	"github.com/kleascm/subcrack/pkg/presets"
	"github.com/kleascm/subcrack/pkg/reporting"
	"github.com/kleascm/subcrack/pkg/textload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// SUBCRACK_LOG_LEVEL, SUBCRACK_SEARCH_WORKERS, ...
	viper.SetEnvPrefix("SUBCRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds the logger from the persistent logging flags
func SetupLogging() (*logging.Logger, error) {
	config := logging.DefaultLoggerConfig()
	config.Level = logging.LogLevel(viper.GetString("log_level"))
	config.Format = logging.LogFormat(viper.GetString("log_format"))
	config.OutputDir = viper.GetString("log_dir")
	if maxFiles := viper.GetInt("log_max_files"); maxFiles > 0 {
		config.MaxFiles = maxFiles
	}
	if viper.GetBool("json_logs") {
		config.Format = logging.LogFormatJSON
		config.Colors = false
	}

	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}
	if path := logger.FilePath(); path != "" {
		logger.Debug("Logging to file", map[string]interface{}{"path": path})
	}
	return logger, nil
}

// createSearchConfig builds the engine configuration from the search.* keys
func createSearchConfig() *core.SearchConfig {
	config := core.DefaultSearchConfig()
	config.Workers = viper.GetInt("search.workers")
	if v := viper.GetInt("search.max_block_size"); v > 0 {
		config.MaxBlockSize = v
	}
	if v := viper.GetUint64("search.max_candidates"); v > 0 {
		config.MaxCandidates = v
	}
	if v := viper.GetInt("search.top_n"); v > 0 {
		config.TopN = v
	}
	if v := viper.GetUint64("search.chunk_size"); v > 0 {
		config.ChunkSize = v
	}
	return config
}

// loadRegistry returns the built-in presets merged with the optional preset file
func loadRegistry() (*presets.Registry, error) {
	registry := presets.NewRegistry()
	if path := viper.GetString("presets_file"); path != "" {
		if err := registry.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// resolveAlphabet accepts a preset name or a literal symbol string.
// Preset names win over literals.
func resolveAlphabet(registry *presets.Registry, value string) (cipher.Alphabet, error) {
	if a, err := registry.Alphabet(value); err == nil {
		return a, nil
	}
	a, err := cipher.ParseAlphabet(value)
	if err != nil {
		return cipher.Alphabet{}, fmt.Errorf("alphabet %q is neither a preset nor valid: %w", value, err)
	}
	return a, nil
}

// resolvePartitioning accepts a preset name or comma separated block sizes.
// An empty value yields the zero Partitioning.
func resolvePartitioning(registry *presets.Registry, value string) (cipher.Partitioning, error) {
	if value == "" {
		return cipher.Partitioning{}, nil
	}
	if p, err := registry.Partitioning(value); err == nil {
		return p, nil
	}
	p, err := cipher.ParsePartitioning(value)
	if err != nil {
		return cipher.Partitioning{}, fmt.Errorf("partitioning %q is neither a preset nor valid: %w", value, err)
	}
	return p, nil
}

// needsPartitioning reports whether any of the strategies splits the key into blocks
func needsPartitioning(strategies []core.Strategy) bool {
	for _, s := range strategies {
		if s.NeedsPartitioning() {
			return true
		}
	}
	return false
}

// selectPartitioning resolves value only when one of the strategies uses it
func selectPartitioning(registry *presets.Registry, value string, strategies []core.Strategy) (cipher.Partitioning, error) {
	if !needsPartitioning(strategies) {
		return cipher.Partitioning{}, nil
	}
	return resolvePartitioning(registry, value)
}

// loadText reads a file, or uses inline when path is empty, and filters it to alphabet.
// Input is lowercased unless the alphabet itself holds cased symbols.
func loadText(path, inline string, alphabet cipher.Alphabet, replace map[string]string) (cipher.Text, error) {
	opts := textload.Options{Alphabet: alphabet, Replace: replace, KeepCase: caseSensitive(alphabet)}
	if path != "" {
		return textload.FromFile(path, opts)
	}
	if inline != "" {
		return textload.FromString(inline, opts)
	}
	return cipher.Text{}, fmt.Errorf("no input given")
}

// caseSensitive reports whether lowercasing would change any symbol of alphabet
func caseSensitive(alphabet cipher.Alphabet) bool {
	symbols := alphabet.String()
	return strings.ToLower(symbols) != symbols
}

// parseStrategies resolves a strategy list, "all" selects every strategy
func parseStrategies(names []string) ([]core.Strategy, error) {
	var out []core.Strategy
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "all" {
			return core.Strategies, nil
		}
		s, err := core.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no strategy selected")
	}
	return out, nil
}

// newEngine creates a search engine that logs its events through logger
func newEngine(logger *logrus.Logger) (*core.Engine, error) {
	engine, err := core.NewEngine(createSearchConfig(), logger)
	if err != nil {
		return nil, err
	}
	engine.AddReporter(core.NewLoggerReporter(logger))
	return engine, nil
}

// runStrategies solves the problem with each strategy in turn and logs the
// engine statistics afterwards
func runStrategies(ctx context.Context, logger *logging.Logger, engine *core.Engine, problem *core.Problem, strategies []core.Strategy) ([]*core.Result, error) {
	results := make([]*core.Result, 0, len(strategies))
	for _, strategy := range strategies {
		result, err := engine.Solve(ctx, problem, strategy)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strategy, err)
		}
		results = append(results, result)
	}

	stats := engine.Stats()
	logger.LogStats(stats.Searches, stats.Failures, stats.Candidates, map[string]interface{}{
		"blocks":  stats.Blocks,
		"workers": engine.Config().WorkerCount(),
	})
	for _, workerStats := range engine.WorkerStats() {
		logger.Debug("Worker statistics", workerStats)
	}
	return results, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// emitReport writes the evaluation to stdout, or saves it under outputDir
func emitReport(out io.Writer, outputDir, formatName string, ev *reporting.Evaluation) error {
	format, err := reporting.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if outputDir == "" {
		return reporting.Write(out, format, ev)
	}
	path, err := reporting.Save(outputDir, format, ev)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Report saved to %s\n", path)
	return nil
}
