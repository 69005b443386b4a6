/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Check command implementation. Validates an alphabet and partitioning
combination against the search limits without scoring a single key, so an
oversized configuration is caught before a long run.
*/

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/core"
	"github.com/kleascm/subcrack/pkg/permute"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// PerformCheck runs the configuration checks and fails if any of them fails
func PerformCheck(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 subcrack - Configuration Check")
	fmt.Fprintln(out, "=================================")
	fmt.Fprintln(out)

	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	config := createSearchConfig()

	var (
		ref, enc     cipher.Alphabet
		partitioning cipher.Partitioning
		strategies   []core.Strategy
	)

	checks := []struct {
		name     string
		function func() error
	}{
		{"Search configuration", config.Validate},
		{"Reference alphabet", func() (err error) {
			ref, err = resolveAlphabet(registry, viper.GetString("check.ref_alphabet"))
			return err
		}},
		{"Encoded alphabet", func() (err error) {
			enc, err = resolveAlphabet(registry, viper.GetString("check.enc_alphabet"))
			return err
		}},
		{"Alphabet lengths", func() error {
			if ref.IsZero() || enc.IsZero() {
				return fmt.Errorf("alphabets unavailable")
			}
			if ref.Len() != enc.Len() {
				return fmt.Errorf("%w: %d vs %d symbols", cipher.ErrAlphabetMismatch, ref.Len(), enc.Len())
			}
			return nil
		}},
		{"Strategies", func() (err error) {
			strategies, err = parseStrategies(viper.GetStringSlice("check.strategy"))
			return err
		}},
		{"Partitioning", func() (err error) {
			partitioning, err = selectPartitioning(registry, viper.GetString("check.partition"), strategies)
			if err != nil || partitioning.IsZero() {
				return err
			}
			return partitioning.Validate(ref.Len())
		}},
		{"Search limits", func() error {
			for _, s := range strategies {
				if err := checkLimits(s, ref, partitioning, config); err != nil {
					return fmt.Errorf("%s: %w", s, err)
				}
			}
			return nil
		}},
		{"Log directory", func() error {
			return checkWritable(viper.GetString("log_dir"))
		}},
	}

	passed := 0
	for _, check := range checks {
		fmt.Fprintf(out, "🔍 %s... ", check.name)
		if err := check.function(); err != nil {
			fmt.Fprintf(out, "❌ FAILED: %v\n", err)
		} else {
			fmt.Fprintln(out, "✅ PASSED")
			passed++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "📊 Results: %d/%d checks passed\n", passed, len(checks))

	if passed != len(checks) {
		return fmt.Errorf("%d checks failed", len(checks)-passed)
	}
	fmt.Fprintln(out, "✨ All checks passed! Configuration is ready for decoding.")
	return nil
}

// checkLimits reports whether a strategy would be rejected by the engine
func checkLimits(strategy core.Strategy, ref cipher.Alphabet, partitioning cipher.Partitioning, config *core.SearchConfig) error {
	var (
		total uint64
		ok    bool
	)

	switch strategy {
	case core.StrategySort:
		return nil
	case core.StrategyFitness:
		if ref.Len() > config.MaxBlockSize {
			return fmt.Errorf("%w: %d symbols, limit is %d", core.ErrBlockTooLarge, ref.Len(), config.MaxBlockSize)
		}
		total, ok = permute.Factorial(ref.Len())
	case core.StrategyPartitionSlow, core.StrategyPartitionFast:
		if partitioning.IsZero() {
			return core.ErrNoPartitioning
		}
		if largest := partitioning.MaxBlock(); largest > config.MaxBlockSize {
			return fmt.Errorf("%w: block of %d symbols, limit is %d", core.ErrBlockTooLarge, largest, config.MaxBlockSize)
		}
		if strategy == core.StrategyPartitionSlow {
			total, ok = partitioning.SearchSpace()
		} else {
			total, ok = fastSpace(partitioning)
		}
	}

	if !ok || total > config.MaxCandidates {
		return fmt.Errorf("%w: %s candidates, limit is %d", core.ErrSearchTooLarge, formatCount(total, ok), config.MaxCandidates)
	}
	return nil
}

// checkWritable verifies that logs can be written to dir
func checkWritable(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".subcrack_check")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return err
	}
	return os.Remove(probe)
}
