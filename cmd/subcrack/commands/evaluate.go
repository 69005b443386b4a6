/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: evaluate.go
Description: Evaluate command implementation. Encrypts a plaintext with a known key,
breaks it again with the selected strategies against a reference text and reports
fitness, text accuracy and key accuracy of every recovered key.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/subcrack/pkg/core"
	"github.com/kleascm/subcrack/pkg/reporting"
	"github.com/kleascm/subcrack/pkg/textload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunEvaluate measures how well each strategy recovers a known key
func RunEvaluate(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	key, err := buildKey(registry, viper.GetString("evaluate.ref_alphabet"), viper.GetString("evaluate.enc_alphabet"),
		viper.GetBool("evaluate.shuffle"), viper.GetInt64("evaluate.seed"))
	if err != nil {
		return err
	}
	strategies, err := parseStrategies(viper.GetStringSlice("evaluate.strategy"))
	if err != nil {
		return err
	}
	partitioning, err := selectPartitioning(registry, viper.GetString("evaluate.partition"), strategies)
	if err != nil {
		return err
	}

	plain, err := loadText(viper.GetString("evaluate.plain"), "", key.SymbolsRef(), textload.DefaultReplace)
	if err != nil {
		return fmt.Errorf("plaintext: %w", err)
	}
	reference, err := loadText(viper.GetString("evaluate.reference"), "", key.SymbolsRef(), textload.DefaultReplace)
	if err != nil {
		return fmt.Errorf("reference text: %w", err)
	}
	encrypted, err := plain.Encode(key)
	if err != nil {
		return err
	}

	problem, err := core.NewProblem(encrypted, key.SymbolsEnc(), reference, key.SymbolsRef(), partitioning)
	if err != nil {
		return err
	}

	engine, err := newEngine(logger.GetLogger())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := runStrategies(ctx, logger, engine, problem, strategies)
	if err != nil {
		return err
	}

	ev, err := reporting.Evaluate(problem, key, results, viper.GetInt("evaluate.preview"))
	if err != nil {
		return err
	}
	return emitReport(cmd.OutOrStdout(), viper.GetString("evaluate.output"), viper.GetString("evaluate.format"), ev)
}
