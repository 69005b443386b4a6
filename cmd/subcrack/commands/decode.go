/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decode.go
Description: Decode command implementation. Loads an encrypted text and a reference
text, runs the selected strategies and reports the recovered keys together with
their fitness and a preview of the decoded text.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/core"
	"github.com/kleascm/subcrack/pkg/reporting"
	"github.com/kleascm/subcrack/pkg/textload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunDecode breaks an encrypted text
func RunDecode(cmd *cobra.Command, args []string) error {
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

	refAlphabet, err := resolveAlphabet(registry, viper.GetString("decode.ref_alphabet"))
	if err != nil {
		return err
	}
	encAlphabet, err := resolveAlphabet(registry, viper.GetString("decode.enc_alphabet"))
	if err != nil {
		return err
	}
	strategies, err := parseStrategies(viper.GetStringSlice("decode.strategy"))
	if err != nil {
		return err
	}
	partitioning, err := selectPartitioning(registry, viper.GetString("decode.partition"), strategies)
	if err != nil {
		return err
	}

	reference, err := loadText(viper.GetString("decode.reference"), "", refAlphabet, textload.DefaultReplace)
	if err != nil {
		return fmt.Errorf("reference text: %w", err)
	}
	encrypted, err := loadText(viper.GetString("decode.cipher"), viper.GetString("decode.cipher_text"), encAlphabet, nil)
	if err != nil {
		return fmt.Errorf("encrypted text: %w", err)
	}

	problem, err := core.NewProblem(encrypted, encAlphabet, reference, refAlphabet, partitioning)
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

	ev, err := reporting.Evaluate(problem, cipher.Key{}, results, viper.GetInt("decode.preview"))
	if err != nil {
		return err
	}
	if err := emitReport(cmd.OutOrStdout(), viper.GetString("decode.output"), viper.GetString("decode.format"), ev); err != nil {
		return err
	}

	if viper.GetBool("decode.show_text") {
		for _, result := range results {
			decoded, err := problem.Encrypted.Decode(result.Key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n=== %s ===\n%s\n", result.Strategy, decoded)
		}
	}
	return nil
}
