/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: root.go
Description: Command tree for subcrack. Declares every command with its flags and
binds the flags to viper keys, so each value can also come from the config file
or a SUBCRACK_* environment variable.
*/

package commands

import (
	"github.com/kleascm/subcrack/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the subcrack command tree
func NewRootCommand() *cobra.Command {
	defaults := core.DefaultSearchConfig()

	rootCmd := &cobra.Command{
		Use:   "subcrack",
		Short: "subcrack - Frequency analysis breaker for monoalphabetic substitution ciphers",
		Long: `subcrack recovers the key of a monoalphabetic substitution cipher by comparing
symbol frequencies of the encrypted text with those of a reference text. It offers
a rank-pairing heuristic, an exact brute-force search and two partitioned searches
that trade accuracy for speed.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().String("log-dir", "", "Log output directory (empty logs to the console only)")
	rootCmd.PersistentFlags().Int("log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().String("presets", "", "YAML file with additional alphabet and partitioning presets")

	// Search flags shared by every searching command
	rootCmd.PersistentFlags().Int("workers", defaults.Workers, "Number of parallel workers (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("top", defaults.TopN, "Number of best candidates kept per search")
	rootCmd.PersistentFlags().Int("max-block", defaults.MaxBlockSize, "Largest block enumerated by brute force")
	rootCmd.PersistentFlags().Uint64("max-candidates", defaults.MaxCandidates, "Maximum keys scored by one search")
	rootCmd.PersistentFlags().Uint64("chunk-size", defaults.ChunkSize, "Keys scored per worker task")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("presets_file", rootCmd.PersistentFlags().Lookup("presets"))
	viper.BindPFlag("search.workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("search.top_n", rootCmd.PersistentFlags().Lookup("top"))
	viper.BindPFlag("search.max_block_size", rootCmd.PersistentFlags().Lookup("max-block"))
	viper.BindPFlag("search.max_candidates", rootCmd.PersistentFlags().Lookup("max-candidates"))
	viper.BindPFlag("search.chunk_size", rootCmd.PersistentFlags().Lookup("chunk-size"))

	rootCmd.AddCommand(newDecodeCommand())
	rootCmd.AddCommand(newEncryptCommand())
	rootCmd.AddCommand(newEvaluateCommand())
	rootCmd.AddCommand(newPresetsCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

func newDecodeCommand() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Recover the key of an encrypted text",
		Long: `Recover the substitution key of an encrypted text by frequency analysis against
a reference text written in the same language. Every selected strategy is run and
reported with its key, score and a preview of the decoded text.`,
		RunE: RunDecode,
	}

	decodeCmd.Flags().String("cipher", "", "Path to the encrypted text")
	decodeCmd.Flags().String("cipher-text", "", "Encrypted text given inline")
	decodeCmd.Flags().String("reference", "", "Path to the reference text (required)")
	decodeCmd.Flags().String("ref-alphabet", "Standard", "Reference alphabet, preset name or symbols")
	decodeCmd.Flags().String("enc-alphabet", "Reversed", "Encoded alphabet, preset name or symbols")
	decodeCmd.Flags().String("partition", "Fast", "Partitioning, preset name or comma separated block sizes")
	decodeCmd.Flags().StringSlice("strategy", []string{string(core.StrategySort), string(core.StrategyPartitionFast)}, "Strategies to run (sort, fitness, partition-slow, partition-fast, all)")
	decodeCmd.Flags().String("format", "text", "Report format (text, json, yaml, toml, html)")
	decodeCmd.Flags().String("output", "", "Directory for the report file (empty prints to stdout)")
	decodeCmd.Flags().Int("preview", 200, "Decoded symbols shown per strategy")
	decodeCmd.Flags().Bool("show-text", false, "Print the full decoded text of every strategy")

	decodeCmd.MarkFlagRequired("reference")
	decodeCmd.MarkFlagsOneRequired("cipher", "cipher-text")
	decodeCmd.MarkFlagsMutuallyExclusive("cipher", "cipher-text")

	viper.BindPFlag("decode.cipher", decodeCmd.Flags().Lookup("cipher"))
	viper.BindPFlag("decode.cipher_text", decodeCmd.Flags().Lookup("cipher-text"))
	viper.BindPFlag("decode.reference", decodeCmd.Flags().Lookup("reference"))
	viper.BindPFlag("decode.ref_alphabet", decodeCmd.Flags().Lookup("ref-alphabet"))
	viper.BindPFlag("decode.enc_alphabet", decodeCmd.Flags().Lookup("enc-alphabet"))
	viper.BindPFlag("decode.partition", decodeCmd.Flags().Lookup("partition"))
	viper.BindPFlag("decode.strategy", decodeCmd.Flags().Lookup("strategy"))
	viper.BindPFlag("decode.format", decodeCmd.Flags().Lookup("format"))
	viper.BindPFlag("decode.output", decodeCmd.Flags().Lookup("output"))
	viper.BindPFlag("decode.preview", decodeCmd.Flags().Lookup("preview"))
	viper.BindPFlag("decode.show_text", decodeCmd.Flags().Lookup("show-text"))

	return decodeCmd
}

func newEncryptCommand() *cobra.Command {
	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a plaintext with a substitution key",
		Long: `Filter a plaintext down to the reference alphabet and encrypt it. The key maps
the reference alphabet onto the encoded alphabet, or onto a seeded shuffle of
itself with --shuffle.`,
		RunE: RunEncrypt,
	}

	encryptCmd.Flags().String("input", "", "Path to the plaintext")
	encryptCmd.Flags().String("text", "", "Plaintext given inline")
	encryptCmd.Flags().String("ref-alphabet", "Standard", "Reference alphabet, preset name or symbols")
	encryptCmd.Flags().String("enc-alphabet", "Reversed", "Encoded alphabet, preset name or symbols")
	encryptCmd.Flags().Bool("shuffle", false, "Use a seeded shuffle of the reference alphabet as encoded alphabet")
	encryptCmd.Flags().Int64("seed", 1, "Seed for --shuffle")
	encryptCmd.Flags().String("output", "", "File for the ciphertext (empty prints to stdout)")

	encryptCmd.MarkFlagsOneRequired("input", "text")
	encryptCmd.MarkFlagsMutuallyExclusive("input", "text")

	viper.BindPFlag("encrypt.input", encryptCmd.Flags().Lookup("input"))
	viper.BindPFlag("encrypt.text", encryptCmd.Flags().Lookup("text"))
	viper.BindPFlag("encrypt.ref_alphabet", encryptCmd.Flags().Lookup("ref-alphabet"))
	viper.BindPFlag("encrypt.enc_alphabet", encryptCmd.Flags().Lookup("enc-alphabet"))
	viper.BindPFlag("encrypt.shuffle", encryptCmd.Flags().Lookup("shuffle"))
	viper.BindPFlag("encrypt.seed", encryptCmd.Flags().Lookup("seed"))
	viper.BindPFlag("encrypt.output", encryptCmd.Flags().Lookup("output"))

	return encryptCmd
}

func newEvaluateCommand() *cobra.Command {
	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure how well each strategy recovers a known key",
		Long: `Encrypt a plaintext with a known key, break it again with the selected strategies
and report fitness, text accuracy and key accuracy of every recovered key.`,
		RunE: RunEvaluate,
	}

	evaluateCmd.Flags().String("plain", "", "Path to the plaintext (required)")
	evaluateCmd.Flags().String("reference", "", "Path to the reference text (required)")
	evaluateCmd.Flags().String("ref-alphabet", "Standard", "Reference alphabet, preset name or symbols")
	evaluateCmd.Flags().String("enc-alphabet", "Reversed", "Encoded alphabet, preset name or symbols")
	evaluateCmd.Flags().Bool("shuffle", false, "Use a seeded shuffle of the reference alphabet as encoded alphabet")
	evaluateCmd.Flags().Int64("seed", 1, "Seed for --shuffle")
	evaluateCmd.Flags().String("partition", "Fast", "Partitioning, preset name or comma separated block sizes")
	evaluateCmd.Flags().StringSlice("strategy", []string{
		string(core.StrategySort), string(core.StrategyPartitionSlow), string(core.StrategyPartitionFast),
	}, "Strategies to run (sort, fitness, partition-slow, partition-fast, all)")
	evaluateCmd.Flags().String("format", "text", "Report format (text, json, yaml, toml, html)")
	evaluateCmd.Flags().String("output", "", "Directory for the report file (empty prints to stdout)")
	evaluateCmd.Flags().Int("preview", 200, "Decoded symbols shown per strategy")

	evaluateCmd.MarkFlagRequired("plain")
	evaluateCmd.MarkFlagRequired("reference")

	viper.BindPFlag("evaluate.plain", evaluateCmd.Flags().Lookup("plain"))
	viper.BindPFlag("evaluate.reference", evaluateCmd.Flags().Lookup("reference"))
	viper.BindPFlag("evaluate.ref_alphabet", evaluateCmd.Flags().Lookup("ref-alphabet"))
	viper.BindPFlag("evaluate.enc_alphabet", evaluateCmd.Flags().Lookup("enc-alphabet"))
	viper.BindPFlag("evaluate.shuffle", evaluateCmd.Flags().Lookup("shuffle"))
	viper.BindPFlag("evaluate.seed", evaluateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("evaluate.partition", evaluateCmd.Flags().Lookup("partition"))
	viper.BindPFlag("evaluate.strategy", evaluateCmd.Flags().Lookup("strategy"))
	viper.BindPFlag("evaluate.format", evaluateCmd.Flags().Lookup("format"))
	viper.BindPFlag("evaluate.output", evaluateCmd.Flags().Lookup("output"))
	viper.BindPFlag("evaluate.preview", evaluateCmd.Flags().Lookup("preview"))

	return evaluateCmd
}

func newPresetsCommand() *cobra.Command {
	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List alphabet and partitioning presets",
		Long: `List the built-in alphabets and partitionings, plus those loaded with --presets,
together with the number of keys each partitioning makes a search score.`,
		RunE: ListPresets,
	}
	presetsCmd.Flags().Bool("yaml", false, "Print the presets as a YAML preset file")
	return presetsCmd
}

func newCheckCommand() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a configuration without searching",
		Long: `Validate alphabets, partitioning and strategies against the search limits
without scoring a single key. Useful before long runs and in CI.`,
		RunE: PerformCheck,
	}

	checkCmd.Flags().String("ref-alphabet", "Standard", "Reference alphabet, preset name or symbols")
	checkCmd.Flags().String("enc-alphabet", "Reversed", "Encoded alphabet, preset name or symbols")
	checkCmd.Flags().String("partition", "Fast", "Partitioning, preset name or comma separated block sizes")
	checkCmd.Flags().StringSlice("strategy", []string{"all"}, "Strategies to check")

	viper.BindPFlag("check.ref_alphabet", checkCmd.Flags().Lookup("ref-alphabet"))
	viper.BindPFlag("check.enc_alphabet", checkCmd.Flags().Lookup("enc-alphabet"))
	viper.BindPFlag("check.partition", checkCmd.Flags().Lookup("partition"))
	viper.BindPFlag("check.strategy", checkCmd.Flags().Lookup("strategy"))

	return checkCmd
}
