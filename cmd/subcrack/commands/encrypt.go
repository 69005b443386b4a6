/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: encrypt.go
Description: Encrypt command implementation. Filters a plaintext to the reference
alphabet and encodes it with a key built from two alphabets or from a seeded
shuffle of the reference alphabet.
*/

package commands

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/presets"
	"github.com/kleascm/subcrack/pkg/textload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunEncrypt encodes a plaintext with a substitution key
func RunEncrypt(cmd *cobra.Command, args []string) error {
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

	key, err := buildKey(registry, viper.GetString("encrypt.ref_alphabet"), viper.GetString("encrypt.enc_alphabet"),
		viper.GetBool("encrypt.shuffle"), viper.GetInt64("encrypt.seed"))
	if err != nil {
		return err
	}

	plain, err := loadText(viper.GetString("encrypt.input"), viper.GetString("encrypt.text"), key.SymbolsRef(), textload.DefaultReplace)
	if err != nil {
		return fmt.Errorf("plaintext: %w", err)
	}
	encrypted, err := plain.Encode(key)
	if err != nil {
		return err
	}

	logger.Info("Plaintext encrypted", map[string]interface{}{
		"symbols": encrypted.Len(),
		"key":     key.String(),
	})

	if path := viper.GetString("encrypt.output"); path != "" {
		if err := os.WriteFile(path, []byte(encrypted.String()), 0644); err != nil {
			return fmt.Errorf("failed to write ciphertext: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "key: %s\nCiphertext saved to %s\n", key, path)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "key: %s\n%s\n", key, encrypted)
	return nil
}

// buildKey pairs the reference alphabet with the encoded alphabet, or with a
// seeded permutation of itself when shuffle is set
func buildKey(registry *presets.Registry, refName, encName string, shuffle bool, seed int64) (cipher.Key, error) {
	ref, err := resolveAlphabet(registry, refName)
	if err != nil {
		return cipher.Key{}, err
	}

	if shuffle {
		return shuffledKey(ref, seed)
	}

	enc, err := resolveAlphabet(registry, encName)
	if err != nil {
		return cipher.Key{}, err
	}
	return cipher.NewKey(ref, enc)
}

// shuffledKey maps ref onto a permutation of its own symbols. The same seed
// always yields the same key.
func shuffledKey(ref cipher.Alphabet, seed int64) (cipher.Key, error) {
	symbols := ref.Symbols()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})

	enc, err := cipher.NewAlphabet(symbols)
	if err != nil {
		return cipher.Key{}, err
	}
	return cipher.NewKey(ref, enc)
}
