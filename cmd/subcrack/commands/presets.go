/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: presets.go
Description: Presets command implementation. Lists the known alphabets and
partitionings with the number of keys each partitioning makes a search score.
*/

package commands

import (
	"fmt"
	"math/bits"
	"text/tabwriter"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/core"
	"github.com/kleascm/subcrack/pkg/permute"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ListPresets prints every alphabet and partitioning preset
func ListPresets(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if export, _ := cmd.Flags().GetBool("yaml"); export {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(registry.Export()); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALPHABET\tSYMBOLS\tLENGTH")
	for _, name := range registry.AlphabetNames() {
		a, err := registry.Alphabet(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", name, a.Quoted(), a.Len())
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PARTITIONING\tBLOCKS\tSUM\tSLOW CANDIDATES\tFAST CANDIDATES")
	for _, name := range registry.PartitioningNames() {
		p, err := registry.Partitioning(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", name, p, p.Sum(), formatCount(p.SearchSpace()), formatCount(fastSpace(p)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, s := range core.Strategies {
		fmt.Fprintf(out, "%-15s %s\n", s, s.Description())
	}
	return nil
}

// fastSpace is the sum of the block factorials
func fastSpace(p cipher.Partitioning) (uint64, bool) {
	var total, carry uint64
	for _, size := range p.Sizes() {
		f, ok := permute.Factorial(size)
		if !ok {
			return 0, false
		}
		total, carry = bits.Add64(total, f, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return total, true
}

func formatCount(n uint64, ok bool) string {
	if !ok {
		return "overflow"
	}
	return fmt.Sprintf("%d", n)
}
