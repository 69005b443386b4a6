/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Report writers. Renders an evaluation as an aligned text table or as
JSON, YAML, TOML or a standalone HTML page, and saves timestamped report files.
*/

package reporting

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for unsupported report formats
var ErrUnknownFormat = errors.New("reporting: unknown format")

// Format selects a report encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHTML Format = "html"
)

// Formats lists every supported format
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatHTML}

// ParseFormat resolves a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Extension returns the file extension used when saving the format
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
}).Parse(reportTemplate))

// Write renders the evaluation to w
func Write(w io.Writer, format Format, ev *Evaluation) error {
	switch format {
	case FormatText:
		return writeText(w, ev)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ev)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ev); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(ev)
	case FormatHTML:
		return htmlReport.Execute(w, ev)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Save writes the evaluation to a timestamped file in dir and returns its path
func Save(dir string, format Format, ev *Evaluation) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(dir, fmt.Sprintf("subcrack_report_%s.%s", timestamp, format.Extension()))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := Write(file, format, ev); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// writeText renders the evaluation as the fitness / accuracy summary table
func writeText(w io.Writer, ev *Evaluation) error {
	fmt.Fprintf(w, "%s (%s)\n", ev.Title, ev.SessionID)
	fmt.Fprintf(w, "reference alphabet: %q\n", ev.RefAlphabet)
	fmt.Fprintf(w, "encoded alphabet:   %q\n", ev.EncAlphabet)
	if ev.Partitioning != "" {
		fmt.Fprintf(w, "partitioning:       %s\n", ev.Partitioning)
	}
	fmt.Fprintf(w, "encrypted symbols:  %d, reference symbols: %d\n\n", ev.EncLength, ev.RefLength)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if ev.HasTrueKey {
		fmt.Fprintln(tw, "strategy\tfitness\ttext accuracy\tkey accuracy\tcandidates\tduration")
		fmt.Fprintf(tw, "true key\t%.6g\t-\t-\t-\t-\n", ev.TrueFitness)
		for _, row := range ev.Rows {
			fmt.Fprintf(tw, "%s\t%.6g\t%.4f\t%.4f\t%d\t%s\n",
				row.Strategy, row.Fitness, row.TextAccuracy, row.KeyAccuracy, row.Candidates, row.Duration)
		}
	} else {
		fmt.Fprintln(tw, "strategy\tfitness\tscore\tcandidates\tduration")
		for _, row := range ev.Rows {
			fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%d\t%s\n",
				row.Strategy, row.Fitness, row.Score, row.Candidates, row.Duration)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, row := range ev.Rows {
		fmt.Fprintf(w, "\n[%s] key: %s\n", row.Strategy, row.Key)
		if row.Preview != "" {
			fmt.Fprintf(w, "%s\n", row.Preview)
		}
	}
	return nil
}
