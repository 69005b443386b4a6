/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: evaluation.go
Description: Evaluation of decoding results. Each result key is applied to the
encrypted text and the decoded profile is compared with the reference profile.
When the true key is known, text and key accuracy are reported as well.
*/

package reporting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/core"
	"github.com/kleascm/subcrack/pkg/fitness"
)

// DefaultPreviewLength is the number of decoded symbols kept per row
const DefaultPreviewLength = 200

// Evaluation contains all data of one report
type Evaluation struct {
	SessionID    string    `json:"session_id" yaml:"session_id" toml:"session_id"`
	Title        string    `json:"title" yaml:"title" toml:"title"`
	GeneratedAt  time.Time `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
	RefAlphabet  string    `json:"ref_alphabet" yaml:"ref_alphabet" toml:"ref_alphabet"`
	EncAlphabet  string    `json:"enc_alphabet" yaml:"enc_alphabet" toml:"enc_alphabet"`
	Partitioning string    `json:"partitioning,omitempty" yaml:"partitioning,omitempty" toml:"partitioning,omitempty"`
	EncLength    int       `json:"enc_length" yaml:"enc_length" toml:"enc_length"`
	RefLength    int       `json:"ref_length" yaml:"ref_length" toml:"ref_length"`

	HasTrueKey  bool    `json:"has_true_key" yaml:"has_true_key" toml:"has_true_key"`
	TrueKey     string  `json:"true_key,omitempty" yaml:"true_key,omitempty" toml:"true_key,omitempty"`
	TrueFitness float64 `json:"true_fitness" yaml:"true_fitness" toml:"true_fitness"`

	Rows []Row `json:"rows" yaml:"rows" toml:"rows"`
}

// Row holds the evaluation of one strategy
type Row struct {
	Strategy     string  `json:"strategy" yaml:"strategy" toml:"strategy"`
	Key          string  `json:"key" yaml:"key" toml:"key"`
	Score        float64 `json:"score" yaml:"score" toml:"score"`       // Dot score used by the search
	Fitness      float64 `json:"fitness" yaml:"fitness" toml:"fitness"` // Squared divergence of decoded vs reference profile
	TextAccuracy float64 `json:"text_accuracy" yaml:"text_accuracy" toml:"text_accuracy"`
	KeyAccuracy  float64 `json:"key_accuracy" yaml:"key_accuracy" toml:"key_accuracy"`
	Candidates   uint64  `json:"candidates" yaml:"candidates" toml:"candidates"`
	Blocks       int     `json:"blocks" yaml:"blocks" toml:"blocks"`
	Duration     string  `json:"duration" yaml:"duration" toml:"duration"`
	Preview      string  `json:"preview" yaml:"preview" toml:"preview"`
}

// Evaluate scores every result against the problem. trueKey may be the zero
// Key when the real key is unknown.
func Evaluate(problem *core.Problem, trueKey cipher.Key, results []*core.Result, previewLength int) (*Evaluation, error) {
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}

	ev := &Evaluation{
		SessionID:   uuid.NewString(),
		Title:       "subcrack evaluation",
		GeneratedAt: time.Now(),
		RefAlphabet: problem.RefAlphabet.String(),
		EncAlphabet: problem.EncAlphabet.String(),
		EncLength:   problem.Encrypted.Len(),
		RefLength:   problem.Reference.Len(),
		HasTrueKey:  !trueKey.IsZero(),
		Rows:        make([]Row, 0, len(results)),
	}
	if !problem.Partitioning.IsZero() {
		ev.Partitioning = problem.Partitioning.String()
	}

	refFreq := problem.ReferenceFrequencies()

	var trueDecoded cipher.Text
	if ev.HasTrueKey {
		var err error
		trueDecoded, err = problem.Encrypted.Decode(trueKey)
		if err != nil {
			return nil, fmt.Errorf("true key: %w", err)
		}
		ev.TrueKey = trueKey.String()
		ev.TrueFitness, err = decodedFitness(trueDecoded, refFreq, problem.RefAlphabet)
		if err != nil {
			return nil, fmt.Errorf("true key: %w", err)
		}
	}

	for _, result := range results {
		decoded, err := problem.Encrypted.Decode(result.Key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", result.Strategy, err)
		}
		fit, err := decodedFitness(decoded, refFreq, problem.RefAlphabet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", result.Strategy, err)
		}

		row := Row{
			Strategy:   string(result.Strategy),
			Key:        result.Key.String(),
			Score:      result.Score,
			Fitness:    fit,
			Candidates: result.Candidates,
			Blocks:     result.Blocks,
			Duration:   result.Duration.String(),
			Preview:    decoded.Slice(previewLength).String(),
		}
		if ev.HasTrueKey {
			row.TextAccuracy = trueDecoded.Compare(decoded)
			row.KeyAccuracy = trueKey.Compare(result.Key)
		}
		ev.Rows = append(ev.Rows, row)
	}

	return ev, nil
}

func decodedFitness(decoded cipher.Text, refFreq cipher.Frequencies, alphabet cipher.Alphabet) (float64, error) {
	decFreq, err := decoded.Frequencies(alphabet)
	if err != nil {
		return 0, err
	}
	return fitness.Squared(refFreq, decFreq, alphabet)
}
