/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporting_test.go
Description: Tests for evaluations and report writers.
*/

package reporting_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/core"
	"github.com/kleascm/subcrack/pkg/reporting"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var (
	refAlphabet = cipher.MustParseAlphabet("abcdef")
	encAlphabet = cipher.MustParseAlphabet("uvwxyz")
	trueKey     = cipher.MustKey(refAlphabet, cipher.MustParseAlphabet("zuywvx"))
)

// solve encrypts a skewed plaintext with trueKey and runs sort and partition-fast on it
func solve(t *testing.T) (*core.Problem, []*core.Result) {
	t.Helper()
	plain, err := cipher.ParseText("aaaaaaaaaabbbbbbbbcccccccdddddeeeffabcdef", refAlphabet)
	require.NoError(t, err)
	encrypted, err := plain.Encode(trueKey)
	require.NoError(t, err)

	problem, err := core.NewProblem(encrypted, encAlphabet, plain, refAlphabet, cipher.MustPartitioning(3, 3))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	engine, err := core.NewEngine(nil, logger)
	require.NoError(t, err)

	var results []*core.Result
	for _, strategy := range []core.Strategy{core.StrategySort, core.StrategyPartitionFast} {
		result, err := engine.Solve(context.Background(), problem, strategy)
		require.NoError(t, err)
		results = append(results, result)
	}
	return problem, results
}

// TestEvaluate tests fitness and accuracy rows against the true key
func TestEvaluate(t *testing.T) {
	problem, results := solve(t)

	ev, err := reporting.Evaluate(problem, trueKey, results, 10)
	require.NoError(t, err)

	assert.NotEmpty(t, ev.SessionID)
	assert.True(t, ev.HasTrueKey)
	assert.Equal(t, "3,3", ev.Partitioning)
	assert.InDelta(t, 0, ev.TrueFitness, 1e-12)
	require.Len(t, ev.Rows, 2)

	for _, row := range ev.Rows {
		assert.Equal(t, 1.0, row.TextAccuracy, row.Strategy)
		assert.Equal(t, 1.0, row.KeyAccuracy, row.Strategy)
		assert.InDelta(t, 0, row.Fitness, 1e-12)
		assert.Equal(t, "aaaaaaaaaa", row.Preview)
	}
	assert.Equal(t, "partition-fast", ev.Rows[1].Strategy)
	assert.Equal(t, uint64(12), ev.Rows[1].Candidates)
}

// TestEvaluateWithoutKey tests that accuracy stays zero for unknown keys
func TestEvaluateWithoutKey(t *testing.T) {
	problem, results := solve(t)

	ev, err := reporting.Evaluate(problem, cipher.Key{}, results, 0)
	require.NoError(t, err)
	assert.False(t, ev.HasTrueKey)
	assert.Empty(t, ev.TrueKey)
	assert.Zero(t, ev.Rows[0].KeyAccuracy)
	assert.Len(t, ev.Rows[0].Preview, problem.Encrypted.Len(), "short texts are previewed whole")
}

// TestZeroAccuracyWritten tests that a completely wrong key still reports its
// accuracy fields
func TestZeroAccuracyWritten(t *testing.T) {
	ab := cipher.MustParseAlphabet("ab")
	xy := cipher.MustParseAlphabet("xy")
	key := cipher.MustKey(ab, xy)

	// b dominates the plaintext but a dominates the reference, so rank pairing swaps them
	plain, err := cipher.ParseText("bba", ab)
	require.NoError(t, err)
	reference, err := cipher.ParseText("aab", ab)
	require.NoError(t, err)
	encrypted, err := plain.Encode(key)
	require.NoError(t, err)

	problem, err := core.NewProblem(encrypted, xy, reference, ab, cipher.Partitioning{})
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	engine, err := core.NewEngine(nil, logger)
	require.NoError(t, err)
	result, err := engine.DecodeSort(problem)
	require.NoError(t, err)

	ev, err := reporting.Evaluate(problem, key, []*core.Result{result}, 0)
	require.NoError(t, err)
	require.Len(t, ev.Rows, 1)
	assert.Zero(t, ev.Rows[0].KeyAccuracy)
	assert.Zero(t, ev.Rows[0].TextAccuracy)

	var buf bytes.Buffer
	require.NoError(t, reporting.Write(&buf, reporting.FormatJSON, ev))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	rows := decoded["rows"].([]interface{})
	row := rows[0].(map[string]interface{})
	assert.Contains(t, row, "key_accuracy")
	assert.Contains(t, row, "text_accuracy")
	assert.Contains(t, decoded, "true_fitness")

	for _, format := range []reporting.Format{reporting.FormatYAML, reporting.FormatTOML} {
		buf.Reset()
		require.NoError(t, reporting.Write(&buf, format, ev))
		assert.Contains(t, buf.String(), "key_accuracy", format)
		assert.Contains(t, buf.String(), "text_accuracy", format)
	}
}

// TestWriteFormats tests that every format renders and the structured ones decode again
func TestWriteFormats(t *testing.T) {
	problem, results := solve(t)
	ev, err := reporting.Evaluate(problem, trueKey, results, 0)
	require.NoError(t, err)

	for _, format := range reporting.Formats {
		var buf bytes.Buffer
		require.NoError(t, reporting.Write(&buf, format, ev), format)
		require.NotZero(t, buf.Len(), format)

		switch format {
		case reporting.FormatText:
			assert.Contains(t, buf.String(), "text accuracy")
			assert.Contains(t, buf.String(), "partition-fast")
		case reporting.FormatJSON:
			var decoded reporting.Evaluation
			require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
			assert.Equal(t, ev.SessionID, decoded.SessionID)
			assert.Len(t, decoded.Rows, 2)
		case reporting.FormatYAML:
			var decoded map[string]interface{}
			require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
			assert.Equal(t, ev.SessionID, decoded["session_id"])
		case reporting.FormatTOML:
			var decoded reporting.Evaluation
			_, err := toml.Decode(buf.String(), &decoded)
			require.NoError(t, err)
			assert.Equal(t, ev.SessionID, decoded.SessionID)
			assert.Len(t, decoded.Rows, 2)
		case reporting.FormatHTML:
			assert.True(t, strings.HasPrefix(buf.String(), "<!DOCTYPE html>"))
			assert.Contains(t, buf.String(), "100.0%")
		}
	}

	assert.ErrorIs(t, reporting.Write(io.Discard, reporting.Format("pdf"), ev), reporting.ErrUnknownFormat)
}

// TestParseFormat tests format lookup
func TestParseFormat(t *testing.T) {
	f, err := reporting.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, reporting.FormatYAML, f)
	assert.Equal(t, "txt", reporting.FormatText.Extension())

	_, err = reporting.ParseFormat("csv")
	assert.ErrorIs(t, err, reporting.ErrUnknownFormat)
}

// TestSave tests timestamped report files
func TestSave(t *testing.T) {
	problem, results := solve(t)
	ev, err := reporting.Evaluate(problem, trueKey, results, 0)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "reports")
	path, err := reporting.Save(dir, reporting.FormatJSON, ev)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "subcrack_report_"))
	assert.Equal(t, ".json", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), ev.SessionID)
}
