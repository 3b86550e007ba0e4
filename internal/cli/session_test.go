package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/chargematch/internal/adapters/textio"
	"github.com/eshaffer321/chargematch/internal/application/reconcile"
	"github.com/eshaffer321/chargematch/internal/domain/matcher"
	"github.com/eshaffer321/chargematch/internal/infrastructure/storage"
)

const fourWayInput = "A: 2.00\nB: 3.00\n\nw: 1.00\nx: 1.00\ny: 1.00\nz: 2.00\n"

func newSession(input string, out io.Writer) *Session {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Session{
		In:      strings.NewReader(input),
		Out:     out,
		Service: reconcile.NewService(matcher.Config{}, nil, logger),
	}
}

func TestSession_Run(t *testing.T) {
	t.Run("prints every solution", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, newSession(fourWayInput, &out).Run(context.Background()))

		want := OrdersPrompt + "\n\n" +
			ChargesPrompt + "\n\n" +
			"Solution 0:\n" +
			"A: 2.00\n- w: 1.00\n- x: 1.00\n" +
			"B: 3.00\n- y: 1.00\n- z: 2.00\n\n"
		assert.True(t, strings.HasPrefix(out.String(), want), out.String())
		assert.Equal(t, 4, strings.Count(out.String(), "Solution "))
		assert.Contains(t, out.String(), "Solution 3:\nA: 2.00\n- z: 2.00\nB: 3.00\n- w: 1.00\n- x: 1.00\n- y: 1.00\n")
	})

	t.Run("no solution", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, newSession("A: 0.50\n\nx: 1.00\n", &out).Run(context.Background()))

		assert.True(t, strings.HasSuffix(out.String(), "No exact solutions!\n"))
	})

	t.Run("summary explains unbalanced totals", func(t *testing.T) {
		var out, summary bytes.Buffer
		s := newSession("A: 2.00\n\nx: 1.00\n", &out)
		s.Summary = &summary

		require.NoError(t, s.Run(context.Background()))

		assert.Contains(t, summary.String(), "0 solution(s)")
		assert.Contains(t, summary.String(), "Totals differ: charges ($1.00) are less than orders ($2.00)")
	})

	t.Run("charges end at EOF", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, newSession("A: 1.00\n\nx: 1.00", &out).Run(context.Background()))

		assert.Contains(t, out.String(), "Solution 0:\nA: 1.00\n- x: 1.00\n")
	})

	t.Run("malformed order", func(t *testing.T) {
		var out bytes.Buffer

		err := newSession("A 2.00\n\nx: 2.00\n", &out).Run(context.Background())

		require.ErrorIs(t, err, textio.ErrInvalidLine)
		assert.Contains(t, err.Error(), "orders: line 1")
		assert.NotContains(t, out.String(), ChargesPrompt)
	})

	t.Run("malformed charge", func(t *testing.T) {
		var out bytes.Buffer

		err := newSession("A: 2.00\n\nx: 2.0\n", &out).Run(context.Background())

		require.ErrorIs(t, err, textio.ErrInvalidLine)
		assert.Contains(t, err.Error(), "charges: line 1")
	})

	t.Run("summary", func(t *testing.T) {
		var out, summary bytes.Buffer
		s := newSession(fourWayInput, &out)
		s.Summary = &summary

		require.NoError(t, s.Run(context.Background()))

		assert.Contains(t, summary.String(), "4 solution(s)")
	})
}

func TestRunMatch_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"storage:\n  database_path: \""+dbPath+"\"\n  history_enabled: true\n"+
			"observability:\n  logging:\n    level: error\n"), 0o600))

	var out, errOut bytes.Buffer
	flags := &MatchFlags{ConfigPath: cfgPath, MaxSolutions: unset, MaxCharges: unset, Workers: unset, Verbose: true}

	require.NoError(t, RunMatch(context.Background(), flags, strings.NewReader(fourWayInput), &out, &errOut))
	assert.Contains(t, errOut.String(), "4 solution(s)")

	store, err := storage.NewStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "cli", runs[0].Source)
	assert.Equal(t, storage.StatusCompleted, runs[0].Status)
	assert.Equal(t, 4, runs[0].SolutionCount)
}

func TestRunMatch_TooManyCharges(t *testing.T) {
	var out, errOut bytes.Buffer
	flags := &MatchFlags{
		ConfigPath:   writeConfig(t, "matcher:\n  max_charges: 2\nstorage:\n  history_enabled: false\n"),
		MaxSolutions: unset,
		MaxCharges:   unset,
		Workers:      unset,
	}

	err := RunMatch(context.Background(), flags, strings.NewReader(fourWayInput), &out, &errOut)

	require.ErrorIs(t, err, matcher.ErrTooManyCharges)
}

func TestRunMatch_MissingConfig(t *testing.T) {
	flags := &MatchFlags{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}

	err := RunMatch(context.Background(), flags, strings.NewReader(""), io.Discard, io.Discard)

	assert.Error(t, err)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
