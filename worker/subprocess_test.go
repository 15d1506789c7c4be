package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/motif"
)

const helperEnv = "MOTIF_WORKER_HELPER"

// TestHelperProcess is not a real test: it is the worker executable for
// the subprocess tests, selected by the helper environment variable.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(helperEnv)
	if mode == "" {
		return
	}
	paramsFile := os.Args[len(os.Args)-1]
	switch mode {
	case "ok":
		if err := RunJobFile(context.Background(), paramsFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "fail":
		fmt.Fprintln(os.Stderr, "render exploded")
		os.Exit(3)
	case "sleep":
		time.Sleep(time.Minute)
	case "noout":
	}
	os.Exit(0)
}

func helperWorker(mode, dir string) *Subprocess {
	return &Subprocess{
		Command: os.Args[0],
		Args:    []string{"-test.run=^TestHelperProcess$", "--"},
		Env:     append(os.Environ(), helperEnv+"="+mode),
		TempDir: dir,
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Empty(t, names, "job files left behind")
}

func TestSubprocessSuccess(t *testing.T) {
	dir := t.TempDir()
	img, err := helperWorker("ok", dir).Run(context.Background(), motif.DefaultParams(motif.ModeSpiral))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, motif.CanvasSize, motif.CanvasSize), img.Bounds())
	assertEmptyDir(t, dir)
}

func TestSubprocessFailures(t *testing.T) {
	tests := []struct {
		mode    string
		timeout time.Duration
		want    string
	}{
		{"fail", 10 * time.Second, "render exploded"},
		{"noout", 10 * time.Second, "no output"},
		{"sleep", 200 * time.Millisecond, "worker killed"},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := t.TempDir()
			ctx, cancel := context.WithTimeout(context.Background(), tt.timeout)
			defer cancel()

			_, err := helperWorker(tt.mode, dir).Run(ctx, motif.DefaultParams(motif.ModeGeometric))
			require.Error(t, err)
			assert.ErrorIs(t, err, motif.ErrGenerationFailed)
			assert.Contains(t, err.Error(), tt.want)
			assertEmptyDir(t, dir)
		})
	}
}

func TestSubprocessThroughPool(t *testing.T) {
	dir := t.TempDir()
	pool, err := NewPool(helperWorker("sleep", dir), WithMaxConcurrent(1), WithTimeout(200*time.Millisecond))
	require.NoError(t, err)

	_, err = pool.Generate(context.Background(), motif.Params{})
	assert.ErrorIs(t, err, motif.ErrGenerationFailed)
	assert.Eventually(t, func() bool { return pool.Running() == 0 }, 5*time.Second, 20*time.Millisecond)
	assertEmptyDir(t, dir)
}

func TestSubprocessRequiresCommand(t *testing.T) {
	_, err := (&Subprocess{}).Run(context.Background(), motif.Params{})
	assert.ErrorIs(t, err, motif.ErrGenerationFailed)
}

func TestJobFiles(t *testing.T) {
	dir := t.TempDir()
	seen := make(map[string]bool)
	for range 100 {
		params, output := jobFiles(dir)
		assert.False(t, seen[params], "duplicate job file %s", params)
		seen[params] = true

		assert.Equal(t, dir, filepath.Dir(params))
		assert.True(t, strings.HasPrefix(filepath.Base(params), jobPrefix))
		assert.True(t, strings.HasSuffix(params, ".json"))
		assert.Equal(t, strings.TrimSuffix(params, ".json")+".png", output)
	}
}

func TestRunJobFile(t *testing.T) {
	dir := t.TempDir()
	paramsFile := filepath.Join(dir, "job.json")
	data, err := json.Marshal(motif.DefaultParams(motif.ModeFractal))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(paramsFile, data, 0o600))

	require.NoError(t, RunJobFile(context.Background(), paramsFile))
	_, err = os.Stat(OutputPath(paramsFile))
	assert.NoError(t, err)
}

func TestRunJobFileInvalid(t *testing.T) {
	dir := t.TempDir()
	paramsFile := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(paramsFile, []byte("{not json"), 0o600))

	err := RunJobFile(context.Background(), paramsFile)
	assert.ErrorIs(t, err, motif.ErrInvalidParameters)

	require.NoError(t, os.WriteFile(paramsFile, []byte(`{"mode":"hexagon"}`), 0o600))
	err = RunJobFile(context.Background(), paramsFile)
	assert.ErrorIs(t, err, motif.ErrInvalidParameters)
}
