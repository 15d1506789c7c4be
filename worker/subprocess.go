package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/gogpu/motif"
)

// File naming of subprocess jobs.
const (
	jobPrefix    = "motif-"
	paramsSuffix = ".json"
	outputSuffix = ".png"
)

// waitDelay bounds how long Run waits for a killed worker's pipes.
const waitDelay = 2 * time.Second

// Subprocess runs every job in a separate worker process.
//
// The parameters are written as JSON to a uniquely named file in TempDir
// and the worker is started as Command Args... <params file>. On success
// the worker exits 0 and leaves the image at OutputPath(<params file>).
// The process is killed when ctx ends. Both files are removed on every
// exit path.
type Subprocess struct {
	// Command is the worker executable.
	Command string
	// Args are passed before the params file, e.g. {"worker"}.
	Args []string
	// Env, when non-nil, replaces the worker's environment.
	Env []string
	// TempDir holds job files; empty means os.TempDir().
	TempDir string
}

// OutputPath returns where a worker writes the image for paramsFile.
func OutputPath(paramsFile string) string {
	return strings.TrimSuffix(paramsFile, paramsSuffix) + outputSuffix
}

// jobFiles returns a fresh params file name and its output path in dir.
func jobFiles(dir string) (params, output string) {
	params = filepath.Join(dir, jobPrefix+uuid.NewString()+paramsSuffix)
	return params, OutputPath(params)
}

// Run implements Runner.
func (s *Subprocess) Run(ctx context.Context, p motif.Params) (*image.NRGBA, error) {
	if s.Command == "" {
		return nil, fmt.Errorf("%w: worker command is required", motif.ErrGenerationFailed)
	}
	dir := s.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	paramsFile, outputFile := jobFiles(dir)
	defer cleanup(paramsFile, outputFile)

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: encode params: %v", motif.ErrGenerationFailed, err)
	}
	if err := os.WriteFile(paramsFile, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: write params: %v", motif.ErrGenerationFailed, err)
	}

	cmd := exec.CommandContext(ctx, s.Command, append(slices.Clone(s.Args), paramsFile)...)
	cmd.Env = s.Env
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: worker killed: %w", motif.ErrGenerationFailed, ctxErr)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: worker: %s", motif.ErrGenerationFailed, detail)
	}

	out, err := imaging.Open(outputFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: worker produced no output", motif.ErrGenerationFailed)
		}
		return nil, fmt.Errorf("%w: read output: %v", motif.ErrGenerationFailed, err)
	}
	return imaging.Clone(out), nil
}

func cleanup(files ...string) {
	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			motif.Logger().Warn("worker: cleanup failed", "file", f, "err", err)
		}
	}
}

// RunJobFile is the worker side of Subprocess: it reads the params file,
// renders it in process and writes the PNG to OutputPath(paramsFile).
func RunJobFile(ctx context.Context, paramsFile string) error {
	data, err := os.ReadFile(paramsFile)
	if err != nil {
		return err
	}
	var p motif.Params
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: params file: %v", motif.ErrInvalidParameters, err)
	}
	img, err := motif.Generate(ctx, p)
	if err != nil {
		return err
	}
	return imaging.Save(img, OutputPath(paramsFile))
}
