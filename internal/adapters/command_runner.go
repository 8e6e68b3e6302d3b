package adapters

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"

	"yyoom/internal/shared"
)

// CommandRunner runs external programs on behalf of the engine adapters.
type CommandRunner interface {
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Stream runs the command and hands every stdout and stderr line to the
	// given callbacks, one line at a time.
	Stream(ctx context.Context, stdout func(string), stderr func(string), name string, args ...string) error
}

type ExecCommandRunner struct{}

func (ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, shared.CommandError(stderr.Bytes(), err)
	}
	return output, nil
}

func (ExecCommandRunner) Stream(ctx context.Context, stdout func(string), stderr func(string), name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	var mu sync.Mutex
	var group errgroup.Group
	group.Go(func() error { return scanLines(outPipe, &mu, stdout) })
	group.Go(func() error { return scanLines(errPipe, &mu, stderr) })
	scanErr := group.Wait()
	if err := cmd.Wait(); err != nil {
		return err
	}
	return scanErr
}

// maxLineLength caps a single emitted line; the rest of a longer line is
// read and dropped so the child never blocks on a full pipe.
const maxLineLength = 1024 * 1024

// scanLines feeds each line of r to emit, serialised through mu so callers
// never see concurrent callbacks.
func scanLines(r io.Reader, mu *sync.Mutex, emit func(string)) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			_, _ = io.Copy(io.Discard, r)
			return err
		}
		if room := maxLineLength - len(line); room > 0 {
			line = append(line, chunk[:min(room, len(chunk))]...)
		}
		if isPrefix {
			continue
		}
		if emit != nil {
			mu.Lock()
			emit(string(line))
			mu.Unlock()
		}
		line = line[:0]
	}
}

var _ CommandRunner = ExecCommandRunner{}
