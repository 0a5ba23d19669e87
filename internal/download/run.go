package download

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jmagar/ytgrab-cli/internal/helpers"
	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/runlog"
	"github.com/jmagar/ytgrab-cli/internal/ui"
)

// Outcome summarises one downloader run.
type Outcome struct {
	ExitCode   int
	Lines      int
	ErrLines   int
	Elapsed    time.Duration
	BytesAdded int64
}

// Orchestrator launches the downloader and streams its output.
type Orchestrator struct {
	Binaries model.Binaries
	Deps     *Deps
}

// NewOrchestrator returns an Orchestrator for the resolved binaries.
func NewOrchestrator(bins model.Binaries, deps *Deps) *Orchestrator {
	return &Orchestrator{Binaries: bins, Deps: deps}
}

// Run executes the downloader for req and blocks until it exits. Every
// output line has been delivered to the sink when Run returns. A non-zero
// exit is reported in Outcome, not as an error; err is only set when the
// process could not be started.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Outcome, error) {
	args := BuildArgs(req, o.Binaries.Transcoder)
	cmd := exec.CommandContext(ctx, o.Binaries.Downloader, args...)

	runlog.Log(runlog.Entry{
		Event: runlog.EventDownloadStart,
		Link:  req.Session.Link,
		Mode:  req.Mode.String(),
		Path:  req.Destination,
	})

	before := helpers.FileSizes(req.Destination)
	start := time.Now()
	out, err := streamCommand(cmd, o.Deps.sink())
	out.Elapsed = time.Since(start)
	if err != nil {
		runlog.Log(runlog.Entry{Event: runlog.EventDownloadExit, Link: req.Session.Link, Error: err.Error()})
		return out, err
	}
	out.BytesAdded = helpers.BytesAdded(req.Destination, before)

	runlog.Log(runlog.Entry{
		Event:      runlog.EventDownloadExit,
		Link:       req.Session.Link,
		Mode:       req.Mode.String(),
		Path:       req.Destination,
		ExitCode:   &out.ExitCode,
		DurationMS: out.Elapsed.Milliseconds(),
	})
	return out, nil
}

// Finish prints the run summary and offers to open the destination folder.
// The offer is made whatever the exit status was.
func (o *Orchestrator) Finish(dest string, out Outcome) {
	fmt.Println()
	ui.PrintDivider()
	if out.ExitCode == 0 {
		ui.PrintSuccess(fmt.Sprintf("Downloader finished in %s", out.Elapsed.Round(time.Second)))
	} else {
		ui.PrintWarning(fmt.Sprintf("Downloader exited with status %d after %s", out.ExitCode, out.Elapsed.Round(time.Second)))
	}
	ui.PrintKeyValue("Destination", dest, ui.ColorCyan)
	ui.PrintKeyValue("Written", humanize.Bytes(uint64(out.BytesAdded)), ui.ColorYellow)
	ui.PrintKeyValue("Output lines", fmt.Sprintf("%s (%s errors)",
		humanize.Comma(int64(out.Lines)), humanize.Comma(int64(out.ErrLines))), ui.ColorYellow)
	o.Deps.AskOpenFolder(dest)
}

func streamCommand(cmd *exec.Cmd, sink LineSink) (Outcome, error) {
	var out Outcome
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return out, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return out, err
	}

	var sinkMu sync.Mutex
	consume := func(r io.Reader, isErr bool, wg *sync.WaitGroup) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(scanLinesOrReturns)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			sinkMu.Lock()
			if isErr {
				out.ErrLines++
			} else {
				out.Lines++
			}
			sink(line, isErr)
			sinkMu.Unlock()
		}
		if scanErr := scanner.Err(); scanErr != nil {
			sinkMu.Lock()
			sink(scanErr.Error(), true)
			sinkMu.Unlock()
			// keep draining so the child never blocks on a full pipe
			_, _ = io.Copy(io.Discard, r)
		}
	}

	if err := cmd.Start(); err != nil {
		return out, fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go consume(stdoutPipe, false, &wg)
	go consume(stderrPipe, true, &wg)

	// Wait for pipe readers to finish first (per Go docs requirement)
	wg.Wait()

	waitErr := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	default:
		return out, waitErr
	}
	return out, nil
}

// scanLinesOrReturns splits on \n, \r\n or a lone \r so progress updates
// written with carriage returns surface as separate lines.
func scanLinesOrReturns(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i, b := range data {
		if b == '\n' {
			return i + 1, bytes.TrimRight(data[:i], "\r"), nil
		}
		if b == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// need one more byte to tell \r from \r\n
			return 0, nil, nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
