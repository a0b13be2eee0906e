package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	stderrTailLines = 20
	waitDelay       = 2 * time.Second
)

// CommandPipeline runs the external analysis program as a subprocess.
type CommandPipeline struct {
	command string
	args    []string
	timeout time.Duration
}

func NewCommandPipeline(command string, args []string, timeout time.Duration) *CommandPipeline {
	return &CommandPipeline{
		command: command,
		args:    slices.Clone(args),
		timeout: timeout,
	}
}

func (p *CommandPipeline) Args(req PipelineRequest) []string {
	return append(slices.Clone(p.args),
		"--tickers", strings.Join(req.Tickers, ","),
		"--forms", strings.Join(req.Forms, ","),
		"--start", req.StartDate,
		"--end", req.EndDate,
		"--output-dir", req.OutputDir,
		"--portfolio-dir", req.PortfolioDir,
	)
}

func (p *CommandPipeline) Analyze(ctx context.Context, req PipelineRequest) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	logger := zerolog.Ctx(ctx)
	stdout := &lineLogger{logger: logger, stream: "stdout"}
	stderr := &lineLogger{logger: logger, stream: "stderr", keep: stderrTailLines}

	cmd := exec.CommandContext(ctx, p.command, p.Args(req)...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// orphaned children may hold the output pipes open after a kill
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%s timed out after %s: %w", p.command, p.timeout, ctxErr)
		}
		return fmt.Errorf("%s stopped: %w", p.command, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with status %d: %s", p.command, exitErr.ExitCode(), stderr.Tail())
	}
	return fmt.Errorf("run %s: %w", p.command, err)
}

// lineLogger logs subprocess output line by line, optionally keeping the last lines.
type lineLogger struct {
	logger *zerolog.Logger
	stream string
	keep   int
	buf    bytes.Buffer
	tail   []string
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.buf.Write(p)
	for {
		line, err := l.buf.ReadString('\n')
		if err != nil {
			// partial line, wait for more output
			l.buf.Reset()
			l.buf.WriteString(line)
			break
		}
		l.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

func (l *lineLogger) Flush() {
	if l.buf.Len() > 0 {
		l.emit(l.buf.String())
		l.buf.Reset()
	}
}

func (l *lineLogger) emit(line string) {
	if line == "" {
		return
	}
	l.logger.Debug().Str("stream", l.stream).Msg(line)
	if l.keep == 0 {
		return
	}
	l.tail = append(l.tail, line)
	if len(l.tail) > l.keep {
		l.tail = l.tail[len(l.tail)-l.keep:]
	}
}

func (l *lineLogger) Tail() string {
	return strings.Join(l.tail, "\n")
}
