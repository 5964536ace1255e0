package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"streamd/pkg/logging"
)

// Handle is the supervisor's view of one live worker process.
type Handle interface {
	// PID returns the operating system process id.
	PID() int

	// Exited reports whether the process has exited, without blocking.
	Exited() bool

	// Done returns a channel that is closed once the process has exited
	// and been waited on.
	Done() <-chan struct{}

	// Terminate asks the process to exit gracefully.
	Terminate() error

	// Kill forcibly ends the process.
	Kill() error
}

// Runner launches the external streaming tool for one piece of media.
// The tool contract is three positional arguments: source path, stream id,
// repeat count (-1 plays forever, N >= 0 plays N+1 times then exits).
type Runner interface {
	Run(sourcePath, id string, repeatCount int) (Handle, error)
}

// ExecRunner runs the streaming tool as a child process.
type ExecRunner struct {
	// Tool is the command to execute. Resolved via PATH unless it
	// contains a path separator.
	Tool string

	// Verbose attaches the tool's stdout/stderr to ours. When false the
	// tool's output is discarded.
	Verbose bool
}

// Run starts the tool and returns a handle for it. A goroutine waits on the
// child so its exit is always collected, whether or not anyone asks.
func (r *ExecRunner) Run(sourcePath, id string, repeatCount int) (Handle, error) {
	cmd := exec.Command(r.Tool, sourcePath, id, strconv.Itoa(repeatCount))
	if r.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to launch %s for stream %s: %w", r.Tool, id, err)
	}

	h := &execHandle{
		id:   id,
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go h.watch()
	return h, nil
}

// execHandle wraps a started exec.Cmd. The watch goroutine owns the Wait
// call; everyone else observes exit through the done channel.
type execHandle struct {
	id   string
	cmd  *exec.Cmd
	done chan struct{}
}

func (h *execHandle) watch() {
	err := h.cmd.Wait()
	if err != nil {
		logging.Debug("Supervisor", "Stream %s process exited: %v", h.id, err)
	} else {
		logging.Debug("Supervisor", "Stream %s process exited cleanly", h.id)
	}
	close(h.done)
}

func (h *execHandle) PID() int {
	return h.cmd.Process.Pid
}

func (h *execHandle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *execHandle) Done() <-chan struct{} {
	return h.done
}

func (h *execHandle) Terminate() error {
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

func (h *execHandle) Kill() error {
	return h.cmd.Process.Kill()
}
