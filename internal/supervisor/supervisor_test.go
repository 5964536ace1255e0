package supervisor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHandle is a controllable stand-in for a worker process.
type fakeHandle struct {
	pid  int
	done chan struct{}
	once sync.Once

	mu         sync.Mutex
	terminated bool
	killed     bool

	ignoreTerm bool  // survive Terminate, die only on Kill
	termErr    error // injected Terminate failure
}

func newFakeHandle(pid int) *fakeHandle {
	return &fakeHandle{pid: pid, done: make(chan struct{})}
}

// exit simulates the process ending, from whatever cause.
func (h *fakeHandle) exit() {
	h.once.Do(func() { close(h.done) })
}

func (h *fakeHandle) PID() int              { return h.pid }
func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *fakeHandle) Terminate() error {
	h.mu.Lock()
	h.terminated = true
	ignore, err := h.ignoreTerm, h.termErr
	h.mu.Unlock()

	if err != nil {
		return err
	}
	if !ignore {
		h.exit()
	}
	return nil
}

func (h *fakeHandle) Kill() error {
	h.mu.Lock()
	h.killed = true
	h.mu.Unlock()
	h.exit()
	return nil
}

func (h *fakeHandle) wasKilled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.killed
}

type spawn struct {
	sourcePath  string
	id          string
	repeatCount int
}

// fakeRunner hands out fakeHandles and records every launch.
type fakeRunner struct {
	mu      sync.Mutex
	spawns  []spawn
	handles []*fakeHandle
	nextPID int

	runErr     error // injected spawn failure
	ignoreTerm bool
	termErr    error
}

func (r *fakeRunner) Run(sourcePath, id string, repeatCount int) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runErr != nil {
		return nil, r.runErr
	}

	r.nextPID++
	h := newFakeHandle(r.nextPID)
	h.ignoreTerm = r.ignoreTerm
	h.termErr = r.termErr
	r.spawns = append(r.spawns, spawn{sourcePath, id, repeatCount})
	r.handles = append(r.handles, h)
	return h, nil
}

func (r *fakeRunner) spawnCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spawns)
}

func (r *fakeRunner) handle(i int) *fakeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles[i]
}

func newTestSupervisor(runner *fakeRunner) *Supervisor {
	return New(runner, 50*time.Millisecond)
}

func TestStartCreatesRecord(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)

	err := s.Start("intro", "/media/intro.mp4", -1)
	require.NoError(t, err)

	assert.True(t, s.IsRunning("intro"))
	assert.Equal(t, 1, s.Len())

	records := s.Snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, "intro", records[0].ID)
	assert.Equal(t, "/media/intro.mp4", records[0].SourcePath)
	assert.Equal(t, -1, records[0].RepeatCount)
	assert.Equal(t, 1, records[0].PID)
	assert.False(t, records[0].StartedAt.IsZero())

	require.Len(t, runner.spawns, 1)
	assert.Equal(t, spawn{"/media/intro.mp4", "intro", -1}, runner.spawns[0])
}

func TestStartDuplicate(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)

	require.NoError(t, s.Start("intro", "/media/intro.mp4", -1))

	err := s.Start("intro", "/media/intro.mp4", -1)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Equal(t, 1, runner.spawnCount(), "duplicate start must not spawn")
}

func TestConcurrentStartOneWinner(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)

	const callers = 20
	results := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Start("intro", "/media/intro.mp4", -1)
		}()
	}
	wg.Wait()
	close(results)

	winners, losers := 0, 0
	for err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrAlreadyRunning):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, winners, "exactly one concurrent start must win")
	assert.Equal(t, callers-1, losers)
	assert.Equal(t, 1, runner.spawnCount())
	assert.Equal(t, 1, s.Len())
}

func TestStartSpawnFailure(t *testing.T) {
	spawnErr := errors.New("tool not found")
	runner := &fakeRunner{runErr: spawnErr}
	s := newTestSupervisor(runner)

	err := s.Start("intro", "/media/intro.mp4", -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, spawnErr)
	assert.False(t, s.IsRunning("intro"), "spawn failure must not leave a record")
	assert.Equal(t, 0, s.Len())
}

func TestStopGraceful(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("intro", "/media/intro.mp4", -1))

	err := s.Stop("intro")
	require.NoError(t, err)

	assert.False(t, s.IsRunning("intro"))
	assert.Equal(t, 0, s.Len())
	h := runner.handle(0)
	assert.True(t, h.Exited())
	assert.False(t, h.wasKilled(), "graceful exit must not be killed")
}

func TestStopNotRunning(t *testing.T) {
	s := newTestSupervisor(&fakeRunner{})

	err := s.Stop("ghost")
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestStopEscalatesToKill(t *testing.T) {
	runner := &fakeRunner{ignoreTerm: true}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("stubborn", "/media/s.mp4", -1))

	start := time.Now()
	err := s.Stop("stubborn")
	require.NoError(t, err)

	h := runner.handle(0)
	assert.True(t, h.wasKilled(), "expected kill after grace expired")
	assert.True(t, h.Exited())
	assert.False(t, s.IsRunning("stubborn"))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond, "grace period must elapse before kill")
}

func TestStopEscalatesWhenSignalFails(t *testing.T) {
	runner := &fakeRunner{termErr: errors.New("operation not permitted"), ignoreTerm: true}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("intro", "/media/intro.mp4", -1))

	err := s.Stop("intro")
	require.NoError(t, err, "signal failure must not prevent bookkeeping cleanup")

	assert.True(t, runner.handle(0).wasKilled())
	assert.False(t, s.IsRunning("intro"))
}

func TestReapCollectsDeadWorkers(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("alive", "/media/a.mp4", -1))
	require.NoError(t, s.Start("dead", "/media/d.mp4", 0))

	// The second worker exits on its own, unannounced.
	runner.handle(1).exit()

	// Until a sweep runs, the supervisor still believes it running.
	assert.True(t, s.IsRunning("dead"))

	reaped := s.Reap()
	assert.Equal(t, []string{"dead"}, reaped)
	assert.False(t, s.IsRunning("dead"))
	assert.True(t, s.IsRunning("alive"))
	assert.Equal(t, 1, s.Len())
}

func TestReapNothingDead(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("intro", "/media/intro.mp4", -1))

	assert.Empty(t, s.Reap())
	assert.True(t, s.IsRunning("intro"))
}

func TestRestartReplacesProcess(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("intro", "/media/intro.mp4", -1))

	err := s.Restart("intro", "/media/intro.mp4", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, runner.spawnCount())
	assert.True(t, runner.handle(0).Exited(), "old process must be stopped")

	records := s.Snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].RepeatCount)
	assert.Equal(t, 2, records[0].PID, "record must point at the new process")
}

func TestRestartWhenNotRunning(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)

	err := s.Restart("intro", "/media/intro.mp4", 5)
	require.NoError(t, err)

	assert.True(t, s.IsRunning("intro"))
	assert.Equal(t, 1, runner.spawnCount())
}

func TestSnapshotSorted(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("bravo", "/media/b.mp4", -1))
	require.NoError(t, s.Start("alpha", "/media/a.mp4", -1))
	require.NoError(t, s.Start("charlie", "/media/c.mp4", -1))

	records := s.Snapshot()
	require.Len(t, records, 3)
	assert.Equal(t, "alpha", records[0].ID)
	assert.Equal(t, "bravo", records[1].ID)
	assert.Equal(t, "charlie", records[2].ID)
}

func TestStopAll(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)
	require.NoError(t, s.Start("alpha", "/media/a.mp4", -1))
	require.NoError(t, s.Start("bravo", "/media/b.mp4", -1))
	require.NoError(t, s.Start("charlie", "/media/c.mp4", -1))

	stopped := s.StopAll()

	assert.Equal(t, 3, stopped)
	assert.Equal(t, 0, s.Len())
}

func TestDistinctIdsRunInParallel(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSupervisor(runner)

	const ids = 10
	var wg sync.WaitGroup
	errs := make(chan error, ids)
	for i := 0; i < ids; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			errs <- s.Start(id, "/media/"+id+".mp4", -1)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, ids, s.Len())
}
