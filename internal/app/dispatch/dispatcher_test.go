package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"automation/internal/domain/capability"
	"automation/internal/domain/task"
	"automation/internal/infra/capabilities/fileops"
	apperrors "automation/internal/shared/errors"
	"automation/internal/shared/utils/id"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCapability struct {
	err     error
	seen    []task.Status
	taskIDs []string
}

func (r *recordingCapability) Name() string { return "probe" }

func (r *recordingCapability) Validate(*task.Task) error { return nil }

func (r *recordingCapability) Execute(ctx context.Context, t *task.Task) (*task.ExecutionResult, error) {
	r.seen = append(r.seen, t.Status)
	r.taskIDs = append(r.taskIDs, id.TaskIDFromContext(ctx))
	if r.err != nil {
		return nil, r.err
	}
	return task.Succeeded(map[string]any{"ok": true}), nil
}

func newDispatcher(t *testing.T, caps ...capability.Capability) (*Dispatcher, *[]task.Transition) {
	t.Helper()
	registry, err := capability.NewRegistry(caps...)
	require.NoError(t, err)

	var transitions []task.Transition
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d := New(registry,
		WithTransitionHook(func(tr task.Transition) { transitions = append(transitions, tr) }),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	return d, &transitions
}

func TestSubmitDrivesTaskToCompleted(t *testing.T) {
	probe := &recordingCapability{}
	d, transitions := newDispatcher(t, probe)
	tk := task.NewRaw("probe", "noop", nil)

	result, err := d.Submit(context.Background(), tk)
	require.NoError(t, err)
	assert.True(t, result.Success)

	assert.Equal(t, []task.Status{task.StatusRunning}, probe.seen)
	assert.Equal(t, []string{tk.ID}, probe.taskIDs)
	assert.Equal(t, task.StatusCompleted, tk.Status)
	require.NotNil(t, tk.StartedAt)
	require.NotNil(t, tk.CompletedAt)
	assert.True(t, tk.CompletedAt.After(*tk.StartedAt))

	require.Len(t, *transitions, 2)
	assert.Equal(t, task.StatusPending, (*transitions)[0].FromStatus)
	assert.Equal(t, task.StatusRunning, (*transitions)[0].ToStatus)
	assert.Equal(t, task.StatusCompleted, (*transitions)[1].ToStatus)
}

func TestSubmitMarksFailureAndReturnsError(t *testing.T) {
	want := apperrors.IOf("disk on fire")
	d, transitions := newDispatcher(t, &recordingCapability{err: want})
	tk := task.NewRaw("probe", "noop", nil)

	result, err := d.Submit(context.Background(), tk)
	assert.Nil(t, result)
	assert.Same(t, want, err)
	assert.Equal(t, task.StatusFailed, tk.Status)
	require.NotNil(t, tk.CompletedAt)

	require.Len(t, *transitions, 2)
	assert.Equal(t, "IO error: disk on fire", (*transitions)[1].Reason)
}

func TestSubmitRejectsNonPendingTasks(t *testing.T) {
	probe := &recordingCapability{}
	d, _ := newDispatcher(t, probe)
	tk := task.NewRaw("probe", "noop", nil)

	_, err := d.Submit(context.Background(), tk)
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), tk)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "is completed, expected pending")
	assert.Len(t, probe.seen, 1)
}

func TestSubmitUnknownExecutorLeavesTaskPending(t *testing.T) {
	d, transitions := newDispatcher(t, &recordingCapability{})
	tk := task.NewRaw("shell", "run", nil)

	_, err := d.Submit(context.Background(), tk)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Equal(t, task.StatusPending, tk.Status)
	assert.Nil(t, tk.StartedAt)
	assert.Empty(t, *transitions)
}

func TestSubmitNilTask(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Submit(context.Background(), nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestCancel(t *testing.T) {
	probe := &recordingCapability{}
	d, transitions := newDispatcher(t, probe)
	tk := task.NewRaw("probe", "noop", nil)

	require.NoError(t, d.Cancel(tk, "no longer needed"))
	assert.Equal(t, task.StatusCancelled, tk.Status)
	require.NotNil(t, tk.CompletedAt)
	require.Len(t, *transitions, 1)
	assert.Equal(t, "no longer needed", (*transitions)[0].Reason)

	_, err := d.Submit(context.Background(), tk)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Empty(t, probe.seen)

	require.ErrorIs(t, d.Cancel(tk, "again"), apperrors.ErrInvalidConfig)
}

func TestCancelRunningOrFinishedTaskFails(t *testing.T) {
	d, _ := newDispatcher(t, &recordingCapability{})
	tk := task.NewRaw("probe", "noop", nil)
	_, err := d.Submit(context.Background(), tk)
	require.NoError(t, err)

	err = d.Cancel(tk, "")
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Equal(t, task.StatusCompleted, tk.Status)
}

func TestSubmitFileTaskEndToEnd(t *testing.T) {
	root := t.TempDir()
	d, _ := newDispatcher(t, fileops.New(root))

	write, err := task.New(fileops.Name, fileops.OpWrite, map[string]any{"path": "note.txt", "content": "hi"})
	require.NoError(t, err)
	_, err = d.Submit(context.Background(), write)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, write.Status)

	data, err := os.ReadFile(filepath.Join(root, "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	escape, err := task.New(fileops.Name, fileops.OpRead, map[string]any{"path": "../secret"})
	require.NoError(t, err)
	_, err = d.Submit(context.Background(), escape)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, task.StatusFailed, escape.Status)
}
