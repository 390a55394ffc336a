package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerRunsTask(t *testing.T) {
	runner := NewRunner()

	var ran atomic.Bool
	runner.Go("test", func() error {
		ran.Store(true)
		return nil
	})

	require.NoError(t, runner.Shutdown(context.Background()))
	require.True(t, ran.Load())
}

func TestRunnerSurvivesPanicAndError(t *testing.T) {
	runner := NewRunner()

	runner.Go("panics", func() error {
		panic("boom")
	})
	runner.Go("fails", func() error {
		return errors.New("broken")
	})

	var ran atomic.Bool
	runner.Go("runs", func() error {
		ran.Store(true)
		return nil
	})

	require.NoError(t, runner.Shutdown(context.Background()))
	require.True(t, ran.Load())
}

func TestRunnerShutdownWaitsForInFlight(t *testing.T) {
	runner := NewRunner()

	release := make(chan struct{})
	var finished atomic.Bool
	runner.Go("slow", func() error {
		<-release
		finished.Store(true)
		return nil
	})

	close(release)
	require.NoError(t, runner.Shutdown(context.Background()))
	require.True(t, finished.Load())
}

func TestRunnerShutdownHonorsDeadline(t *testing.T) {
	runner := NewRunner()

	release := make(chan struct{})
	defer close(release)
	runner.Go("stuck", func() error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := runner.Shutdown(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
