package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

func TestProcessor_RunsSubmittedTasks(t *testing.T) {
	p := NewProcessor(config.ProcessorConfig{Threads: 2, BufferSize: 4}, logger.NewNopLogger())
	p.Start()

	var wg sync.WaitGroup
	count := atomic.NewInt32(0)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(&Task{ID: "t", Ctx: context.Background(), Run: func(context.Context) {
			defer wg.Done()
			count.Inc()
		}}))
	}
	wg.Wait()

	assert.Equal(t, int32(10), count.Load())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestProcessor_DrainsQueueOnShutdown(t *testing.T) {
	p := NewProcessor(config.ProcessorConfig{Threads: 1, BufferSize: 8}, logger.NewNopLogger())

	done := atomic.NewInt32(0)
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(&Task{ID: "t", Ctx: context.Background(), Run: func(context.Context) {
			time.Sleep(5 * time.Millisecond)
			done.Inc()
		}}))
	}
	p.Start()

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(5), done.Load())

	err := p.Submit(&Task{ID: "late", Run: func(context.Context) {}})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestProcessor_FullQueueStillRuns(t *testing.T) {
	p := NewProcessor(config.ProcessorConfig{Threads: 1, BufferSize: 0}, logger.NewNopLogger())

	ran := make(chan struct{})
	require.NoError(t, p.Submit(&Task{ID: "overflow", Ctx: context.Background(), Run: func(context.Context) {
		close(ran)
	}}))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task was not executed")
	}
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestProcessor_RecoversPanic(t *testing.T) {
	p := NewProcessor(config.ProcessorConfig{Threads: 1, BufferSize: 2}, logger.NewNopLogger())
	p.Start()

	ran := make(chan struct{})
	require.NoError(t, p.Submit(&Task{ID: "boom", Run: func(context.Context) { panic("boom") }}))
	require.NoError(t, p.Submit(&Task{ID: "after", Run: func(context.Context) { close(ran) }}))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker died after panic")
	}
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestProcessor_ShutdownDeadline(t *testing.T) {
	p := NewProcessor(config.ProcessorConfig{Threads: 1, BufferSize: 1}, logger.NewNopLogger())
	p.Start()

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(&Task{ID: "slow", Run: func(context.Context) {
		close(started)
		<-release
	}}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(1), p.Inflight())

	close(release)
}

func TestProcessor_TaskTimeout(t *testing.T) {
	p := NewProcessor(config.ProcessorConfig{Threads: 1, BufferSize: 1, TaskTimeout: 10 * time.Millisecond}, logger.NewNopLogger())
	p.Start()

	result := make(chan error, 1)
	require.NoError(t, p.Submit(&Task{ID: "bounded", Ctx: context.Background(), Run: func(ctx context.Context) {
		<-ctx.Done()
		result <- ctx.Err()
	}}))

	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("task context never expired")
	}
	require.NoError(t, p.Shutdown(context.Background()))
}
