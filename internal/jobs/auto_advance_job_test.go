package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAutoAdvancer struct{ mock.Mock }

func (m *MockAutoAdvancer) Handle(ctx context.Context, cmd commands.AutoAdvanceOrdersCommand) (commands.AutoAdvanceResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AutoAdvanceResult), args.Error(1)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) RecordAutoAdvance(promoted, skipped, failed int) {
	m.Called(promoted, skipped, failed)
}

func TestAutoAdvanceJob_Run_RecordsResult(t *testing.T) {
	handler := new(MockAutoAdvancer)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.AutoAdvanceResult{Promoted: 2, Skipped: 1}, nil).Once()
	recorder := new(MockRecorder)
	recorder.On("RecordAutoAdvance", 2, 1, 0).Once()

	NewAutoAdvanceJob(handler, recorder, "@every 1h", slog.Default()).Run()

	handler.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestAutoAdvanceJob_Run_FailureIsNotRecorded(t *testing.T) {
	handler := new(MockAutoAdvancer)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.AutoAdvanceResult{}, errors.New("db down")).Once()
	recorder := new(MockRecorder)

	NewAutoAdvanceJob(handler, recorder, "@every 1h", slog.Default()).Run()

	recorder.AssertNotCalled(t, "RecordAutoAdvance", mock.Anything, mock.Anything, mock.Anything)
}

func TestAutoAdvanceJob_Run_SkipsOverlappingTick(t *testing.T) {
	started, release := make(chan struct{}), make(chan struct{})
	handler := new(MockAutoAdvancer)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(commands.AutoAdvanceResult{}, nil).Once()

	job := NewAutoAdvanceJob(handler, nil, "@every 1h", slog.Default())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Run()
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first run did not start")
	}
	job.Run()
	close(release)
	wg.Wait()

	handler.AssertNumberOfCalls(t, "Handle", 1)
}

func TestAutoAdvanceJob_Start_RejectsBadSchedule(t *testing.T) {
	job := NewAutoAdvanceJob(new(MockAutoAdvancer), nil, "every now and then", slog.Default())
	require.Error(t, job.Start())
}

func TestJobManager(t *testing.T) {
	t.Run("empty schedule disables the job", func(t *testing.T) {
		jm := NewJobManager(new(MockAutoAdvancer), nil, "", slog.Default())
		require.NoError(t, jm.StartAll())
		assert.Nil(t, jm.autoAdvanceJob)
		jm.StopAll()
	})

	t.Run("starts and stops", func(t *testing.T) {
		jm := NewJobManager(new(MockAutoAdvancer), nil, "0 0 3 * * *", slog.Default())
		require.NoError(t, jm.StartAll())
		assert.Len(t, jm.autoAdvanceJob.cron.Entries(), 1)
		jm.StopAll()
	})

	t.Run("bad schedule fails to start", func(t *testing.T) {
		jm := NewJobManager(new(MockAutoAdvancer), nil, "61 * * * * *", slog.Default())
		require.Error(t, jm.StartAll())
	})
}
