package expiry

import (
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/chair/internal/common/clock"
	"github.com/stretchr/testify/suite"
)

type SchedulerTestSuite struct {
	suite.Suite
	clock     *clock.FakeClock
	scheduler *Scheduler
}

func (s *SchedulerTestSuite) SetupTest() {
	s.clock = clock.NewFake(time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC))

	scheduler, err := New(&Config{Clock: s.clock})
	s.Require().NoError(err)
	s.scheduler = scheduler
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)
}

func (s *SchedulerTestSuite) TestFires() {
	fired := 0
	s.scheduler.Schedule("session-1", 30*time.Minute, func() { fired++ })
	s.True(s.scheduler.Pending("session-1"))

	s.clock.Advance(29 * time.Minute)
	s.Equal(0, fired)

	s.clock.Advance(time.Minute)
	s.Equal(1, fired)
	s.False(s.scheduler.Pending("session-1"))
	s.Equal(0, s.scheduler.Len())
}

func (s *SchedulerTestSuite) TestCancel() {
	fired := false
	s.scheduler.Schedule("session-1", time.Minute, func() { fired = true })

	s.True(s.scheduler.Cancel("session-1"))
	s.False(s.scheduler.Cancel("session-1"))

	s.clock.Advance(time.Hour)
	s.False(fired)
	s.Equal(0, s.clock.Pending())
}

func (s *SchedulerTestSuite) TestCancelAfterFireIsNoop() {
	s.scheduler.Schedule("session-1", time.Minute, func() {})
	s.clock.Advance(time.Minute)

	s.False(s.scheduler.Cancel("session-1"))
}

func (s *SchedulerTestSuite) TestCallbackMayCancelItself() {
	// Firing routes through the same teardown that cancels the timer
	cancelled := true
	s.scheduler.Schedule("session-1", time.Minute, func() {
		cancelled = s.scheduler.Cancel("session-1")
	})

	s.clock.Advance(time.Minute)
	s.False(cancelled)
}

func (s *SchedulerTestSuite) TestScheduleReplacesExisting() {
	var fired []string
	s.scheduler.Schedule("session-1", time.Minute, func() { fired = append(fired, "first") })
	s.scheduler.Schedule("session-1", 2*time.Minute, func() { fired = append(fired, "second") })

	s.Equal(1, s.scheduler.Len())
	s.Equal(1, s.clock.Pending())

	s.clock.Advance(5 * time.Minute)
	s.Equal([]string{"second"}, fired)
}

func (s *SchedulerTestSuite) TestNonPositiveDelayFiresImmediately() {
	fired := false
	s.scheduler.Schedule("session-1", 0, func() { fired = true })

	s.True(fired)
	s.False(s.scheduler.Pending("session-1"))
}

func (s *SchedulerTestSuite) TestIndependentSessions() {
	var fired []string
	s.scheduler.Schedule("session-1", time.Minute, func() { fired = append(fired, "session-1") })
	s.scheduler.Schedule("session-2", 2*time.Minute, func() { fired = append(fired, "session-2") })

	s.scheduler.Cancel("session-1")
	s.clock.Advance(5 * time.Minute)

	s.Equal([]string{"session-2"}, fired)
}

func (s *SchedulerTestSuite) TestStop() {
	fired := false
	s.scheduler.Schedule("session-1", time.Minute, func() { fired = true })
	s.scheduler.Schedule("session-2", time.Minute, func() { fired = true })

	s.scheduler.Stop()
	s.clock.Advance(time.Hour)

	s.False(fired)
	s.Equal(0, s.scheduler.Len())
}

func (s *SchedulerTestSuite) TestRealClockConcurrentCancel() {
	scheduler, err := New(&Config{Clock: clock.New()})
	s.Require().NoError(err)

	var mu sync.Mutex
	fired := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scheduler.Schedule("session-1", time.Millisecond, func() {
				mu.Lock()
				fired++
				mu.Unlock()
			})
			scheduler.Cancel("session-1")
		}()
	}
	wg.Wait()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	s.LessOrEqual(fired, 20)
	s.Equal(0, scheduler.Len())
}
