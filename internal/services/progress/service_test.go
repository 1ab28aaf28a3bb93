package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/progressjournal/internal/dependencies/mocks"
	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/services/records"
	"github.com/mcoot/progressjournal/internal/storage/memory"
	"github.com/mcoot/progressjournal/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	records *records.Service
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	clock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rec, err := records.New(memory.New(), clock, testutil.NopLogger(), records.Config{BcryptCost: bcrypt.MinCost})
	s.Require().NoError(err)
	s.records = rec
	s.random = mocks.NewMockRandom()
	s.service = New(rec, s.random, model.DefaultBadgeTargets())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCountsForNewUser() {
	counts, err := s.service.Counts(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.AchievementCounts{}, counts)
}

func (s *ServiceSuite) TestCountsAfterActivity() {
	s.Require().NoError(s.records.Append(s.ctx, "alice", &model.GoalEntry{Goal: "a"}))
	s.Require().NoError(s.records.Append(s.ctx, "alice", &model.GoalEntry{Goal: "b"}))
	s.Require().NoError(s.records.Append(s.ctx, "alice", &model.ReflectionEntry{Reflection: "r"}))
	s.Require().NoError(s.records.Append(s.ctx, "alice", &model.ChallengeEntry{Challenge: "c", Notes: "n"}))
	s.Require().NoError(s.records.CompleteGoal(s.ctx, "alice", 1))

	report, err := s.service.Report(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.AchievementCounts{GoalsCompleted: 1, ReflectionCount: 1, ChallengeCount: 1}, report.Counts)
	s.Equal(model.DefaultBadgeTargets(), report.Targets)
}

type errLoader struct{ err error }

func (l errLoader) LoadLog(ctx context.Context, username string) (*model.ActivityLog, error) {
	return nil, l.err
}

func (s *ServiceSuite) TestCountsPropagatesLoadError() {
	loadErr := errors.New("boom")
	svc := New(errLoader{err: loadErr}, s.random, model.DefaultBadgeTargets())

	_, err := svc.Counts(s.ctx, "alice")
	s.ErrorIs(err, loadErr)
}

func (s *ServiceSuite) TestChallengesReturnsCopy() {
	list := s.service.Challenges()
	s.Len(list, 5)
	list[0] = "changed"
	s.NotEqual("changed", model.SuggestedChallenges[0])
}

func (s *ServiceSuite) TestFeaturedChallenge() {
	s.random.QueueIntn(3)
	s.Equal(model.SuggestedChallenges[3], s.service.FeaturedChallenge())
}

// gatedLoader blocks every load until release is closed
type gatedLoader struct {
	started chan struct{}
	release chan struct{}

	mu      sync.Mutex
	loads   int
	ctxErrs []error
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (l *gatedLoader) LoadLog(ctx context.Context, username string) (*model.ActivityLog, error) {
	l.mu.Lock()
	l.loads++
	l.mu.Unlock()
	l.started <- struct{}{}

	<-l.release

	l.mu.Lock()
	l.ctxErrs = append(l.ctxErrs, ctx.Err())
	l.mu.Unlock()

	log := model.NewActivityLog()
	log.Reflections = append(log.Reflections, model.ReflectionEntry{Reflection: "r"})
	return log, nil
}

func (s *ServiceSuite) waitStarted(l *gatedLoader) {
	select {
	case <-l.started:
	case <-time.After(5 * time.Second):
		s.FailNow("load did not start")
	}
}

func (s *ServiceSuite) TestCancelledCallerDoesNotFailSharedLoad() {
	loader := newGatedLoader()
	svc := New(loader, s.random, model.DefaultBadgeTargets())

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Counts(ctxA, "alice")
		errA <- err
	}()
	s.waitStarted(loader)

	type result struct {
		counts model.AchievementCounts
		err    error
	}
	resB := make(chan result, 1)
	go func() {
		counts, err := svc.Counts(context.Background(), "alice")
		resB <- result{counts, err}
	}()

	cancelA()
	s.ErrorIs(<-errA, context.Canceled)

	close(loader.release)
	res := <-resB
	s.Require().NoError(res.err)
	s.Equal(1, res.counts.ReflectionCount)

	loader.mu.Lock()
	defer loader.mu.Unlock()
	for _, err := range loader.ctxErrs {
		s.NoError(err)
	}
}

func (s *ServiceSuite) TestForgetStartsFreshLoad() {
	loader := newGatedLoader()
	svc := New(loader, s.random, model.DefaultBadgeTargets())

	done := make(chan error, 2)
	go func() {
		_, err := svc.Counts(s.ctx, "alice")
		done <- err
	}()
	s.waitStarted(loader)

	svc.Forget("alice")

	go func() {
		_, err := svc.Counts(s.ctx, "alice")
		done <- err
	}()
	// A second load starts instead of joining the first
	s.waitStarted(loader)

	close(loader.release)
	s.NoError(<-done)
	s.NoError(<-done)

	loader.mu.Lock()
	defer loader.mu.Unlock()
	s.Equal(2, loader.loads)
}

func (s *ServiceSuite) TestCountsSeeOwnWriteWhenWired() {
	s.records.OnWrite(s.service.Forget)

	s.Require().NoError(s.records.Append(s.ctx, "alice", &model.ReflectionEntry{Reflection: "first"}))
	counts, err := s.service.Counts(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, counts.ReflectionCount)

	s.Require().NoError(s.records.Append(s.ctx, "alice", &model.ReflectionEntry{Reflection: "second"}))
	counts, err = s.service.Counts(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(2, counts.ReflectionCount)
}
