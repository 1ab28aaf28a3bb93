package progress

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/progressjournal/internal/dependencies/random"
	"github.com/mcoot/progressjournal/internal/model"
)

// LogLoader loads a user's activity log
type LogLoader interface {
	LoadLog(ctx context.Context, username string) (*model.ActivityLog, error)
}

// Report is a user's achievement counts together with the badge targets they are measured against
type Report struct {
	Counts  model.AchievementCounts `json:"counts"`
	Targets model.BadgeTargets      `json:"targets"`
}

// Service computes achievement progress for users
type Service struct {
	logs    LogLoader
	random  random.Random
	targets model.BadgeTargets
	sf      singleflight.Group
}

// New creates a new progress service
func New(logs LogLoader, random random.Random, targets model.BadgeTargets) *Service {
	return &Service{
		logs:    logs,
		random:  random,
		targets: targets,
	}
}

// Counts loads the user's log and aggregates it.
// Concurrent calls for the same user share one load; each caller still
// returns early when its own ctx is done.
func (s *Service) Counts(ctx context.Context, username string) (model.AchievementCounts, error) {
	loadCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(username, func() (interface{}, error) {
		log, err := s.logs.LoadLog(loadCtx, username)
		if err != nil {
			return nil, err
		}
		return AchievementCounts(log), nil
	})

	select {
	case <-ctx.Done():
		return model.AchievementCounts{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.AchievementCounts{}, res.Err
		}
		return res.Val.(model.AchievementCounts), nil
	}
}

// Forget drops any in-flight load for username so the next Counts call
// reads the log again. The record store calls it after every write.
func (s *Service) Forget(username string) {
	s.sf.Forget(username)
}

// Report returns the user's counts with the configured badge targets
func (s *Service) Report(ctx context.Context, username string) (*Report, error) {
	counts, err := s.Counts(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Report{Counts: counts, Targets: s.targets}, nil
}

// Challenges returns the suggested challenge catalogue
func (s *Service) Challenges() []string {
	out := make([]string, len(model.SuggestedChallenges))
	copy(out, model.SuggestedChallenges)
	return out
}

// FeaturedChallenge picks one suggested challenge at random
func (s *Service) FeaturedChallenge() string {
	return model.SuggestedChallenges[s.random.Intn(len(model.SuggestedChallenges))]
}
