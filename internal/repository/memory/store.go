// Package memory is an in-process implementation of the repository interfaces,
// used by tests and by the server when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/repository"
)

type planKey struct{ userID, planID string }

type weekDoc struct {
	week    domain.TrainingWeek
	version int
	updated time.Time
	actor   string
}

type planDoc struct {
	weeks     []domain.TrainingWeek
	version   int
	updated   time.Time
	changelog []domain.AuditRecord
}

// Store keeps plans and profiles in memory. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	now      func() time.Time
	weeks    map[string]map[string]*weekDoc // userID -> weekID
	plans    map[planKey]*planDoc
	profiles map[string]domain.AthleteProfile
}

func New() *Store {
	return &Store{
		now:      time.Now,
		weeks:    make(map[string]map[string]*weekDoc),
		plans:    make(map[planKey]*planDoc),
		profiles: make(map[string]domain.AthleteProfile),
	}
}

var (
	_ repository.PlanRepository    = (*Store)(nil)
	_ repository.ProfileRepository = (*Store)(nil)
)

func (s *Store) GetPlan(_ context.Context, userID, planID string) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.IsCurrentPlan(planID) {
		docs := s.weeks[userID]
		if len(docs) == 0 {
			return nil, repository.ErrNotFound
		}
		plan := &domain.Plan{UserID: userID, PlanID: planID}
		for _, d := range docs {
			plan.Weeks = append(plan.Weeks, d.week.Clone())
			plan.Version = max(plan.Version, d.version)
			if d.updated.After(plan.UpdatedAt) {
				plan.UpdatedAt = d.updated
			}
		}
		sort.Slice(plan.Weeks, func(i, j int) bool { return plan.Weeks[i].Week < plan.Weeks[j].Week })
		return plan, nil
	}

	d, ok := s.plans[planKey{userID, planID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.Plan{
		UserID:    userID,
		PlanID:    planID,
		Weeks:     domain.CloneWeeks(d.weeks),
		Version:   d.version,
		UpdatedAt: d.updated,
	}, nil
}

func (s *Store) SavePlan(_ context.Context, userID, planID string, weeks []domain.TrainingWeek, expectedVersion int, audit domain.AuditRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()

	if domain.IsCurrentPlan(planID) {
		docs := s.weeks[userID]
		if docs == nil {
			docs = make(map[string]*weekDoc)
			s.weeks[userID] = docs
		}
		for _, w := range weeks {
			d, ok := docs[w.ID]
			if !ok {
				d = &weekDoc{}
				docs[w.ID] = d
			}
			d.week = w.Clone()
			d.version++
			d.updated = now
			d.actor = audit.Actor
		}
		return expectedVersion + 1, nil
	}

	key := planKey{userID, planID}
	d, ok := s.plans[key]
	actual := 0
	if ok {
		actual = d.version
	}
	if actual != expectedVersion {
		return 0, &repository.VersionConflictError{PlanID: planID, Expected: expectedVersion, Actual: actual}
	}
	if !ok {
		d = &planDoc{}
		s.plans[key] = d
	}
	d.weeks = domain.CloneWeeks(weeks)
	d.version = expectedVersion + 1
	d.updated = now
	d.changelog = append(d.changelog, audit)
	return d.version, nil
}

func (s *Store) Changelog(_ context.Context, userID, planID string) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.plans[planKey{userID, planID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]domain.AuditRecord(nil), d.changelog...), nil
}

func (s *Store) PruneWeeks(_ context.Context, userID string, lastWeek int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.weeks[userID] {
		if d.week.Week > lastWeek {
			delete(s.weeks[userID], id)
		}
	}
	return nil
}

func (s *Store) GetProfile(_ context.Context, userID string) (*domain.AthleteProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.TrainingDays = append([]domain.Weekday(nil), p.TrainingDays...)
	return &p, nil
}

func (s *Store) UpsertProfile(_ context.Context, profile *domain.AthleteProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *profile
	p.TrainingDays = append([]domain.Weekday(nil), profile.TrainingDays...)
	p.UpdatedAt = s.now().UTC()
	s.profiles[p.UserID] = p
	return nil
}
