// Package persistence adapts the key-value backends to the domain repository
// contracts. Every repository stores its whole collection as one JSON document
// and rewrites it on change; with a single writer this is simpler and no less
// correct than row-level storage.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/focus"
	"github.com/edutrack-hub/edutrack/internal/domain/planner"
	"github.com/edutrack-hub/edutrack/internal/domain/profile"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/kv"
	"github.com/edutrack-hub/edutrack/pkg/timeutil"
)

// Stores bundles every repository over one backend.
type Stores struct {
	Subjects   *SubjectStore
	Timetable  *TimetableStore
	Attendance *AttendanceStore
	Tasks      *TaskStore
	Topics     *TopicStore
	FocusLogs  *FocusLogStore
	Profile    *ProfileStore
	Plans      *PlanStore
}

// NewStores wires all repositories onto the given backend.
func NewStores(store kv.Store) *Stores {
	return &Stores{
		Subjects:   &SubjectStore{kv: store},
		Timetable:  &TimetableStore{kv: store},
		Attendance: &AttendanceStore{kv: store},
		Tasks:      &TaskStore{kv: store},
		Topics:     &TopicStore{kv: store},
		FocusLogs:  &FocusLogStore{kv: store},
		Profile:    &ProfileStore{kv: store},
		Plans:      &PlanStore{kv: store},
	}
}

// loadList reads a collection document, treating a missing key as empty.
func loadList[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	var items []T
	if err := store.Get(ctx, key, &items); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load %s: %v", shared.ErrStorage, key, err)
	}
	return items, nil
}

// saveList rewrites a collection document.
func saveList[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	if err := store.Set(ctx, key, items); err != nil {
		return fmt.Errorf("%w: save %s: %v", shared.ErrStorage, key, err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// SubjectStore implements subject.Repository.
type SubjectStore struct {
	kv kv.Store
}

func (s *SubjectStore) List(ctx context.Context) ([]*subject.Subject, error) {
	return loadList[*subject.Subject](ctx, s.kv, kv.KeySubjects)
}

func (s *SubjectStore) GetByID(ctx context.Context, id shared.ID) (*subject.Subject, error) {
	subjects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, sub := range subjects {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, shared.ErrSubjectNotFound
}

func (s *SubjectStore) Save(ctx context.Context, sub *subject.Subject) error {
	subjects, err := s.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range subjects {
		if subjects[i].ID == sub.ID {
			subjects[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		subjects = append(subjects, sub)
	}
	return saveList(ctx, s.kv, kv.KeySubjects, subjects)
}

func (s *SubjectStore) Delete(ctx context.Context, id shared.ID) error {
	subjects, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := subjects[:0]
	for _, sub := range subjects {
		if sub.ID != id {
			kept = append(kept, sub)
		}
	}
	return saveList(ctx, s.kv, kv.KeySubjects, kept)
}

// ══════════════════════════════════════════════════════════════════════════════
// TIMETABLE
// ══════════════════════════════════════════════════════════════════════════════

// TimetableStore implements subject.TimetableRepository.
type TimetableStore struct {
	kv kv.Store
}

func (s *TimetableStore) List(ctx context.Context) ([]subject.TimetableEntry, error) {
	return loadList[subject.TimetableEntry](ctx, s.kv, kv.KeyTimetable)
}

func (s *TimetableStore) Save(ctx context.Context, e subject.TimetableEntry) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}
	return saveList(ctx, s.kv, kv.KeyTimetable, entries)
}

func (s *TimetableStore) Delete(ctx context.Context, id shared.ID) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return saveList(ctx, s.kv, kv.KeyTimetable, kept)
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE
// ══════════════════════════════════════════════════════════════════════════════

// AttendanceStore implements attendance.Repository.
type AttendanceStore struct {
	kv kv.Store
}

func (s *AttendanceStore) List(ctx context.Context) ([]*attendance.DailyAttendance, error) {
	return loadList[*attendance.DailyAttendance](ctx, s.kv, kv.KeyAttendance)
}

func (s *AttendanceStore) GetByDate(ctx context.Context, date time.Time) (*attendance.DailyAttendance, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if timeutil.IsSameDay(r.Date, date) {
			return r, nil
		}
	}
	return nil, shared.ErrAttendanceNotFound
}

func (s *AttendanceStore) Save(ctx context.Context, record *attendance.DailyAttendance) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range records {
		if timeutil.IsSameDay(records[i].Date, record.Date) {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	return saveList(ctx, s.kv, kv.KeyAttendance, records)
}

// ══════════════════════════════════════════════════════════════════════════════
// TASKS
// ══════════════════════════════════════════════════════════════════════════════

// TaskStore implements task.Repository.
type TaskStore struct {
	kv kv.Store
}

func (s *TaskStore) List(ctx context.Context) ([]*task.StudyTask, error) {
	return loadList[*task.StudyTask](ctx, s.kv, kv.KeyTasks)
}

func (s *TaskStore) GetByID(ctx context.Context, id shared.ID) (*task.StudyTask, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, shared.ErrTaskNotFound
}

func (s *TaskStore) Save(ctx context.Context, t *task.StudyTask) error {
	tasks, err := s.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		tasks = append(tasks, t)
	}
	return saveList(ctx, s.kv, kv.KeyTasks, tasks)
}

func (s *TaskStore) Delete(ctx context.Context, id shared.ID) error {
	tasks, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return saveList(ctx, s.kv, kv.KeyTasks, kept)
}

// ══════════════════════════════════════════════════════════════════════════════
// TOPICS
// ══════════════════════════════════════════════════════════════════════════════

// TopicStore implements topic.Repository.
type TopicStore struct {
	kv kv.Store
}

func (s *TopicStore) List(ctx context.Context) ([]*topic.Topic, error) {
	return loadList[*topic.Topic](ctx, s.kv, kv.KeyTopics)
}

func (s *TopicStore) GetByID(ctx context.Context, id shared.ID) (*topic.Topic, error) {
	topics, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range topics {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, shared.ErrTopicNotFound
}

func (s *TopicStore) Save(ctx context.Context, t *topic.Topic) error {
	topics, err := s.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range topics {
		if topics[i].ID == t.ID {
			topics[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		topics = append(topics, t)
	}
	return saveList(ctx, s.kv, kv.KeyTopics, topics)
}

func (s *TopicStore) Delete(ctx context.Context, id shared.ID) error {
	topics, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := topics[:0]
	for _, t := range topics {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return saveList(ctx, s.kv, kv.KeyTopics, kept)
}

// ══════════════════════════════════════════════════════════════════════════════
// FOCUS LOGS
// ══════════════════════════════════════════════════════════════════════════════

// FocusLogStore implements focus.Repository.
type FocusLogStore struct {
	kv kv.Store
}

func (s *FocusLogStore) List(ctx context.Context) ([]*focus.FocusLog, error) {
	return loadList[*focus.FocusLog](ctx, s.kv, kv.KeyFocusLogs)
}

func (s *FocusLogStore) Append(ctx context.Context, log *focus.FocusLog) error {
	logs, err := s.List(ctx)
	if err != nil {
		return err
	}
	logs = append(logs, log)
	return saveList(ctx, s.kv, kv.KeyFocusLogs, logs)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE
// ══════════════════════════════════════════════════════════════════════════════

// ProfileStore implements profile.Repository. The profile is a single
// document, not a collection.
type ProfileStore struct {
	kv kv.Store
}

func (s *ProfileStore) Get(ctx context.Context) (*profile.UserProfile, error) {
	var p profile.UserProfile
	if err := s.kv.Get(ctx, kv.KeyProfile, &p); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, shared.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: load %s: %v", shared.ErrStorage, kv.KeyProfile, err)
	}
	return &p, nil
}

func (s *ProfileStore) Save(ctx context.Context, p *profile.UserProfile) error {
	if err := s.kv.Set(ctx, kv.KeyProfile, p); err != nil {
		return fmt.Errorf("%w: save %s: %v", shared.ErrStorage, kv.KeyProfile, err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// WEEKLY PLANS
// ══════════════════════════════════════════════════════════════════════════════

// PlanStore implements planner.Repository. The list is append-only and
// duplicates for the same week are allowed.
type PlanStore struct {
	kv kv.Store
}

func (s *PlanStore) List(ctx context.Context) ([]*planner.WeeklyPlan, error) {
	return loadList[*planner.WeeklyPlan](ctx, s.kv, kv.KeyPlans)
}

func (s *PlanStore) Append(ctx context.Context, p *planner.WeeklyPlan) error {
	plans, err := s.List(ctx)
	if err != nil {
		return err
	}
	plans = append(plans, p)
	return saveList(ctx, s.kv, kv.KeyPlans, plans)
}

func (s *PlanStore) GetByWeekOf(ctx context.Context, weekOf string) (*planner.WeeklyPlan, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if p.WeekOf == weekOf {
			return p, nil
		}
	}
	return nil, shared.ErrPlanNotFound
}
