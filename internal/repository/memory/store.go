package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/google/uuid"
)

var (
	_ employee.DirectoryReader   = (*Store)(nil)
	_ attendance.Reader          = (*Store)(nil)
	_ leave.Reader               = (*Store)(nil)
	_ adjustment.Reader          = adjustmentReader{}
	_ payroll.SnapshotRepository = (*Store)(nil)
)

type periodKey struct {
	employeeID string
	month      int
	year       int
}

// Store keeps the employee directory, the three ledgers and the payroll
// history in memory. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	employees   map[string]employee.EmploymentRecord
	attendances map[string][]attendance.Entry
	leaves      map[string][]leave.Entry
	adjustments map[string][]adjustment.Entry

	snapshots []payroll.Snapshot
	byID      map[string]int
	byPeriod  map[periodKey]int

	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the source of snapshot creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		employees:   make(map[string]employee.EmploymentRecord),
		attendances: make(map[string][]attendance.Entry),
		leaves:      make(map[string][]leave.Entry),
		adjustments: make(map[string][]adjustment.Entry),
		byID:        make(map[string]int),
		byPeriod:    make(map[periodKey]int),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ========== SEEDING ==========

// PutEmployee inserts or replaces an employment record.
func (s *Store) PutEmployee(rec employee.EmploymentRecord) error {
	if !rec.Status.Valid() {
		return &payroll.MalformedRowError{
			Source: "employees",
			RowID:  rec.EmployeeID,
			Err:    fmt.Errorf("unknown employment status %q", rec.Status),
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[rec.EmployeeID] = rec
	return nil
}

func (s *Store) AddAttendance(entries ...attendance.Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return &payroll.MalformedRowError{Source: "attendances", RowID: attendanceRowID(e), Err: err}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.attendances[e.EmployeeID] = append(s.attendances[e.EmployeeID], e)
	}
	return nil
}

// attendanceRowID names an attendance entry by its natural key, one row
// per employee and day.
func attendanceRowID(e attendance.Entry) string {
	return fmt.Sprintf("%s/%s", e.EmployeeID, e.Date.Format(time.DateOnly))
}

func (s *Store) AddLeave(entries ...leave.Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return &payroll.MalformedRowError{Source: "leave_requests", RowID: e.ID, Err: err}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.leaves[e.EmployeeID] = append(s.leaves[e.EmployeeID], e)
	}
	return nil
}

func (s *Store) AddAdjustments(entries ...adjustment.Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return &payroll.MalformedRowError{Source: "payroll_adjustments", RowID: e.ID, Err: err}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.adjustments[e.EmployeeID] = append(s.adjustments[e.EmployeeID], e)
	}
	return nil
}

// ========== READERS ==========

func (s *Store) GetEmploymentRecord(ctx context.Context, id string) (employee.EmploymentRecord, error) {
	if err := ctx.Err(); err != nil {
		return employee.EmploymentRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.employees[id]
	if !ok {
		return employee.EmploymentRecord{}, employee.ErrEmployeeNotFound
	}
	return rec, nil
}

func (s *Store) ListPayableEmployeeIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.employees))
	for id, rec := range s.employees {
		if !rec.IsTerminated() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start, end := payroll.MonthRange(month, year)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []attendance.Entry
	for _, e := range s.attendances[employeeID] {
		if inRange(e.Date, start, end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *Store) ListApprovedByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]leave.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []leave.Entry
	for _, e := range s.leaves[employeeID] {
		if e.IsApproved() && e.StartsIn(month, year) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Adjustments exposes the adjustment ledger. Store cannot implement both
// ListByEmployeeMonth signatures itself.
func (s *Store) Adjustments() adjustment.Reader {
	return adjustmentReader{s}
}

type adjustmentReader struct {
	s *Store
}

func (r adjustmentReader) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]adjustment.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start, end := payroll.MonthRange(month, year)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []adjustment.Entry
	for _, e := range r.s.adjustments[employeeID] {
		if inRange(e.Date, start, end) {
			result = append(result, e)
		}
	}
	return result, nil
}

// ========== SNAPSHOTS ==========

func (s *Store) Create(ctx context.Context, snapshot payroll.Snapshot) (payroll.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return payroll.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := periodKey{snapshot.EmployeeID, snapshot.Month, snapshot.Year}
	if _, exists := s.byPeriod[key]; exists {
		return payroll.Snapshot{}, payroll.ErrSnapshotExists
	}

	snapshot.ID = uuid.NewString()
	snapshot.CreatedAt = s.now().UTC()

	s.snapshots = append(s.snapshots, snapshot)
	idx := len(s.snapshots) - 1
	s.byID[snapshot.ID] = idx
	s.byPeriod[key] = idx

	return snapshot, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (payroll.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return payroll.Snapshot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return payroll.Snapshot{}, payroll.ErrSnapshotNotFound
	}
	return s.snapshots[idx], nil
}

// List orders newest period first, matching the Postgres adapter.
func (s *Store) List(ctx context.Context, filter payroll.SnapshotFilter) ([]payroll.Snapshot, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	matched := make([]payroll.Snapshot, 0)
	for _, snap := range s.snapshots {
		if filter.Matches(snap) {
			matched = append(matched, snap)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := int64(len(matched))
	page, limit := filter.Pagination()
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []payroll.Snapshot{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
