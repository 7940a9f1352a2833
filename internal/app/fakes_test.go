package app

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"punchclock/internal/domain/holiday"
	"punchclock/internal/domain/portal"
	"punchclock/internal/domain/punch"

	"cloud.google.com/go/civil"
)

// memPunches is an in-memory punch.Repository with the same write-once rules
// as the SQL one.
type memPunches struct {
	records   []*punch.Record
	nextID    int64
	errOnAll  error // Returned by every call when set
	errWrite  error // Returned by RecordPunch when set
	errInsert error // Returned by InsertDay when set
	inserts   int
	unbounded []string // Calls made without a deadline
}

func (m *memPunches) bound(ctx context.Context, op string) {
	if _, ok := ctx.Deadline(); !ok {
		m.unbounded = append(m.unbounded, op)
	}
}

func (m *memPunches) MostRecent(ctx context.Context) (*punch.Record, error) {
	m.bound(ctx, "MostRecent")
	if m.errOnAll != nil {
		return nil, m.errOnAll
	}
	var latest *punch.Record
	for _, r := range m.records {
		if latest == nil || r.Day.After(latest.Day) {
			latest = r
		}
	}
	if latest == nil {
		return nil, punch.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memPunches) InsertDay(ctx context.Context, day civil.Date) (int64, error) {
	m.bound(ctx, "InsertDay")
	if m.errOnAll != nil {
		return 0, m.errOnAll
	}
	if m.errInsert != nil {
		return 0, m.errInsert
	}
	for _, r := range m.records {
		if r.Day == day {
			return 0, punch.ErrDayExists
		}
	}
	m.nextID++
	m.inserts++
	m.records = append(m.records, &punch.Record{ID: m.nextID, Day: day})
	return m.nextID, nil
}

func (m *memPunches) RecordPunch(ctx context.Context, id int64, action punch.Action, at time.Time) error {
	m.bound(ctx, "RecordPunch")
	if m.errOnAll != nil {
		return m.errOnAll
	}
	if m.errWrite != nil {
		return m.errWrite
	}
	r := m.byID(id)
	if r == nil {
		return punch.ErrPunchRejected
	}
	if prev, ok := action.Previous(); ok {
		if _, done := r.Punched(prev); !done {
			return punch.ErrPunchRejected
		}
	}
	if !r.Set(action, at) {
		return punch.ErrPunchRejected
	}
	return nil
}

func (m *memPunches) SetWorkDay(ctx context.Context, id int64, value bool) error {
	m.bound(ctx, "SetWorkDay")
	if m.errOnAll != nil {
		return m.errOnAll
	}
	r := m.byID(id)
	if r == nil {
		return punch.ErrRecordNotFound
	}
	if r.IsWorkDay.Valid {
		return punch.ErrWorkDayAlreadySet
	}
	r.IsWorkDay = sql.NullBool{Bool: value, Valid: true}
	return nil
}

func (m *memPunches) byID(id int64) *punch.Record {
	for _, r := range m.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (m *memPunches) add(rec *punch.Record) *punch.Record {
	m.nextID++
	rec.ID = m.nextID
	m.records = append(m.records, rec)
	return rec
}

type memHolidays struct {
	days      map[civil.Date]bool
	err       error
	calls     int
	unbounded int // IsHoliday calls made without a deadline
}

func (m *memHolidays) IsHoliday(ctx context.Context, day civil.Date) (bool, error) {
	m.calls++
	if _, ok := ctx.Deadline(); !ok {
		m.unbounded++
	}
	if m.err != nil {
		return false, m.err
	}
	return m.days[day], nil
}

func (m *memHolidays) Add(_ context.Context, h *holiday.Holiday) error {
	if m.err != nil {
		return m.err
	}
	if m.days == nil {
		m.days = map[civil.Date]bool{}
	}
	if m.days[h.Date()] {
		return holiday.ErrHolidayExists
	}
	m.days[h.Date()] = true
	h.ID = int64(len(m.days))
	return nil
}

func (m *memHolidays) Remove(_ context.Context, day civil.Date) error {
	if m.err != nil {
		return m.err
	}
	if !m.days[day] {
		return holiday.ErrHolidayNotFound
	}
	delete(m.days, day)
	return nil
}

func (m *memHolidays) List(_ context.Context, year int) ([]*holiday.Holiday, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*holiday.Holiday
	for d := range m.days {
		if year == 0 || d.Year == year {
			out = append(out, holiday.FromDate(d))
		}
	}
	return out, nil
}

type fakeOracle struct {
	onLeave bool
	err     error
	calls   int
}

func (f *fakeOracle) IsLeaveApproved(context.Context, civil.Date) (bool, error) {
	f.calls++
	return f.onLeave, f.err
}

type fakeExecutor struct {
	err       error
	performed []punch.Action
}

func (f *fakeExecutor) Perform(_ context.Context, action punch.Action) error {
	f.performed = append(f.performed, action)
	return f.err
}

type recordingNotifier struct {
	mu       sync.Mutex
	alerts   []string
	warnings []string
	infos    []string
}

func (n *recordingNotifier) Alert(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}

func (n *recordingNotifier) Warning(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, message)
}

func (n *recordingNotifier) Info(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, message)
}

// fakeDashboard records clicks; missing names controls that are not found.
// A blocking dashboard hangs until its context ends.
type fakeDashboard struct {
	clicked  []string
	missing  map[string]bool
	onLeave  bool
	blocking bool
}

func (d *fakeDashboard) click(ctx context.Context, name string) error {
	if d.blocking {
		<-ctx.Done()
		return ctx.Err()
	}
	if d.missing[name] {
		return portal.ErrElementNotFound
	}
	d.clicked = append(d.clicked, name)
	return nil
}

func (d *fakeDashboard) ClockIn(ctx context.Context) error    { return d.click(ctx, "ClockIn") }
func (d *fakeDashboard) StartLunch(ctx context.Context) error { return d.click(ctx, "StartLunch") }
func (d *fakeDashboard) EndLunch(ctx context.Context) error   { return d.click(ctx, "EndLunch") }
func (d *fakeDashboard) ClockOut(ctx context.Context) error   { return d.click(ctx, "ClockOut") }

func (d *fakeDashboard) IsLeaveApproved(ctx context.Context, _ civil.Date) (bool, error) {
	if d.blocking {
		<-ctx.Done()
		return false, ctx.Err()
	}
	return d.onLeave, nil
}

type fakeQuestion struct {
	text      string
	answered  string
	dashboard *fakeDashboard
}

func (q *fakeQuestion) Question(context.Context) (string, error) { return q.text, nil }

func (q *fakeQuestion) Answer(_ context.Context, answer string) (portal.Dashboard, error) {
	q.answered = answer
	return q.dashboard, nil
}

type fakeSession struct {
	landing  *portal.Landing
	err      error
	logins   int
	blocking bool
}

func (s *fakeSession) Login(ctx context.Context) (*portal.Landing, error) {
	s.logins++
	if s.blocking {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.landing, s.err
}
