// Package domaintest provides hand-rolled doubles for the domain ports,
// used by the command-layer and album-skip tests.
package domaintest

import (
	"context"
	"sync"
	"time"

	"github.com/keytune/keytune/internal/domain"
)

// Str returns a pointer to s, for building Track literals in tests
func Str(s string) *string {
	return &s
}

// TrackRead scripts one CurrentTrack result
type TrackRead struct {
	Track domain.Track
	Err   error
}

// FakeBackend is a scriptable domain.Backend that counts every call, so
// tests can assert exactly which methods a command touched.
type FakeBackend struct {
	mu sync.Mutex

	// RunningValue is returned by Running
	RunningValue bool

	// VolumeValue and VolumeErr drive Volume
	VolumeValue int
	VolumeErr   error

	// SetVolumeErr drives SetVolume
	SetVolumeErr error

	// PlayPauseErr and PreviousErr drive those transport methods
	PlayPauseErr error
	PreviousErr  error

	// NextErrs is consumed one entry per Next call; once the script runs
	// out the last entry repeats. Empty means Next always succeeds.
	NextErrs []error
	nextIdx  int

	// TrackReads is consumed one entry per CurrentTrack call; once the
	// script runs out the last entry repeats. Empty means every read
	// yields an all-nil Track and no error.
	TrackReads []TrackRead
	trackIdx   int

	// Call counters, one per Backend method
	RunningCalls   int
	PlayPauseCalls int
	NextCalls      int
	PreviousCalls  int
	VolumeCalls    int
	SetVolumeCalls int
	TrackCalls     int

	// SetVolumeLevels records every level passed to SetVolume
	SetVolumeLevels []int
}

var _ domain.Backend = (*FakeBackend)(nil)

// Name implements domain.Backend
func (f *FakeBackend) Name() string {
	return "fake"
}

// Running implements domain.Backend
func (f *FakeBackend) Running(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RunningCalls++
	return f.RunningValue
}

// PlayPause implements domain.Backend
func (f *FakeBackend) PlayPause(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PlayPauseCalls++
	return f.PlayPauseErr
}

// Next implements domain.Backend
func (f *FakeBackend) Next(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.NextCalls++
	if len(f.NextErrs) == 0 {
		return nil
	}
	err := f.NextErrs[f.nextIdx]
	if f.nextIdx < len(f.NextErrs)-1 {
		f.nextIdx++
	}
	return err
}

// Previous implements domain.Backend
func (f *FakeBackend) Previous(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PreviousCalls++
	return f.PreviousErr
}

// Volume implements domain.Backend
func (f *FakeBackend) Volume(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VolumeCalls++
	return f.VolumeValue, f.VolumeErr
}

// SetVolume implements domain.Backend
func (f *FakeBackend) SetVolume(_ context.Context, level int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetVolumeCalls++
	f.SetVolumeLevels = append(f.SetVolumeLevels, level)
	return f.SetVolumeErr
}

// CurrentTrack implements domain.Backend
func (f *FakeBackend) CurrentTrack(context.Context) (domain.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TrackCalls++
	if len(f.TrackReads) == 0 {
		return domain.Track{}, nil
	}
	read := f.TrackReads[f.trackIdx]
	if f.trackIdx < len(f.TrackReads)-1 {
		f.trackIdx++
	}
	return read.Track, read.Err
}

// Counts returns a snapshot of all call counters keyed by method name
func (f *FakeBackend) Counts() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return map[string]int{
		"Running":      f.RunningCalls,
		"PlayPause":    f.PlayPauseCalls,
		"Next":         f.NextCalls,
		"Previous":     f.PreviousCalls,
		"Volume":       f.VolumeCalls,
		"SetVolume":    f.SetVolumeCalls,
		"CurrentTrack": f.TrackCalls,
	}
}

// RecordingNotifier captures notifications for inspection
type RecordingNotifier struct {
	mu sync.Mutex

	// Err, when set, is returned by every Notify call
	Err error

	sent []domain.Notification
}

var _ domain.Notifier = (*RecordingNotifier)(nil)

// Notify implements domain.Notifier
func (n *RecordingNotifier) Notify(_ context.Context, note domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.sent = append(n.sent, note)
	return nil
}

// Sent returns a copy of the notifications recorded so far
func (n *RecordingNotifier) Sent() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Notification, len(n.sent))
	copy(out, n.sent)
	return out
}

// ManualScheduler queues callbacks and runs them only when the test says
// so, making timer-driven code deterministic.
type ManualScheduler struct {
	mu     sync.Mutex
	queue  []func()
	delays []time.Duration
}

var _ domain.Scheduler = (*ManualScheduler)(nil)

// AfterFunc implements domain.Scheduler
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, fn)
	s.delays = append(s.delays, d)
}

// Pending returns how many callbacks are waiting to fire
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Fire runs the oldest pending callback, reporting whether one existed
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return false
	}
	fn := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()
	fn()
	return true
}

// FireAll keeps firing until nothing is pending, returning how many
// callbacks ran. Safe on self-rescheduling loops that carry a budget.
func (s *ManualScheduler) FireAll() int {
	n := 0
	for s.Fire() {
		n++
	}
	return n
}

// Delays returns the delay of every AfterFunc call seen so far
func (s *ManualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)
	return out
}
