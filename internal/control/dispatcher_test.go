package control

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/albumskip"
	"github.com/keytune/keytune/internal/config"
	"github.com/keytune/keytune/internal/domain"
	"github.com/keytune/keytune/internal/domain/domaintest"
)

func newDispatcher(backend *domaintest.FakeBackend, icons IconResolver) (*Dispatcher, *domaintest.RecordingNotifier, *domaintest.ManualScheduler, *config.Settings) {
	settings := config.NewSettings(config.Default())
	notifier := &domaintest.RecordingNotifier{}
	sched := &domaintest.ManualScheduler{}
	logger := zap.NewNop()

	volume := NewVolumeController(backend, notifier, settings, logger)
	skipper := albumskip.New(backend, notifier, sched, settings, logger)
	d := NewDispatcher(backend, volume, skipper, notifier, settings, icons, logger)
	return d, notifier, sched, settings
}

type stubIcons struct {
	path    string
	err     error
	calls   int
	lastURL string
}

func (s *stubIcons) Icon(_ context.Context, artURL string) (string, error) {
	s.calls++
	s.lastURL = artURL
	return s.path, s.err
}

func TestEveryActionFailsFastWhenPlayerDown(t *testing.T) {
	for _, action := range domain.Actions() {
		t.Run(string(action), func(t *testing.T) {
			backend := &domaintest.FakeBackend{RunningValue: false}
			d, notifier, sched, _ := newDispatcher(backend, nil)

			err := d.Dispatch(context.Background(), action)
			if !errors.Is(err, domain.ErrPlayerNotRunning) {
				t.Fatalf("Dispatch(%s) error = %v, want ErrPlayerNotRunning", action, err)
			}

			// the liveness check must be the only backend interaction
			if backend.RunningCalls != 1 {
				t.Errorf("Running called %d times, want 1", backend.RunningCalls)
			}
			for method, n := range backend.Counts() {
				if method == "Running" {
					continue
				}
				if n != 0 {
					t.Errorf("%s called %d times on a dead player", method, n)
				}
			}
			if sched.Pending() != 0 {
				t.Errorf("%d skip probes scheduled on a dead player", sched.Pending())
			}
			if got := notifier.Sent(); len(got) != 0 {
				t.Errorf("unexpected notifications: %v", got)
			}
		})
	}
}

func TestTransportCommands(t *testing.T) {
	tests := []struct {
		action domain.Action
		calls  func(*domaintest.FakeBackend) int
	}{
		{domain.ActionTogglePlayPause, func(b *domaintest.FakeBackend) int { return b.PlayPauseCalls }},
		{domain.ActionNextTrack, func(b *domaintest.FakeBackend) int { return b.NextCalls }},
		{domain.ActionPreviousTrack, func(b *domaintest.FakeBackend) int { return b.PreviousCalls }},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			backend := &domaintest.FakeBackend{RunningValue: true}
			d, notifier, _, _ := newDispatcher(backend, nil)

			if err := d.Dispatch(context.Background(), tt.action); err != nil {
				t.Fatalf("Dispatch(%s) returned error: %v", tt.action, err)
			}
			if got := tt.calls(backend); got != 1 {
				t.Errorf("backend method called %d times, want 1", got)
			}
			// transport commands give no notification feedback
			if got := notifier.Sent(); len(got) != 0 {
				t.Errorf("unexpected notifications: %v", got)
			}
		})
	}
}

func TestTransportFailureIsReported(t *testing.T) {
	refused := errors.New("refused")
	backend := &domaintest.FakeBackend{RunningValue: true, PlayPauseErr: refused}
	d, _, _, _ := newDispatcher(backend, nil)

	err := d.TogglePlayPause(context.Background())
	if !errors.Is(err, refused) {
		t.Fatalf("TogglePlayPause error = %v, want wrapped %v", err, refused)
	}
}

func TestShowTrackNotifiesFormattedLine(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads: []domaintest.TrackRead{{
			Track: domain.Track{
				Name:   domaintest.Str("Paranoid Android"),
				Artist: domaintest.Str("Radiohead"),
				Album:  domaintest.Str("OK Computer"),
			},
		}},
	}
	d, notifier, _, _ := newDispatcher(backend, nil)

	line, err := d.ShowTrack(context.Background())
	if err != nil {
		t.Fatalf("ShowTrack returned error: %v", err)
	}
	want := "Paranoid Android - Radiohead [OK Computer]"
	if line != want {
		t.Errorf("ShowTrack = %q, want %q", line, want)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("got %d notifications, want 1", len(sent))
	}
	if sent[0].Title != "Now playing" || sent[0].Body != want {
		t.Errorf("notification = %+v", sent[0])
	}
	if sent[0].Duration != config.DefaultAlertDurationSeconds*time.Second {
		t.Errorf("notification duration = %v", sent[0].Duration)
	}
}

func TestShowTrackReadsLiveFormat(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads: []domaintest.TrackRead{{
			Track: domain.Track{Name: domaintest.Str("Song"), Artist: domaintest.Str("Artist")},
		}},
	}
	d, _, _, settings := newDispatcher(backend, nil)

	if err := settings.SetTrackFormat("{artist}: {name}"); err != nil {
		t.Fatalf("SetTrackFormat returned error: %v", err)
	}

	line, err := d.ShowTrack(context.Background())
	if err != nil {
		t.Fatalf("ShowTrack returned error: %v", err)
	}
	if line != "Artist: Song" {
		t.Errorf("ShowTrack = %q, want the updated format applied", line)
	}
}

func TestShowTrackNothingPlaying(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads:   []domaintest.TrackRead{{Track: domain.Track{Artist: domaintest.Str("Ghost")}}},
	}
	d, notifier, _, _ := newDispatcher(backend, nil)

	_, err := d.ShowTrack(context.Background())
	if !errors.Is(err, domain.ErrNoTrack) {
		t.Fatalf("ShowTrack error = %v, want ErrNoTrack", err)
	}

	sent := notifier.Sent()
	if len(sent) != 1 || sent[0].Title != "Nothing playing" {
		t.Errorf("notifications = %v, want a single Nothing playing alert", sent)
	}
}

func TestShowTrackReadFailure(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads:   []domaintest.TrackRead{{Err: errors.New("metadata gone")}},
	}
	d, notifier, _, _ := newDispatcher(backend, nil)

	_, err := d.ShowTrack(context.Background())
	if err == nil {
		t.Fatal("ShowTrack succeeded despite a failed read")
	}
	if got := notifier.Sent(); len(got) != 0 {
		t.Errorf("unexpected notifications: %v", got)
	}
}

func TestShowTrackResolvesArtworkIcon(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads: []domaintest.TrackRead{{
			Track: domain.Track{
				Name:   domaintest.Str("Song"),
				ArtURL: "https://img.example/cover.jpg",
			},
		}},
	}
	icons := &stubIcons{path: "/tmp/cover-thumb.jpg"}
	d, notifier, _, _ := newDispatcher(backend, icons)

	if _, err := d.ShowTrack(context.Background()); err != nil {
		t.Fatalf("ShowTrack returned error: %v", err)
	}

	if icons.calls != 1 || icons.lastURL != "https://img.example/cover.jpg" {
		t.Errorf("icon resolver saw %d calls, last URL %q", icons.calls, icons.lastURL)
	}
	sent := notifier.Sent()
	if len(sent) != 1 || sent[0].Icon != "/tmp/cover-thumb.jpg" {
		t.Errorf("notification icon = %q", sent[0].Icon)
	}
}

func TestShowTrackIgnoresIconFailure(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads: []domaintest.TrackRead{{
			Track: domain.Track{
				Name:   domaintest.Str("Song"),
				ArtURL: "https://img.example/cover.jpg",
			},
		}},
	}
	icons := &stubIcons{err: errors.New("fetch failed")}
	d, notifier, _, _ := newDispatcher(backend, icons)

	if _, err := d.ShowTrack(context.Background()); err != nil {
		t.Fatalf("ShowTrack returned error: %v", err)
	}
	sent := notifier.Sent()
	if len(sent) != 1 || sent[0].Icon != "" {
		t.Errorf("notification = %+v, want empty icon", sent[0])
	}
}

func TestShowTrackSkipsResolverWithoutArtwork(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads:   []domaintest.TrackRead{{Track: domain.Track{Name: domaintest.Str("Song")}}},
	}
	icons := &stubIcons{path: "/tmp/unused.jpg"}
	d, _, _, _ := newDispatcher(backend, icons)

	if _, err := d.ShowTrack(context.Background()); err != nil {
		t.Fatalf("ShowTrack returned error: %v", err)
	}
	if icons.calls != 0 {
		t.Errorf("icon resolver called %d times for a track without artwork", icons.calls)
	}
}

func TestSkipAlbumStartsSessionAndReturns(t *testing.T) {
	backend := &domaintest.FakeBackend{
		RunningValue: true,
		TrackReads:   []domaintest.TrackRead{{Track: domain.Track{Album: domaintest.Str("Currents")}}},
	}
	d, _, sched, _ := newDispatcher(backend, nil)

	if err := d.Dispatch(context.Background(), domain.ActionSkipAlbum); err != nil {
		t.Fatalf("Dispatch(skipAlbum) returned error: %v", err)
	}
	if backend.NextCalls != 1 {
		t.Errorf("Next called %d times, want the single starting advance", backend.NextCalls)
	}
	if sched.Pending() != 1 {
		t.Errorf("%d probes scheduled, want 1", sched.Pending())
	}
}

func TestVolumeActionsUseConfiguredStep(t *testing.T) {
	backend := &domaintest.FakeBackend{RunningValue: true, VolumeValue: 50}
	d, _, _, _ := newDispatcher(backend, nil)

	if err := d.Dispatch(context.Background(), domain.ActionVolumeUp); err != nil {
		t.Fatalf("Dispatch(volumeUp) returned error: %v", err)
	}
	if err := d.Dispatch(context.Background(), domain.ActionVolumeDown); err != nil {
		t.Fatalf("Dispatch(volumeDown) returned error: %v", err)
	}

	want := []int{50 + config.DefaultVolumeStep, 50 - config.DefaultVolumeStep}
	if len(backend.SetVolumeLevels) != 2 ||
		backend.SetVolumeLevels[0] != want[0] ||
		backend.SetVolumeLevels[1] != want[1] {
		t.Errorf("backend received %v, want %v", backend.SetVolumeLevels, want)
	}
}

func TestDispatchRejectsUnknownAction(t *testing.T) {
	backend := &domaintest.FakeBackend{RunningValue: true}
	d, _, _, _ := newDispatcher(backend, nil)

	err := d.Dispatch(context.Background(), domain.Action("danceParty"))
	if err == nil {
		t.Fatal("Dispatch accepted an unknown action")
	}
	if errors.Is(err, domain.ErrPlayerNotRunning) {
		t.Errorf("unknown action misreported as a liveness failure: %v", err)
	}
}
