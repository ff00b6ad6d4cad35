package daemon

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/albumskip"
	"github.com/keytune/keytune/internal/config"
	"github.com/keytune/keytune/internal/control"
	"github.com/keytune/keytune/internal/domain/domaintest"
	"github.com/keytune/keytune/internal/hotkeys"
	"github.com/keytune/keytune/internal/trigger"
)

func newTestDaemon(t *testing.T, backend *domaintest.FakeBackend, socket string, bindings hotkeys.Bindings) *Daemon {
	t.Helper()

	logger := zap.NewNop()
	settings := config.NewSettings(config.Default())
	notifier := &domaintest.RecordingNotifier{}
	scheduler := &domaintest.ManualScheduler{}

	volume := control.NewVolumeController(backend, notifier, settings, logger)
	skipper := albumskip.New(backend, notifier, scheduler, settings, logger)
	dispatcher := control.NewDispatcher(backend, volume, skipper, notifier, settings, nil, logger)
	server := trigger.NewServer(dispatcher, socket, logger)

	return New(logger, backend, server, bindings)
}

func TestStartBringsUpTriggerSocket(t *testing.T) {
	backend := &domaintest.FakeBackend{RunningValue: true}
	socket := filepath.Join(t.TempDir(), "keytune.sock")

	bindings, err := hotkeys.FromConfig(map[string]string{
		"togglePlayPause": "ctrl+alt+p",
		"nextTrack":       "ctrl+alt+n",
	})
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}

	d := newTestDaemon(t, backend, socket, bindings)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatalf("trigger socket is not accepting connections: %v", err)
	}
	conn.Close()

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	if _, err := net.Dial("unix", socket); err == nil {
		t.Error("trigger socket still accepts connections after Stop")
	}
}

func TestStartToleratesStoppedPlayer(t *testing.T) {
	backend := &domaintest.FakeBackend{RunningValue: false}
	socket := filepath.Join(t.TempDir(), "keytune.sock")

	d := newTestDaemon(t, backend, socket, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start should tolerate a stopped player, got: %v", err)
	}
	defer d.Stop(context.Background())

	if backend.RunningCalls != 1 {
		t.Errorf("Running probed %d times, want 1", backend.RunningCalls)
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatalf("trigger socket is not accepting connections: %v", err)
	}
	conn.Close()
}

func TestStartFailsWhenSocketPathIsUnusable(t *testing.T) {
	backend := &domaintest.FakeBackend{RunningValue: true}
	socket := filepath.Join(t.TempDir(), "no", "such", "dir", "keytune.sock")

	d := newTestDaemon(t, backend, socket, nil)

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("Start succeeded with an unusable socket path")
	}
}
