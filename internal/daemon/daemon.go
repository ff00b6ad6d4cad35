// Package daemon ties keytune's long-running pieces to one lifecycle:
// the trigger socket comes up on start and is torn down on stop.
package daemon

import (
	"context"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/domain"
	"github.com/keytune/keytune/internal/hotkeys"
	"github.com/keytune/keytune/internal/trigger"
)

// Daemon is the runtime shell around the trigger server. It owns no
// command logic; commands live in the dispatcher behind the server.
type Daemon struct {
	logger   *zap.Logger
	backend  domain.Backend
	server   *trigger.Server
	bindings hotkeys.Bindings
}

// New creates the daemon shell.
func New(
	logger *zap.Logger,
	backend domain.Backend,
	server *trigger.Server,
	bindings hotkeys.Bindings,
) *Daemon {
	return &Daemon{
		logger:   logger,
		backend:  backend,
		server:   server,
		bindings: bindings,
	}
}

// Start brings up the trigger socket and returns immediately; command
// handling runs on the server's accept loop. A stopped player is not a
// startup failure, commands fail politely until it appears.
func (d *Daemon) Start(ctx context.Context) error {
	d.logger.Info("Daemon starting...",
		zap.String("backend", d.backend.Name()),
		zap.String("socket", d.server.SocketPath()))

	if !d.backend.Running(ctx) {
		d.logger.Warn("Player is not running, commands will fail until it starts")
	}

	if err := d.server.Start(); err != nil {
		return err
	}

	for _, action := range domain.Actions() {
		chord, ok := d.bindings[action]
		if !ok {
			continue
		}
		d.logger.Info("Binding active",
			zap.String("action", string(action)),
			zap.String("chord", chord.String()))
	}

	if len(d.bindings) == 0 {
		d.logger.Info("No hotkey bindings configured, socket triggers only")
	}

	return nil
}

// Stop tears down the trigger socket.
func (d *Daemon) Stop(_ context.Context) error {
	d.logger.Info("Daemon stopping...")
	return d.server.Stop()
}
