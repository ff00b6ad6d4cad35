package trigger

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/control"
	"github.com/keytune/keytune/internal/domain"
)

// Server accepts trigger connections and routes each command through
// the dispatcher. Clients send one JSON request per line and receive
// one JSON response per line, so a connection can be held open by a
// hotkey daemon or opened per keypress by a script.
type Server struct {
	logger     *zap.Logger
	dispatcher *control.Dispatcher
	socketPath string

	mu       sync.Mutex
	listener net.Listener
	clients  map[net.Conn]struct{}
}

// NewServer creates a trigger server bound to socketPath.
func NewServer(dispatcher *control.Dispatcher, socketPath string, logger *zap.Logger) *Server {
	return &Server{
		logger:     logger,
		dispatcher: dispatcher,
		socketPath: socketPath,
		clients:    make(map[net.Conn]struct{}),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start removes any stale socket, binds a new one and begins accepting
// connections in the background.
func (s *Server) Start() error {
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}

	// user-only: a trigger command controls the whole player
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("Trigger socket listening", zap.String("path", s.socketPath))

	go s.acceptLoop()
	return nil
}

// Stop closes the listener and every open client connection.
func (s *Server) Stop() error {
	s.mu.Lock()
	listener := s.listener
	s.listener = nil
	conns := make([]net.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	if listener == nil {
		return nil
	}

	err := listener.Close()
	for _, conn := range conns {
		conn.Close()
	}
	os.Remove(s.socketPath)

	s.logger.Info("Trigger socket closed", zap.Int("clients", len(conns)))
	return err
}

func (s *Server) acceptLoop() {
	for {
		s.mu.Lock()
		listener := s.listener
		s.mu.Unlock()
		if listener == nil {
			return
		}

		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("Trigger accept failed", zap.Error(err))
			continue
		}

		s.mu.Lock()
		s.clients[conn] = struct{}{}
		s.mu.Unlock()

		s.logger.Debug("Trigger client connected")
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		s.logger.Debug("Trigger client disconnected")
	}()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				s.logger.Debug("Trigger read failed", zap.Error(err))
			}
			return
		}

		req, err := DecodeRequest(line)
		if err != nil {
			s.logger.Warn("Invalid trigger request", zap.Error(err))
			if err := s.respond(conn, NewErrorResponse("invalid request format")); err != nil {
				return
			}
			continue
		}

		s.logger.Debug("Trigger command", zap.String("cmd", req.Cmd))
		if err := s.respond(conn, s.handle(req)); err != nil {
			s.logger.Debug("Trigger write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) handle(req *Request) *Response {
	ctx := context.Background()

	switch req.Cmd {
	case CmdVolumeGet:
		level, err := s.dispatcher.GetVolume(ctx)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.success(VolumeResponse{Level: level})

	case CmdVolumeSet:
		var vr VolumeRequest
		if err := json.Unmarshal(req.Data, &vr); err != nil {
			return NewErrorResponse("invalid volumeSet request")
		}
		level, err := s.dispatcher.SetVolume(ctx, vr.Level)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.success(VolumeResponse{Level: level})

	case CmdVolumeAdjust:
		var ar VolumeAdjustRequest
		if err := json.Unmarshal(req.Data, &ar); err != nil {
			return NewErrorResponse("invalid volumeAdjust request")
		}
		level, err := s.dispatcher.AdjustVolume(ctx, ar.Delta)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.success(VolumeResponse{Level: level})

	case CmdGetConfig:
		return s.configResponse()

	case CmdSetConfig:
		return s.handleSetConfig(req)
	}

	if !domain.ValidAction(req.Cmd) {
		return NewErrorResponse("unknown command")
	}

	if domain.Action(req.Cmd) == domain.ActionShowTrack {
		line, err := s.dispatcher.ShowTrack(ctx)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.success(TrackResponse{Line: line})
	}

	if err := s.dispatcher.Dispatch(ctx, domain.Action(req.Cmd)); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.success(nil)
}

// handleSetConfig applies the fields present in the patch. Fields are
// applied independently, so one rejected value does not undo the others.
func (s *Server) handleSetConfig(req *Request) *Response {
	var patch ConfigRequest
	if req.Data != nil {
		if err := json.Unmarshal(req.Data, &patch); err != nil {
			return NewErrorResponse("invalid setConfig request")
		}
	}

	settings := s.dispatcher.Settings()
	var errs []error
	if patch.AlertDurationSeconds != nil {
		errs = append(errs, settings.SetAlertDuration(time.Duration(*patch.AlertDurationSeconds)*time.Second))
	}
	if patch.TrackFormat != nil {
		errs = append(errs, settings.SetTrackFormat(*patch.TrackFormat))
	}
	if patch.MaxSkipAttempts != nil {
		errs = append(errs, settings.SetMaxSkipAttempts(*patch.MaxSkipAttempts))
	}
	if err := errors.Join(errs...); err != nil {
		return NewErrorResponse(err.Error())
	}

	s.logger.Info("Settings updated over trigger socket")
	return s.configResponse()
}

func (s *Server) configResponse() *Response {
	snap := s.dispatcher.Settings().Snapshot()
	return s.success(ConfigResponse{
		AlertDurationSeconds: int(snap.AlertDuration / time.Second),
		TrackFormat:          snap.TrackFormat,
		MaxSkipAttempts:      snap.MaxSkipAttempts,
		ProbeDelayMS:         int(snap.ProbeDelay / time.Millisecond),
		VolumeStep:           snap.VolumeStep,
	})
}

func (s *Server) success(data any) *Response {
	resp, err := NewSuccessResponse(data)
	if err != nil {
		return NewErrorResponse("internal error")
	}
	return resp
}

func (s *Server) respond(conn net.Conn, resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = conn.Write(data)
	return err
}
