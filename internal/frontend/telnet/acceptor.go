package telnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/config"
)

// FullMessage is sent to clients turned away because MaxSessions are active.
const FullMessage = "The outfit server is full. Try again later."

// SessionHandler runs one client session. The context is cancelled when the
// acceptor stops.
type SessionHandler interface {
	HandleSession(ctx context.Context, conn *Conn) error
}

// Acceptor accepts Telnet clients and runs a SessionHandler for each, up to
// cfg.MaxSessions at a time.
type Acceptor struct {
	cfg     config.TelnetConfig
	handler SessionHandler
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	listener net.Listener
	sessions map[string]string // session id → remote address
}

// NewAcceptor creates a Telnet acceptor.
//
// Precondition: handler and logger must be non-nil.
// Postcondition: Returns an Acceptor ready to be started with ListenAndServe.
func NewAcceptor(cfg config.TelnetConfig, handler SessionHandler, logger *zap.Logger) *Acceptor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Acceptor{
		cfg:      cfg,
		handler:  handler,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]string),
	}
}

// ListenAndServe listens on cfg.Addr() and serves clients until Stop.
//
// Postcondition: Returns nil after Stop, or the listen error.
func (a *Acceptor) ListenAndServe() error {
	listener, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	a.mu.Lock()
	if a.ctx.Err() != nil {
		a.mu.Unlock()
		listener.Close()
		return nil
	}
	a.listener = listener
	a.mu.Unlock()

	a.logger.Info("telnet acceptor listening",
		zap.String("addr", listener.Addr().String()),
		zap.Int("max_sessions", a.cfg.MaxSessions),
	)

	for {
		raw, err := listener.Accept()
		if err != nil {
			if a.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			a.logger.Error("accepting connection", zap.Error(err))
			continue
		}
		a.mu.Lock()
		if a.ctx.Err() != nil {
			a.mu.Unlock()
			raw.Close()
			return nil
		}
		a.wg.Add(1)
		a.mu.Unlock()

		id, ok := a.admit(raw.RemoteAddr().String())
		go a.serve(raw, id, ok)
	}
}

// admit registers a session unless the acceptor is full.
func (a *Acceptor) admit(addr string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cfg.MaxSessions > 0 && len(a.sessions) >= a.cfg.MaxSessions {
		return "", false
	}
	id := uuid.NewString()
	a.sessions[id] = addr
	return id, true
}

func (a *Acceptor) release(id string) {
	a.mu.Lock()
	delete(a.sessions, id)
	a.mu.Unlock()
}

func (a *Acceptor) serve(raw net.Conn, id string, admitted bool) {
	defer a.wg.Done()
	start := time.Now()
	conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
	defer conn.Close()

	logger := a.logger.With(zap.String("remote_addr", raw.RemoteAddr().String()))
	if !admitted {
		logger.Warn("rejecting client, server full", zap.Int("max_sessions", a.cfg.MaxSessions))
		_ = conn.WriteLine(FullMessage)
		return
	}
	defer a.release(id)
	logger = logger.With(zap.String("session", id))
	logger.Info("client connected")

	if err := conn.Negotiate(); err != nil {
		logger.Error("telnet negotiation failed", zap.Error(err))
		return
	}

	// Closing the connection unblocks a handler waiting in ReadLine.
	stop := context.AfterFunc(a.ctx, func() { conn.Close() })
	defer stop()

	if err := a.handler.HandleSession(a.ctx, conn); err != nil {
		logger.Debug("session ended", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	logger.Info("session ended cleanly", zap.Duration("duration", time.Since(start)))
}

// Stop closes the listener, ends every session, and waits for their handlers
// to return. Stop is idempotent.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	if a.ctx.Err() != nil {
		a.mu.Unlock()
		return
	}
	a.cancel()
	if a.listener != nil {
		a.listener.Close()
	}
	a.mu.Unlock()

	a.wg.Wait()
	a.logger.Info("telnet acceptor stopped")
}

// Addr returns the listening address, or "" before the listener is open.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return ""
}

// IsRunning reports whether the acceptor is listening.
func (a *Acceptor) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listener != nil && a.ctx.Err() == nil
}

// Sessions reports the number of sessions currently being served.
func (a *Acceptor) Sessions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}
