package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"homescout/client-app/pkg/data"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

const (
	sessionIDLength        = 32
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
)

// ErrSessionNotFound is returned by CommandRun when the session id is not
// registered, typically because the idle cleanup evicted it. Adapters that
// keep their own session handle can restore it via SessionRestore.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager manages multiple concurrent sessions
type SessionManager struct {
	sessions      map[string]*Session
	mu            sync.RWMutex
	dataManager   *data.DataManager
	cleanupTicker *time.Ticker
	done          chan bool
	commandQueue  chan commandExecution
	logger        *log.Logger
}

// commandExecution represents a command to be executed in a session, its result and error
type commandExecution struct {
	session *Session
	command model.Command
	result  chan interface{}
	err     chan error
}

// NewSessionManager starts the command execution goroutine
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		dataManager:  dataManager,
		done:         make(chan bool),
		commandQueue: make(chan commandExecution),
		logger:       logger,
	}
	sm.startCleanupRoutine()
	go sm.commandExecutor()

	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()

	sessionID, err := generateSessionID()
	if err != nil {
		sm.logger.Error(ctx, "Failed to generate session ID", log.Fields{"error": err})
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}

	sm.mu.Lock()
	sm.sessions[sessionID] = NewSession(sessionID, sm.dataManager, sm.logger)
	sm.mu.Unlock()
	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, exists := sm.sessions[sessionID]
	return session, exists
}

// SessionRestore re-registers a session under its original id after the idle
// cleanup evicted it, so a long-lived adapter connection survives the eviction.
func (sm *SessionManager) SessionRestore(session *Session) {
	session.LastActivity = time.Now()
	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()
	sm.logger.Info(context.Background(), "Session restored", log.Fields{"sessionID": session.ID})
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	sm.mu.Lock()
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()
	sm.logger.Info(context.Background(), "Session deleted", log.Fields{"sessionID": sessionID})
}

// CommandRun queues a command for execution in the given session and waits
// for its result. Commands run one at a time, which keeps store mutations
// serialized the way a single-threaded event loop would.
func (sm *SessionManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	session, exists := sm.SessionGet(sessionID)
	if !exists {
		return nil, fmt.Errorf("session '%s': %w", sessionID, ErrSessionNotFound)
	}

	exec := commandExecution{
		session: session,
		command: cmd,
		result:  make(chan interface{}, 1),
		err:     make(chan error, 1),
	}

	select {
	case sm.commandQueue <- exec:
	case <-sm.done:
		return nil, fmt.Errorf("session manager stopped")
	}

	select {
	case result := <-exec.result:
		return result, nil
	case err := <-exec.err:
		return nil, err
	}
}

// commandExecutor serializes command execution across all sessions.
func (sm *SessionManager) commandExecutor() {
	for {
		select {
		case exec := <-sm.commandQueue:
			result, err := exec.session.CommandRun(exec.command)
			if err != nil {
				exec.err <- err
			} else {
				exec.result <- result
			}
		case <-sm.done:
			return
		}
	}
}

// startCleanupRoutine periodically removes idle sessions.
func (sm *SessionManager) startCleanupRoutine() {
	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupIdleSessions()
			case <-sm.done:
				return
			}
		}
	}()
}

// cleanupIdleSessions removes sessions idle longer than the timeout.
func (sm *SessionManager) cleanupIdleSessions() {
	cutoff := time.Now().Add(-defaultSessionTimeout)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, session := range sm.sessions {
		if session.LastActivity.Before(cutoff) {
			delete(sm.sessions, id)
			sm.logger.Info(context.Background(), "Removed idle session", log.Fields{"sessionID": id})
		}
	}
}

// StopCleanupRoutine stops the cleanup routine and the command executor.
func (sm *SessionManager) StopCleanupRoutine() {
	if sm.cleanupTicker != nil {
		sm.cleanupTicker.Stop()
	}
	close(sm.done)
}

// generateSessionID creates a random session identifier.
func generateSessionID() (string, error) {
	b := make([]byte, sessionIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
