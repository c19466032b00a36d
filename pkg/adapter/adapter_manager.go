package adapter

import (
	"context"
	"fmt"
	"sync"

	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
	"homescout/client-app/pkg/session"
)

// AdapterInstance represents an instance of an adapter
type AdapterInstance interface {
	// AdapterStart starts the adapter instance
	AdapterStart() error

	// AdapterStop terminates the adapter instance
	AdapterStop() error

	// GetType returns the type of the adapter
	GetType() string
}

// AdapterManager manages all adapter instances
type AdapterManager struct {
	instances      sync.Map // map[string]AdapterInstance keyed by adapter type
	sessionManager *session.SessionManager
	cmdChan        chan commandRequest
	stopChan       chan struct{}
	stopOnce       sync.Once
	logger         *log.Logger
}

// commandRequest carries a command bound for a session along with its result channel
type commandRequest struct {
	SessionID  string
	Command    model.Command
	ResultChan chan interface{}
}

// NewAdapterManager creates a new AdapterManager
func NewAdapterManager(sm *session.SessionManager, logger *log.Logger) *AdapterManager {
	am := &AdapterManager{
		sessionManager: sm,
		cmdChan:        make(chan commandRequest),
		stopChan:       make(chan struct{}),
		logger:         logger,
	}
	go am.commandHandler()
	return am
}

// AdapterAdd registers a started adapter instance for lifecycle management
func (am *AdapterManager) AdapterAdd(instance AdapterInstance) error {
	if _, exists := am.instances.Load(instance.GetType()); exists {
		return fmt.Errorf("adapter type already registered: %s", instance.GetType())
	}
	am.instances.Store(instance.GetType(), instance)
	return instance.AdapterStart()
}

// SessionAdd creates a new session for an adapter connection
func (am *AdapterManager) SessionAdd() (string, error) {
	return am.sessionManager.SessionAdd()
}

// SessionGet retrieves a session by its ID
func (am *AdapterManager) SessionGet(sessionID string) (*session.Session, bool) {
	return am.sessionManager.SessionGet(sessionID)
}

// SessionRestore re-registers an evicted session under its original id
func (am *AdapterManager) SessionRestore(sess *session.Session) {
	am.sessionManager.SessionRestore(sess)
}

// SessionDelete removes a session
func (am *AdapterManager) SessionDelete(sessionID string) {
	am.sessionManager.SessionDelete(sessionID)
}

// CommandRun runs a command within a specific session
func (am *AdapterManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	resultChan := make(chan interface{})
	select {
	case am.cmdChan <- commandRequest{SessionID: sessionID, Command: cmd, ResultChan: resultChan}:
	case <-am.stopChan:
		return nil, fmt.Errorf("adapter manager stopped")
	}
	result := <-resultChan
	if err, ok := result.(error); ok {
		return nil, err
	}
	return result, nil
}

// Shutdown stops all adapter instances and the command handler
func (am *AdapterManager) Shutdown() {
	am.stopOnce.Do(func() {
		close(am.stopChan)
	})
	am.instances.Range(func(key, value interface{}) bool {
		instance := value.(AdapterInstance)
		if err := instance.AdapterStop(); err != nil {
			am.logger.Warn(context.Background(), "Failed to stop adapter instance", log.Fields{"type": instance.GetType(), "error": err})
		}
		return true
	})
}

func (am *AdapterManager) commandHandler() {
	for {
		select {
		case req := <-am.cmdChan:
			result, err := am.sessionManager.CommandRun(req.SessionID, req.Command)
			if err != nil {
				req.ResultChan <- err
			} else {
				req.ResultChan <- result
			}
		case <-am.stopChan:
			return
		}
	}
}
