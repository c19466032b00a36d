// Package adapter bridges user-facing interfaces to the session layer.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
	"homescout/client-app/pkg/session"
)

// CLIAdapter provides command-line interface support for managing multiple CLI connections
type CLIAdapter struct {
	sessions       map[string]*session.Session
	sessionMutex   sync.RWMutex
	adapterManager *AdapterManager
	logger         *log.Logger
}

// NewCLIAdapter creates a new instance of CLIAdapter using the provided AdapterManager
func NewCLIAdapter(am *AdapterManager, logger *log.Logger) (*CLIAdapter, error) {
	logger.Info(context.Background(), "Creating new CLI adapter", nil)
	return &CLIAdapter{
		sessions:       make(map[string]*session.Session),
		adapterManager: am,
		logger:         logger,
	}, nil
}

// AdapterStart starts the CLI adapter
func (a *CLIAdapter) AdapterStart() error {
	a.logger.Info(context.Background(), "CLI adapter started", nil)
	return nil
}

// AdapterStop signals the CLI adapter to stop
func (a *CLIAdapter) AdapterStop() error {
	ctx := context.Background()
	a.logger.Info(ctx, "CLI adapter stopping", nil)

	a.sessionMutex.Lock()
	for sessionID := range a.sessions {
		delete(a.sessions, sessionID)
		a.logger.Debug(ctx, "Removed session during adapter stop", log.Fields{"sessionID": sessionID})
	}
	a.sessionMutex.Unlock()

	return nil
}

// GetType returns the adapter type
func (a *CLIAdapter) GetType() string {
	return "cli"
}

// SessionAdd adds a new cli session
func (a *CLIAdapter) SessionAdd() (string, error) {
	sessionID, err := a.adapterManager.SessionAdd()
	if err != nil {
		return "", err
	}

	sess, exists := a.adapterManager.SessionGet(sessionID)
	if !exists {
		a.logger.Error(context.Background(), "Session does not exist", log.Fields{"sessionID": sessionID})
		return "", fmt.Errorf("session %s does not exist after addition by cli adapter", sessionID)
	}

	a.sessionMutex.Lock()
	a.sessions[sessionID] = sess
	a.sessionMutex.Unlock()
	a.logger.Info(context.Background(), "New CLI session added", log.Fields{"sessionID": sessionID})

	return sessionID, nil
}

// SessionDelete deletes a cli session
func (a *CLIAdapter) SessionDelete(sessionID string) {
	a.sessionMutex.Lock()
	delete(a.sessions, sessionID)
	a.sessionMutex.Unlock()
	a.adapterManager.SessionDelete(sessionID)
	a.logger.Info(context.Background(), "CLI session removed", log.Fields{"sessionID": sessionID})
}

// ProcessInput converts the input string into a command and runs it. A
// session the idle cleanup evicted is restored from the adapter's own handle,
// so the shell keeps working after any length of inactivity.
func (a *CLIAdapter) ProcessInput(sessionID string, input string) (interface{}, error) {
	cmd, err := a.parseCommand(input)
	if err != nil {
		return nil, err
	}

	result, err := a.adapterManager.CommandRun(sessionID, cmd)
	if errors.Is(err, session.ErrSessionNotFound) {
		a.sessionMutex.RLock()
		sess, exists := a.sessions[sessionID]
		a.sessionMutex.RUnlock()
		if exists {
			a.logger.Info(context.Background(), "Restoring evicted CLI session", log.Fields{"sessionID": sessionID})
			a.adapterManager.SessionRestore(sess)
			return a.adapterManager.CommandRun(sessionID, cmd)
		}
	}
	return result, err
}

// parseCommand splits the input into scope, operation and arguments. Double
// quotes group words into a single argument.
func (a *CLIAdapter) parseCommand(input string) (model.Command, error) {
	args := splitArgs(input)
	if len(args) == 0 {
		return model.Command{}, fmt.Errorf("empty command")
	}

	cmd := model.Command{
		Scope:     strings.ToLower(args[0]),
		Operation: "",
		Args:      []string{},
	}

	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	a.logger.Debug(context.Background(), "Command parsed", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})
	return cmd, nil
}

func splitArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}

// PromptGet gets the current prompt of the session
func (a *CLIAdapter) PromptGet(sessionID string) string {
	a.sessionMutex.RLock()
	defer a.sessionMutex.RUnlock()

	sess, exists := a.sessions[sessionID]
	if !exists {
		return "> "
	}

	name := "guest"
	if sess.User != nil {
		name = sess.User.Name
	}
	if sess.Admin {
		return fmt.Sprintf("%s [admin] > ", name)
	}
	return fmt.Sprintf("%s > ", name)
}
