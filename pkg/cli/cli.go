// Package cli implements the interactive command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"homescout/client-app/pkg/adapter"
	"homescout/client-app/pkg/log"
)

// CLI represents the command-line interface
type CLI struct {
	adapter   *adapter.CLIAdapter
	sessionID string
	rl        *readline.Instance
	closeOnce sync.Once
	logger    *log.Logger
}

// NewCLI creates a new CLI instance with its own session
func NewCLI(cliAdapter *adapter.CLIAdapter, logger *log.Logger) (*CLI, error) {
	sessionID, err := cliAdapter.SessionAdd()
	if err != nil {
		return nil, fmt.Errorf("failed to create cli session: %w", err)
	}

	rl, err := readline.New("> ")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &CLI{
		adapter:   cliAdapter,
		sessionID: sessionID,
		rl:        rl,
		logger:    logger,
	}, nil
}

// Run starts the CLI and handles user input until exit or EOF
func (c *CLI) Run() error {
	ctx := context.Background()
	fmt.Println("Welcome to HomeScout!")
	fmt.Println("Type 'help' for a list of commands or 'exit' to quit.")

	defer func() {
		c.adapter.SessionDelete(c.sessionID)
		c.close(ctx)
	}()

	for {
		c.rl.SetPrompt(c.adapter.PromptGet(c.sessionID))
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			return nil
		}

		fields := strings.Fields(line)
		if fields[0] == "help" {
			c.printHelp(fields[1:])
			continue
		}

		result, err := c.adapter.ProcessInput(c.sessionID, line)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if result != nil {
			fmt.Printf("%v\n", result)
		}
	}
}

// Stop signals the CLI to stop its main loop. Closing readline makes the
// pending Readline call return io.EOF.
func (c *CLI) Stop() {
	c.close(context.Background())
}

func (c *CLI) close(ctx context.Context) {
	c.closeOnce.Do(func() {
		if err := c.rl.Close(); err != nil {
			c.logger.Warn(ctx, "Failed to close readline", log.Fields{"error": err})
		}
	})
}
