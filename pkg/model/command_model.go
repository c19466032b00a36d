package model

// Command represents a parsed user command with its scope, operation and arguments.
type Command struct {
	Scope     string
	Operation string
	Args      []string
}

// CommandHelp holds the help text for a single command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Options   []string
	Examples  []string
}
