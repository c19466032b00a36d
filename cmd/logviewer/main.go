// Command logviewer tails the JSON log files written by the HomeScout client
// and renders them in a compact colored format with interactive filtering.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

const pollInterval = 250 * time.Millisecond

type logEntry map[string]interface{}

// viewer tails every *.log file in a directory and prints matching entries.
type viewer struct {
	logDir    string
	positions map[string]int64

	mu     sync.RWMutex
	filter string
}

func newViewer(logDir string) *viewer {
	return &viewer{
		logDir:    logDir,
		positions: make(map[string]int64),
	}
}

func (v *viewer) filterGet() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

func (v *viewer) filterAppend(char rune) {
	v.mu.Lock()
	v.filter += string(char)
	v.mu.Unlock()
}

func (v *viewer) filterBackspace() {
	v.mu.Lock()
	if len(v.filter) > 0 {
		v.filter = v.filter[:len(v.filter)-1]
	}
	v.mu.Unlock()
}

// run polls the log directory until the program exits.
func (v *viewer) run() {
	for {
		logFiles, err := filepath.Glob(filepath.Join(v.logDir, "*.log"))
		if err != nil {
			fmt.Printf("%sError reading log directory: %v%s\n", colorRed, err, colorReset)
			time.Sleep(pollInterval)
			continue
		}

		for _, filePath := range logFiles {
			v.drainFile(filePath)
		}

		time.Sleep(pollInterval)
	}
}

// drainFile prints the entries appended to one file since the last poll.
func (v *viewer) drainFile(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		fmt.Printf("%sError opening %s: %v%s\n", colorRed, filepath.Base(filePath), err, colorReset)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		fmt.Printf("%sError getting file stats for %s: %v%s\n", colorRed, filepath.Base(filePath), err, colorReset)
		return
	}

	// Truncation resets the read position.
	if stat.Size() < v.positions[filePath] {
		v.positions[filePath] = 0
	}

	if _, err := file.Seek(v.positions[filePath], io.SeekStart); err != nil {
		fmt.Printf("%sError seeking in %s: %v%s\n", colorRed, filepath.Base(filePath), err, colorReset)
		return
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		var entry logEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}

		formatted := formatLogEntry(filepath.Base(filePath), entry)
		filter := v.filterGet()
		if filter == "" || strings.Contains(strings.ToLower(formatted), strings.ToLower(filter)) {
			fmt.Println(formatted)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("%sError reading %s: %v%s\n", colorRed, filepath.Base(filePath), err, colorReset)
	}

	if position, err := file.Seek(0, io.SeekCurrent); err == nil {
		v.positions[filePath] = position
	}
}

func formatLogEntry(source string, entry logEntry) string {
	timestamp, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)

	var levelColor string
	switch strings.ToUpper(level) {
	case "DEBUG":
		levelColor = colorBlue
	case "INFO":
		levelColor = colorGreen
	case "WARN":
		levelColor = colorYellow
	case "ERROR":
		levelColor = colorRed
	default:
		levelColor = colorWhite
	}

	formatted := fmt.Sprintf("%s%s%s %s%-5s%s %s[%s]%s %s",
		colorMagenta, formatTimestamp(timestamp), colorReset,
		levelColor, strings.ToUpper(level), colorReset,
		colorCyan, source, colorReset,
		msg)

	for key, value := range entry {
		switch key {
		case "time", "level", "msg":
		default:
			formatted += fmt.Sprintf("\n    %s%s:%s %v", colorCyan, key, colorReset, value)
		}
	}

	return formatted
}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000")
}

// handleKeys reads keystrokes to build the interactive filter.
func handleKeys(v *viewer, done chan<- struct{}) {
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Println("Error reading key:", err)
			done <- struct{}{}
			return
		}

		switch key {
		case keyboard.KeyCtrlC, keyboard.KeyEsc:
			fmt.Println("\nExiting...")
			done <- struct{}{}
			return
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			v.filterBackspace()
		case keyboard.KeySpace:
			v.filterAppend(' ')
		default:
			if char != 0 {
				v.filterAppend(char)
			}
		}
		fmt.Printf("\rCurrent filter: %s \r", v.filterGet())
	}
}

func cleanup() {
	keyboard.Close()
	fmt.Print("\033[?25h") // Show cursor
}

func printUsage() {
	fmt.Println("Usage: logviewer [log directory] [-h|--help]")
	fmt.Println("\nMonitors all *.log files in the given directory (default ./logs/),")
	fmt.Println("parses the JSON entries and prints them with colors. Type to filter,")
	fmt.Println("backspace to erase, Ctrl-C or Esc to exit.")
}

func main() {
	var help bool
	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&help, "help", false, "Show help")
	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}

	logDir := "./logs/"
	if args := flag.Args(); len(args) > 0 {
		logDir = args[0]
	}
	if stat, err := os.Stat(logDir); err != nil || !stat.IsDir() {
		fmt.Printf("Log directory '%s' does not exist.\n", logDir)
		os.Exit(1)
	}

	fmt.Printf("Monitoring logs in directory: %s\n", logDir)

	if err := keyboard.Open(); err != nil {
		fmt.Printf("Failed to open keyboard: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nExiting...")
		cleanup()
		os.Exit(0)
	}()

	v := newViewer(logDir)
	go v.run()

	done := make(chan struct{})
	go handleKeys(v, done)

	fmt.Println("Start typing to filter logs. Press Ctrl-C to exit.")
	fmt.Print("Current filter: ")

	<-done
}
