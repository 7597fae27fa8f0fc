package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"lotto/domain/interfaces"
	"lotto/domain/state"
	"lotto/events"
	"lotto/render"

	log "github.com/sirupsen/logrus"
)

// Dependencies wires the services driven by the shell
type Dependencies struct {
	Generator interfaces.NumberGenerator
	Analyzer  interfaces.PatternAnalyzer
	History   interfaces.HistoryService
	Heatmap   *render.HeatmapImageGenerator
	Publisher events.Publisher // optional, receives NumbersDrawnEvent
}

// Shell is the interactive number picker
type Shell struct {
	deps     Dependencies
	in       *bufio.Scanner
	out      io.Writer
	state    state.State
	commands map[string]Command
	running  bool
}

// Command represents a shell command
type Command struct {
	Handler     CommandHandler
	Description string
	Usage       string
	Category    string // "pick", "ticket", "stats", "data"
}

// CommandHandler is a function that handles a shell command
type CommandHandler func(ctx context.Context, args []string) error

// NewShell creates a shell reading commands from in and writing to out
func NewShell(deps Dependencies, in io.Reader, out io.Writer) *Shell {
	if deps.Heatmap == nil {
		deps.Heatmap = render.NewHeatmapImageGenerator()
	}
	s := &Shell{
		deps:    deps,
		in:      bufio.NewScanner(in),
		out:     out,
		state:   state.State{UserNumbers: []int{}},
		running: true,
	}
	s.initializeCommands()
	return s
}

// State returns the current session state
func (s *Shell) State() state.State {
	return s.state
}

// Run loads the history and processes commands until exit or end of input
func (s *Shell) Run(ctx context.Context) error {
	if err := s.reloadHistory(ctx); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "🎱 Lotto 1-45 🎱")
	fmt.Fprintln(s.out, "================")
	fmt.Fprintf(s.out, "%d tickets in history. Type 'help' for available commands.\n", len(s.state.History))

	for s.running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprintf(s.out, "\n🎲 lotto %s> ", formatSelection(s.state.UserNumbers))

		if !s.in.Scan() {
			break
		}

		input := strings.TrimSpace(s.in.Text())
		if input == "" {
			continue
		}
		parts := strings.Fields(input)
		cmdName := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmdName {
		case "exit", "quit":
			s.running = false
			fmt.Fprintln(s.out, "👋 Bye.")
			continue
		}

		cmd, exists := s.commands[cmdName]
		if !exists {
			s.printError(fmt.Errorf("unknown command: %s. Type 'help' for available commands", cmdName))
			continue
		}
		if err := cmd.Handler(ctx, args); err != nil {
			s.printError(err)
		}
	}

	if err := s.in.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}

// dispatch applies an action to the session state
func (s *Shell) dispatch(action state.Action) error {
	next, err := state.Reduce(s.state, action)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Shell) reloadHistory(ctx context.Context) error {
	history, err := s.deps.History.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return s.dispatch(state.SetHistory{Tickets: history})
}

func (s *Shell) publish(event events.Event) {
	if s.deps.Publisher == nil {
		return
	}
	if err := s.deps.Publisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Warn("Failed to publish event")
	}
}

// printError displays an error message in red
func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "\033[31m❌ Error: %s\033[0m\n", err.Error())
}

// printSuccess displays a success message in green
func (s *Shell) printSuccess(msg string) {
	fmt.Fprintf(s.out, "\033[32m✅ %s\033[0m\n", msg)
}

// printWarning displays a warning message in yellow
func (s *Shell) printWarning(msg string) {
	fmt.Fprintf(s.out, "\033[33m⚠️  %s\033[0m\n", msg)
}

// printInfo displays an info message in blue
func (s *Shell) printInfo(msg string) {
	fmt.Fprintf(s.out, "\033[34mℹ️  %s\033[0m\n", msg)
}

// confirmAction prompts the user for confirmation
func (s *Shell) confirmAction(prompt string) bool {
	fmt.Fprintf(s.out, "\n\033[33m⚠️  %s [y/N]: \033[0m", prompt)

	if !s.in.Scan() {
		return false
	}
	response := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return response == "y" || response == "yes"
}
