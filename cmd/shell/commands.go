package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"lotto/domain/entities"
	"lotto/domain/services"
	"lotto/domain/state"
	"lotto/domain/utils"
	"lotto/events"
	"lotto/infrastructure/observability"
)

// initializeCommands sets up all available shell commands
func (s *Shell) initializeCommands() {
	s.commands = map[string]Command{
		"help": {
			Handler:     s.handleHelp,
			Description: "Show available commands",
			Usage:       "help [command]",
			Category:    "utility",
		},
		"pick": {
			Handler:     s.handlePick,
			Description: "Select numbers to keep in every generated game (max 6)",
			Usage:       "pick <number> [number...]",
			Category:    "pick",
		},
		"unpick": {
			Handler:     s.handleUnpick,
			Description: "Remove numbers from the selection",
			Usage:       "unpick <number> [number...]",
			Category:    "pick",
		},
		"reset": {
			Handler:     s.handleReset,
			Description: "Clear the selection and the generated game",
			Usage:       "reset",
			Category:    "pick",
		},
		"random": {
			Handler:     s.handleRandom,
			Description: "Complete the selection to one random game",
			Usage:       "random",
			Category:    "pick",
		},
		"set": {
			Handler:     s.handleSet,
			Description: "Generate five games A-E around the selection",
			Usage:       "set",
			Category:    "pick",
		},
		"smart": {
			Handler:     s.handleSmart,
			Description: "Complete the selection from the history patterns",
			Usage:       "smart [explain]",
			Category:    "pick",
		},
		"save": {
			Handler:     s.handleSave,
			Description: "Save the generated game or set for a draw round",
			Usage:       "save <round>",
			Category:    "ticket",
		},
		"history": {
			Handler:     s.handleHistory,
			Description: "List saved tickets, newest first",
			Usage:       "history [limit]",
			Category:    "ticket",
		},
		"result": {
			Handler:     s.handleResult,
			Description: "Enter the result of a single ticket",
			Usage:       "result <ticket_id> <lose|5th|4th|3rd|2nd|1st> [amount]",
			Category:    "ticket",
		},
		"result-set": {
			Handler:     s.handleResultSet,
			Description: "Enter the results of every game of a set",
			Usage:       "result-set <ticket_id> A=<rank>[:amount] B=... C=... D=... E=...",
			Category:    "ticket",
		},
		"stats": {
			Handler:     s.handleStats,
			Description: "Show investment, winnings and most picked numbers",
			Usage:       "stats",
			Category:    "stats",
		},
		"patterns": {
			Handler:     s.handlePatterns,
			Description: "Show odd/even, range, consecutive and sum patterns",
			Usage:       "patterns",
			Category:    "stats",
		},
		"heatmap": {
			Handler:     s.handleHeatmap,
			Description: "Show how often every number was drawn, optionally as PNG",
			Usage:       "heatmap [file.png]",
			Category:    "stats",
		},
		"export": {
			Handler:     s.handleExport,
			Description: "Write the history to a backup file",
			Usage:       "export <file.json>",
			Category:    "data",
		},
		"import": {
			Handler:     s.handleImport,
			Description: "Replace the history with a backup file",
			Usage:       "import <file.json>",
			Category:    "data",
		},
		"clear-history": {
			Handler:     s.handleClearHistory,
			Description: "Delete every saved ticket",
			Usage:       "clear-history",
			Category:    "data",
		},
	}
}

// handleHelp displays help information
func (s *Shell) handleHelp(ctx context.Context, args []string) error {
	if len(args) > 0 {
		cmdName := args[0]
		if cmd, exists := s.commands[cmdName]; exists {
			fmt.Fprintf(s.out, "\n📖 %s\n", cmdName)
			fmt.Fprintf(s.out, "   %s\n", cmd.Description)
			fmt.Fprintf(s.out, "   Usage: %s\n", cmd.Usage)
			return nil
		}
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	fmt.Fprintln(s.out, "\n📚 Available Commands:")
	fmt.Fprintln(s.out, "====================")
	for _, category := range []string{"pick", "ticket", "stats", "data", "utility"} {
		names := make([]string, 0)
		for name, cmd := range s.commands {
			if cmd.Category == category {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		fmt.Fprintf(s.out, "\n%s:\n", strings.ToUpper(category))
		for _, name := range names {
			fmt.Fprintf(s.out, "  %s %s\n", padRight(name, 14), s.commands[name].Description)
		}
	}
	fmt.Fprintf(s.out, "  %s %s\n", padRight("exit", 14), "Leave the shell")
	return nil
}

func (s *Shell) handlePick(ctx context.Context, args []string) error {
	numbers, err := parseNumbers(args)
	if err != nil {
		return err
	}
	if len(numbers) == 0 {
		return fmt.Errorf("usage: %s", s.commands["pick"].Usage)
	}
	for _, n := range numbers {
		if err := s.dispatch(state.AddNumber{Number: n}); err != nil {
			return err
		}
	}
	s.printSuccess("Selected " + formatSelection(s.state.UserNumbers))
	return nil
}

func (s *Shell) handleUnpick(ctx context.Context, args []string) error {
	numbers, err := parseNumbers(args)
	if err != nil {
		return err
	}
	for _, n := range numbers {
		if err := s.dispatch(state.RemoveNumber{Number: n}); err != nil {
			return err
		}
	}
	s.printSuccess("Selected " + formatSelection(s.state.UserNumbers))
	return nil
}

func (s *Shell) handleReset(ctx context.Context, args []string) error {
	if err := s.dispatch(state.ClearCurrentGame{}); err != nil {
		return err
	}
	s.printInfo("Selection cleared")
	return nil
}

func (s *Shell) handleRandom(ctx context.Context, args []string) error {
	numbers, err := s.deps.Generator.GenerateRandom(s.state.UserNumbers)
	if err != nil {
		return err
	}
	if err := s.dispatch(state.SetCurrentNumbers{Numbers: numbers}); err != nil {
		return err
	}
	s.publish(events.NumbersDrawnEvent{Mode: observability.ModeRandom, Games: 1})

	fmt.Fprintf(s.out, "\n🎱 %s\n", formatBalls(numbers, s.state.UserNumbers))
	return nil
}

func (s *Shell) handleSet(ctx context.Context, args []string) error {
	games, err := s.deps.Generator.GenerateGameSet(s.state.UserNumbers)
	if err != nil {
		return err
	}
	if err := s.dispatch(state.SetCurrentGameSet{Games: games}); err != nil {
		return err
	}
	s.publish(events.NumbersDrawnEvent{Mode: observability.ModeSet, Games: len(games)})

	fmt.Fprintln(s.out)
	for _, g := range games {
		fmt.Fprintf(s.out, "  %s  %s\n", g.Letter, formatBalls(g.Numbers, g.UserNumbers))
	}
	return nil
}

func (s *Shell) handleSmart(ctx context.Context, args []string) error {
	numbers, scores, err := s.deps.Generator.GenerateSmartExplained(s.state.History, s.state.UserNumbers)
	var insufficient *entities.InsufficientDataError
	if errors.As(err, &insufficient) {
		s.printWarning(fmt.Sprintf("Smart picks need at least %d saved tickets, you have %d", insufficient.MinRequired, insufficient.Actual))
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.dispatch(state.SetCurrentNumbers{Numbers: numbers}); err != nil {
		return err
	}
	s.publish(events.NumbersDrawnEvent{Mode: observability.ModeSmart, Games: 1})

	fmt.Fprintf(s.out, "\n🧠 %s\n", formatBalls(numbers, s.state.UserNumbers))

	if len(args) > 0 && args[0] == "explain" {
		fmt.Fprintf(s.out, "\n  %s %s %s %s\n", padLeft("#", 3), padLeft("freq", 5), padLeft("weight", 7), padLeft("score", 7))
		for i, sc := range scores {
			if i == entities.TicketSize {
				break
			}
			fmt.Fprintf(s.out, "  %s %s %s %s\n",
				padLeft(strconv.Itoa(sc.Number), 3),
				padLeft(strconv.Itoa(sc.Frequency), 5),
				padLeft(strconv.FormatFloat(sc.Weight, 'f', 2, 64), 7),
				padLeft(strconv.FormatFloat(sc.Score, 'f', 1, 64), 7))
		}
	}
	return nil
}

func (s *Shell) handleSave(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", s.commands["save"].Usage)
	}
	round, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid round: %s", args[0])
	}
	if !s.state.HasCurrentGame() {
		s.printWarning("Nothing to save. Generate numbers with random, set or smart first")
		return nil
	}

	var ticket *entities.Ticket
	if len(s.state.CurrentGameSet) > 0 {
		ticket, err = s.deps.History.SaveGameSet(ctx, round, s.state.CurrentGameSet, s.state.UserNumbers)
	} else {
		ticket, err = s.deps.History.SaveSingle(ctx, round, s.state.CurrentNumbers, s.state.UserNumbers)
	}
	if err != nil {
		return err
	}

	if err := s.dispatch(state.AddTicket{Ticket: ticket}); err != nil {
		return err
	}
	if err := s.dispatch(state.ClearCurrentGame{}); err != nil {
		return err
	}
	s.printSuccess(fmt.Sprintf("Saved ticket %d for round %d (cost %s won)", ticket.ID, ticket.Round, utils.FormatAmount(ticket.Cost)))
	return nil
}

func (s *Shell) handleHistory(ctx context.Context, args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid limit: %s", args[0])
		}
		limit = n
	}

	history := s.state.History
	if len(history) == 0 {
		s.printInfo("No tickets saved yet")
		return nil
	}

	fmt.Fprintf(s.out, "\n📜 %d tickets\n", len(history))
	for i := len(history) - 1; i >= 0 && len(history)-i <= limit; i-- {
		t := history[i]
		fmt.Fprintf(s.out, "\n  #%d  round %d  %s  %s  %s\n", t.ID, t.Round, t.Date, t.Type, describeStatus(t))
		if t.IsGameSet() {
			for _, g := range t.GameSet {
				line := "     " + g.Letter + "  " + formatBalls(g.Numbers, g.UserNumbers)
				if o, ok := t.Results[g.Letter]; ok {
					line += "  " + describeOutcome(o)
				}
				fmt.Fprintln(s.out, line)
			}
		} else {
			fmt.Fprintf(s.out, "     %s\n", formatBalls(t.Numbers, t.UserNumbers))
		}
	}
	return nil
}

func (s *Shell) handleResult(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: %s", s.commands["result"].Usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ticket ID: %s", args[0])
	}
	amountArg := ""
	if len(args) == 3 {
		amountArg = args[2]
	}
	outcome, err := parseOutcome(args[1], amountArg)
	if err != nil {
		return err
	}

	ticket, err := s.deps.History.RecordResult(ctx, id, outcome)
	if err != nil {
		return err
	}
	if err := s.dispatch(state.UpdateTicket{Ticket: ticket}); err != nil {
		return err
	}
	s.printSuccess(fmt.Sprintf("Ticket %d: %s", ticket.ID, describeOutcome(outcome)))
	return nil
}

func (s *Shell) handleResultSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s", s.commands["result-set"].Usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ticket ID: %s", args[0])
	}

	results := make(map[string]entities.Outcome, len(args)-1)
	for _, arg := range args[1:] {
		letter, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected <game>=<rank>[:amount], got %s", arg)
		}
		rank, amount, _ := strings.Cut(value, ":")
		outcome, err := parseOutcome(rank, amount)
		if err != nil {
			return err
		}
		results[strings.ToUpper(letter)] = outcome
	}

	ticket, err := s.deps.History.RecordGameSetResults(ctx, id, results)
	if err != nil {
		return err
	}
	if err := s.dispatch(state.UpdateTicket{Ticket: ticket}); err != nil {
		return err
	}
	s.printSuccess(fmt.Sprintf("Ticket %d: %d winning games, %s won", ticket.ID, ticket.WinCount(), utils.FormatAmount(ticket.TotalAmount)))
	return nil
}

func (s *Shell) handleStats(ctx context.Context, args []string) error {
	summary := s.deps.Analyzer.Summarize(s.state.History)

	fmt.Fprintln(s.out, "\n📊 Statistics")
	fmt.Fprintf(s.out, "  %s %d\n", padRight("Tickets", 12), summary.TotalGames)
	fmt.Fprintf(s.out, "  %s %s\n", padRight("Invested", 12), utils.FormatAmount(summary.TotalInvestment))
	fmt.Fprintf(s.out, "  %s %s\n", padRight("Won", 12), utils.FormatAmount(summary.TotalWinnings))
	fmt.Fprintf(s.out, "  %s %s\n", padRight("Profit rate", 12), utils.FormatPercent(summary.ProfitRate))
	fmt.Fprintf(s.out, "  %s %d\n", padRight("Wins", 12), summary.WinCount)
	fmt.Fprintf(s.out, "  %s %s\n", padRight("Best win", 12), utils.FormatAmount(summary.BestWin))
	fmt.Fprintf(s.out, "  %s %d\n", padRight("Pending", 12), summary.PendingCount)

	top := s.deps.Analyzer.TopFrequent(s.state.History, services.TopFrequentLimit)
	if len(top) == 0 {
		return nil
	}
	fmt.Fprintln(s.out, "\n⭐ Most picked numbers")
	for _, nc := range top {
		fmt.Fprintf(s.out, "  %s  %dx\n", padLeft(strconv.Itoa(nc.Number), 2), nc.Count)
	}
	return nil
}

func (s *Shell) handlePatterns(ctx context.Context, args []string) error {
	history := s.state.History
	if len(history) == 0 {
		s.printInfo("No tickets saved yet")
		return nil
	}

	oddEven := s.deps.Analyzer.OddEvenBalance(history)
	fmt.Fprintln(s.out, "\n🔢 Odd / even")
	fmt.Fprintf(s.out, "  odd %s  even %s\n", utils.FormatPercent(oddEven.Odd), utils.FormatPercent(oddEven.Even))

	ranges := s.deps.Analyzer.RangeBalance(history)
	fmt.Fprintln(s.out, "\n📐 Ranges")
	for i, share := range ranges {
		fmt.Fprintf(s.out, "  %s %s %s\n", padRight(entities.RangeLabel(i), 6), bar(share), utils.FormatPercent(share))
	}

	runs := s.deps.Analyzer.ConsecutiveRuns(history)
	fmt.Fprintln(s.out, "\n🔗 Consecutive runs")
	fmt.Fprintf(s.out, "  pairs %d  triples %d  four or more %d\n", runs.Pairs, runs.Triples, runs.FourPlus)

	if sums, ok := s.deps.Analyzer.SumDistribution(history); ok {
		fmt.Fprintln(s.out, "\n➕ Sums")
		fmt.Fprintf(s.out, "  average %.1f  min %d  max %d  over %d games\n", sums.Average, sums.Min, sums.Max, sums.Count)
	}
	return nil
}

func (s *Shell) handleHeatmap(ctx context.Context, args []string) error {
	heatmap := s.deps.Analyzer.NumberHeatmap(s.state.History)

	fmt.Fprintln(s.out, "\n🔥 Number heatmap")
	for n := entities.MinNumber; n <= entities.MaxNumber; n++ {
		fmt.Fprintf(s.out, " %s%s", heatCell(heatmap.Intensity(n)), padLeft(fmt.Sprintf("%d:%d", n, heatmap.Count(n)), 6))
		if (n-entities.MinNumber+1)%9 == 0 {
			fmt.Fprintln(s.out)
		}
	}

	if len(args) == 0 {
		return nil
	}
	draws := 0
	for _, t := range s.state.History {
		draws += len(t.Draws())
	}
	data, err := s.deps.Heatmap.Generate(heatmap, draws)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	s.printSuccess("Heatmap written to " + args[0])
	return nil
}

func (s *Shell) handleExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", s.commands["export"].Usage)
	}
	backup, err := s.deps.History.Export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	s.printSuccess(fmt.Sprintf("Exported %d tickets to %s", len(backup.GameHistory), args[0]))
	return nil
}

func (s *Shell) handleImport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", s.commands["import"].Usage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	var backup entities.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrInvalidBackup, err)
	}
	if !s.confirmAction(fmt.Sprintf("Replace %d tickets with %d from %s?", len(s.state.History), len(backup.GameHistory), args[0])) {
		s.printInfo("Import cancelled")
		return nil
	}

	imported, err := s.deps.History.Import(ctx, &backup)
	if err != nil {
		return err
	}
	if err := s.reloadHistory(ctx); err != nil {
		return err
	}
	s.printSuccess(fmt.Sprintf("Imported %d tickets", imported))
	return nil
}

func (s *Shell) handleClearHistory(ctx context.Context, args []string) error {
	if !s.confirmAction(fmt.Sprintf("Delete all %d tickets?", len(s.state.History))) {
		s.printInfo("Nothing deleted")
		return nil
	}
	removed, err := s.deps.History.Clear(ctx)
	if err != nil {
		return err
	}
	if err := s.dispatch(state.SetHistory{}); err != nil {
		return err
	}
	s.printSuccess(fmt.Sprintf("Deleted %d tickets", removed))
	return nil
}
