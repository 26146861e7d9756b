package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/analysis"
	"github.com/pable/go-dota-insight/internal/fights"
	"github.com/pable/go-dota-insight/internal/report"
	"github.com/pable/go-dota-insight/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the insight database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("dotainsight shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("dotainsight")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <match-id> [--slot <0-9>]")
				continue
			}
			matchID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				cError.Fprintf(os.Stderr, "invalid match id %q\n", args[0])
				continue
			}
			slot := -1
			for i := 1; i+1 < len(args); i++ {
				if args[i] == "--slot" {
					slot, _ = strconv.Atoi(args[i+1])
				}
			}
			shellShow(db, matchID, slot)
		case "fights":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: fights <match-id>")
				continue
			}
			matchID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				cError.Fprintf(os.Stderr, "invalid match id %q\n", args[0])
				continue
			}
			shellFights(db, matchID)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"show <match-id>", "show a match's scoreboard and analyses"},
		{"show <match-id> --slot <0-9>", "same, with one player's full analysis"},
		{"fights <match-id>", "show the teamfight timeline"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-32s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	matches, err := db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	report.PrintMatchList(os.Stdout, matches)
}

func shellShow(db *storage.DB, matchID int64, slot int) {
	match, err := db.GetMatch(matchID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if match == nil {
		cError.Fprintf(os.Stderr, "no match stored with id %d\n", matchID)
		return
	}
	players, err := db.GetPlayers(matchID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintPlayerTable(os.Stdout, players, slot)

	if slot >= 0 {
		a, err := db.GetAnalysis(matchID, slot)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if a == nil {
			cMuted.Printf("Slot %d has no stored analysis. Run 'analyze %d %d' from the CLI.\n", slot, matchID, slot)
			return
		}
		report.PrintAnalysis(os.Stdout, *a)
		return
	}

	analyses, err := db.ListAnalyses(matchID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(analyses) == 0 {
		cMuted.Println("No analyses stored for this match.")
		return
	}
	cHeader.Fprintln(os.Stdout, "Stored analyses:")
	for _, a := range analyses {
		fmt.Fprintf(os.Stdout, "  Slot %d: %.1f/100  %s\n", a.Slot, a.Score, a.Summary)
	}
}

func shellFights(db *storage.DB, matchID int64) {
	match, err := db.GetMatch(matchID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if match == nil {
		cError.Fprintf(os.Stderr, "no match stored with id %d\n", matchID)
		return
	}
	events, err := db.GetEvents(matchID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	roster := analysis.Roster(events)
	detected := fights.DetectWith(events, roster, cfg.FightWindowSecs, cfg.FightMinParticipants)
	report.PrintFights(os.Stdout, detected)
}
