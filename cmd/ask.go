package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-dota-insight/internal/herodata"
	"github.com/pable/go-dota-insight/internal/model"
	"github.com/pable/go-dota-insight/internal/storage"
)

const askSystemPrompt = `You are a Dota 2 performance analyst. You are given structured data
from a match-analysis tool and a question from the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable — focus on what the player can actually improve.
- Avoid generic Dota 2 advice unless it directly explains a pattern in the data.

Metrics glossary:
- GPM/XPM: gold/experience per minute. Carries typically 500+, supports 250-350.
- KDA: (kills + assists) / deaths. Higher = better fight economy.
- Last hits: creeps killed. ~50 by 10 min is strong for a core.
- Score: 0-100 composite from the findings. 50 is neutral.
- z-score: deviation from the hero/role baseline in standard deviations.
  Negative = below the typical player of that hero, role, and rank.
- Finding severity: critical > warning > info. Info findings with positive
  titles are strengths, the rest are neutral observations.
- Role numbers: 1 carry, 2 mid, 3 offlane, 4 soft support, 5 hard support.`

var (
	askModel  string
	askAPIKey string
)

var askCmd = &cobra.Command{
	Use:   "ask <match-id> <slot> <question>",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(3),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}
	slot, err := strconv.Atoi(args[1])
	if err != nil || slot < 0 || slot > 9 {
		return fmt.Errorf("invalid slot %q: must be 0-9", args[1])
	}
	question := args[2]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("match %d not stored", matchID)
	}
	players, err := db.GetPlayers(matchID)
	if err != nil {
		return fmt.Errorf("query players: %w", err)
	}
	a, err := db.GetAnalysis(matchID, slot)
	if err != nil {
		return fmt.Errorf("query analysis: %w", err)
	}
	if a == nil {
		return fmt.Errorf("slot %d has no analysis; run 'dotainsight analyze %d %d' first", slot, matchID, slot)
	}

	contextJSON, err := buildAskContext(*match, players, *a, slot)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	return callAnthropic(cmd.Context(), askAPIKey, askModel, contextJSON, question)
}

// buildAskContext serialises the match, scoreboard, and analysis into compact JSON.
func buildAskContext(match model.Match, players []model.MatchPlayer, a model.Analysis, slot int) (string, error) {
	type playerEntry struct {
		Slot     int     `json:"slot"`
		Side     string  `json:"side"`
		Hero     string  `json:"hero"`
		Lane     string  `json:"lane"`
		Role     string  `json:"role"`
		Kills    int     `json:"kills"`
		Deaths   int     `json:"deaths"`
		Assists  int     `json:"assists"`
		KDA      float64 `json:"kda"`
		GPM      int     `json:"gpm"`
		XPM      int     `json:"xpm"`
		LastHits int     `json:"last_hits"`
		IsFocus  bool    `json:"is_focus"`
	}

	entries := make([]playerEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, playerEntry{
			Slot:     p.Slot,
			Side:     p.Side().String(),
			Hero:     herodata.HeroName(p.HeroID),
			Lane:     strings.ToLower(p.Lane.String()),
			Role:     p.Role.String(),
			Kills:    p.Kills,
			Deaths:   p.Deaths,
			Assists:  p.Assists,
			KDA:      round2(p.KDA()),
			GPM:      p.GPM,
			XPM:      p.XPM,
			LastHits: p.LastHits,
			IsFocus:  p.Slot == slot,
		})
	}

	type findingEntry struct {
		Severity   string  `json:"severity"`
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Title      string  `json:"title"`
		Detail     string  `json:"detail"`
	}
	findings := make([]findingEntry, 0, len(a.Findings))
	for _, f := range a.Findings {
		findings = append(findings, findingEntry{
			Severity:   string(f.Severity),
			Category:   f.Category,
			Confidence: round2(f.Confidence),
			Title:      f.Title,
			Detail:     f.Description,
		})
	}

	winner := "dire"
	if match.RadiantWin {
		winner = "radiant"
	}
	doc := map[string]any{
		"subject":       "match_player",
		"match_id":      match.MatchID,
		"duration_secs": match.DurationSecs,
		"winner":        winner,
		"patch":         match.Patch,
		"score":         round2(a.Score),
		"summary":       a.Summary,
		"players":       entries,
		"findings":      findings,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: askSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		// Provide a cleaner error message for common API errors.
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
