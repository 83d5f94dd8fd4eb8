package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/fightlab/go-fight-metrics/internal/matchup"
	"github.com/fightlab/go-fight-metrics/internal/model"
	"github.com/fightlab/go-fight-metrics/internal/storage"
)

const analyzeSystemPrompt = `You are an MMA performance analyst. You are given structured data from a
fight-metrics tool and a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and concrete — focus on what the numbers actually show.
- Avoid generic MMA commentary unless it directly explains a pattern in the data.

Metrics glossary:
- Profiles are computed "as of" a date: only fights before that date count.
- Inactivity penalty: multiplier < 1.0 discounting output stats during a
  ring-rust window (roughly 1.2–2 years out); outside it, no discount.
- Weighted win rate: recent-window win rate with newer fights weighted more.
- Finish rate: share of recent fights won inside the distance (KO or sub).
- Rank score: divisional ranking mapped to [0,1]; 1.0 is the champion, 0.4
  is unranked.
- Opp quality: blend of an opponent's rank, career win pct, and experience,
  in [0,1]. Elite wins: wins over opponents scoring above 0.75.
- Cardio fade: share of recent losses coming in round 3 or later, scaled.
- Advantage features: A-minus-B differences; positive favors fighter A.
- ko_potential / sub_potential: one side's finishing tendency times the
  other's matching vulnerability, combined asymmetrically.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeAsOf   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzeFighterCmd = &cobra.Command{
	Use:   "fighter <name> <question>",
	Short: "Analyze one fighter's profile with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeFighter,
}

var analyzeMatchupCmd = &cobra.Command{
	Use:   "matchup <fighter-a> <fighter-b> <question>",
	Short: "Analyze a matchup with AI",
	Args:  cobra.ExactArgs(3),
	RunE:  runAnalyzeMatchup,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAsOf, "as-of", "", "reference date YYYY-MM-DD (default: today)")

	analyzeCmd.AddCommand(analyzeFighterCmd)
	analyzeCmd.AddCommand(analyzeMatchupCmd)
}

func runAnalyzeFighter(cmd *cobra.Command, args []string) error {
	name, question := args[0], args[1]
	asOf, err := parseAsOf(analyzeAsOf)
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	p, err := loadProfiler(db)
	if err != nil {
		return err
	}
	prof := p.GetProfile(name, asOf)
	if prof == nil {
		return fmt.Errorf("no fighter named %q in store", name)
	}
	bouts, err := db.BoutsForFighter(name)
	if err != nil {
		return fmt.Errorf("query bouts: %w", err)
	}

	contextJSON, err := buildFighterContext(prof, bouts, asOf.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

func runAnalyzeMatchup(cmd *cobra.Command, args []string) error {
	a, b, question := args[0], args[1], args[2]
	asOf, err := parseAsOf(analyzeAsOf)
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	p, err := loadProfiler(db)
	if err != nil {
		return err
	}
	pa := p.GetProfile(a, asOf)
	pb := p.GetProfile(b, asOf)
	if pa == nil || pb == nil {
		return fmt.Errorf("both fighters must be in the store (%q, %q)", a, b)
	}
	feats := matchup.New(p).Features(a, b, asOf)

	doc := map[string]interface{}{
		"subject":                     "matchup",
		"as_of":                       asOf.Format("2006-01-02"),
		"fighter_a":                   profileDoc(pa),
		"fighter_b":                   profileDoc(pb),
		"advantages_positive_favor_a": feats,
	}
	contextJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, string(contextJSON), question)
}

// buildFighterContext serialises one profile plus recent results into
// compact JSON.
func buildFighterContext(prof *model.Profile, bouts []model.Bout, asOf string) (string, error) {
	type boutEntry struct {
		Date     string `json:"date"`
		Opponent string `json:"opponent"`
		Result   string `json:"result"`
		Method   string `json:"method"`
		Round    int    `json:"round"`
	}
	recent := make([]boutEntry, 0, 8)
	for _, b := range bouts {
		if len(recent) == 8 {
			break
		}
		recent = append(recent, boutEntry{
			Date:     b.Date.Format("2006-01-02"),
			Opponent: b.Opponent,
			Result:   string(b.Outcome),
			Method:   b.Method,
			Round:    b.Round,
		})
	}

	doc := map[string]interface{}{
		"subject":      "fighter",
		"as_of":        asOf,
		"profile":      profileDoc(prof),
		"recent_bouts": recent,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// profileDoc flattens a profile for the model: categorical labels plus the
// full numeric map.
func profileDoc(p *model.Profile) map[string]interface{} {
	return map[string]interface{}{
		"name":            p.Name,
		"stance":          p.Stance,
		"striking_style":  p.StrikingStyle,
		"grappling_style": p.GrapplingStyle,
		"stats":           p.Numeric(),
	}
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
			{Text: analyzeSystemPrompt},
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
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
