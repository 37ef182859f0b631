package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Garsondee/Sheepdog-Run/internal/config"
	"github.com/Garsondee/Sheepdog-Run/internal/game"
	"github.com/Garsondee/Sheepdog-Run/internal/logging"
)

var (
	runs       int
	ticks      int
	seedBase   int64
	seedStep   int64
	obstacles  int
	policyName string
	configPath string
	verbose    bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#2a3850")).Padding(0, 1)
)

// policies maps --policy values to dog drivers.
var policies = map[string]game.Policy{
	"dive": game.DivePolicy,
	"seek": game.SeekPolicy,
	"idle": game.IdlePolicy,
}

type runStats struct {
	runIndex int
	seed     int64
	finished bool

	result game.RoundResult

	cleared       int
	injured       int
	lost          int
	firstLossTick int
}

var rootCmd = &cobra.Command{
	Use:   "headless-report",
	Short: "Play seeded rounds without a window and summarise the outcomes",
	Long: `Drives the dog with a fixed policy over several seeded rounds and reports
how each round ended, the score, and what the flock ran into.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.IntVar(&runs, "runs", 5, "number of headless rounds")
	f.IntVar(&ticks, "ticks", 3600, "tick limit per round")
	f.Int64Var(&seedBase, "seed-base", 42, "obstacle seed for run 1")
	f.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	f.IntVar(&obstacles, "obstacles", 0, "obstacle count override (0 keeps the config value)")
	f.StringVar(&policyName, "policy", "seek", "dog policy: "+strings.Join(policyNames(), ", "))
	f.StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	f.BoolVarP(&verbose, "verbose", "v", false, "log every event")
}

func run(_ *cobra.Command, _ []string) error {
	if runs <= 0 {
		return errors.New("--runs must be > 0")
	}
	if ticks <= 0 {
		return errors.New("--ticks must be > 0")
	}
	policy, ok := policies[policyName]
	if !ok {
		return fmt.Errorf("unsupported policy %q (supported: %s)", policyName, strings.Join(policyNames(), ", "))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if obstacles > 0 {
		cfg.Sim.ObstacleCount = obstacles
	}
	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	params := game.ParamsFromConfig(cfg)
	fmt.Println(titleStyle.Render("=== Headless Round Report ==="))
	fmt.Printf("%s policy=%s runs=%d ticks=%d seed_base=%d seed_step=%d obstacles=%d\n\n",
		labelStyle.Render("config:"), policyName, runs, ticks, seedBase, seedStep, params.ObstacleCount)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		ts := game.NewTestSim(
			game.WithParams(params),
			game.WithSeed(seed),
			game.WithPolicy(policy),
			game.WithLogger(logger),
			game.WithVerbose(verbose),
		)
		rs := playRun(i+1, seed, ts, ticks)
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(aggregate(all))
	return nil
}

// playRun plays one round and tallies the collision events it logged.
func playRun(runIndex int, seed int64, ts *game.TestSim, maxTicks int) runStats {
	res, finished := ts.PlayRound(maxTicks)
	rs := runStats{
		runIndex:      runIndex,
		seed:          seed,
		finished:      finished,
		result:        res,
		firstLossTick: -1,
	}
	if !finished {
		rs.result = ts.World.Result()
	}
	for _, e := range ts.Log.Entries() {
		if e.Category != "collision" {
			continue
		}
		switch e.Key {
		case "dog_cleared":
			rs.cleared++
		case "sheep_injured":
			rs.injured++
		case "sheep_lost":
			rs.lost++
			if rs.firstLossTick < 0 {
				rs.firstLossTick = e.Tick
			}
		}
	}
	return rs
}

func printRun(rs runStats) {
	outcome := outcomeLabel(rs)
	fmt.Printf("run %d seed=%d  %s  score=%d sheep=%d scroll=%.0f ticks=%d\n",
		rs.runIndex, rs.seed, outcome, rs.result.Score, rs.result.SheepLeft, rs.result.Scroll, rs.result.Ticks)
	fmt.Printf("  %s cleared=%d injured=%d lost=%d first_loss=%s\n",
		labelStyle.Render("events:"), rs.cleared, rs.injured, rs.lost, tickOrDash(rs.firstLossTick))
}

func outcomeLabel(rs runStats) string {
	if !rs.finished {
		return warnStyle.Render("timeout")
	}
	if rs.result.Outcome == game.OutcomeReachedRiver {
		return goodStyle.Render(rs.result.Outcome.String())
	}
	return badStyle.Render(rs.result.Outcome.String())
}

func tickOrDash(t int) string {
	if t < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", t)
}

// summary aggregates a batch of runs.
type summary struct {
	runs       int
	outcomes   map[string]int
	meanScore  float64
	meanSheep  float64
	bestScore  int
	bestSeed   int64
	worstScore int
	worstSeed  int64
	cleared    int
	injured    int
	lost       int
}

func aggregate(all []runStats) summary {
	s := summary{runs: len(all), outcomes: map[string]int{}}
	if len(all) == 0 {
		return s
	}
	s.bestScore = all[0].result.Score
	s.worstScore = all[0].result.Score
	s.bestSeed, s.worstSeed = all[0].seed, all[0].seed
	totalScore, totalSheep := 0, 0
	for _, rs := range all {
		key := "timeout"
		if rs.finished {
			key = rs.result.Outcome.String()
		}
		s.outcomes[key]++
		totalScore += rs.result.Score
		totalSheep += rs.result.SheepLeft
		s.cleared += rs.cleared
		s.injured += rs.injured
		s.lost += rs.lost
		if rs.result.Score > s.bestScore {
			s.bestScore, s.bestSeed = rs.result.Score, rs.seed
		}
		if rs.result.Score < s.worstScore {
			s.worstScore, s.worstSeed = rs.result.Score, rs.seed
		}
	}
	s.meanScore = float64(totalScore) / float64(len(all))
	s.meanSheep = float64(totalSheep) / float64(len(all))
	return s
}

func printAggregate(s summary) {
	keys := make([]string, 0, len(s.outcomes))
	for k := range s.outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Aggregate") + "\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %d/%d\n", labelStyle.Render(k+":"), s.outcomes[k], s.runs)
	}
	fmt.Fprintf(&b, "%s %.1f   %s %.2f\n", labelStyle.Render("mean score:"), s.meanScore, labelStyle.Render("mean sheep saved:"), s.meanSheep)
	fmt.Fprintf(&b, "%s %d (seed %d)   %s %d (seed %d)\n",
		labelStyle.Render("best:"), s.bestScore, s.bestSeed, labelStyle.Render("worst:"), s.worstScore, s.worstSeed)
	fmt.Fprintf(&b, "%s cleared=%d injured=%d lost=%d", labelStyle.Render("events:"), s.cleared, s.injured, s.lost)
	fmt.Println()
	fmt.Println(boxStyle.Render(b.String()))
}

func policyNames() []string {
	names := make([]string, 0, len(policies))
	for n := range policies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
