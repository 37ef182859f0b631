package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Garsondee/Sheepdog-Run/internal/config"
	"github.com/Garsondee/Sheepdog-Run/internal/game"
	"github.com/Garsondee/Sheepdog-Run/internal/logging"
)

var (
	configPath  string
	seed        int64
	assetsDir   string
	verbose     bool
	writeConfig string
)

var rootCmd = &cobra.Command{
	Use:   "sheepdog",
	Short: "Herd the flock down the mountain to the river",
	Long: `Steer the dog with the arrow keys, or hold a finger (or the mouse) in an
outer zone of the screen. The flock follows the dog; rocks and logs cost
sheep, brambles injure them. Reach the river with as many as you can.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "obstacle layout seed (0 uses the clock)")
	rootCmd.Flags().StringVar(&assetsDir, "assets", "", "sprite directory (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&writeConfig, "write-config", "", "write the effective config to this path and exit")
}

// resolveConfig loads the config file and applies command-line overrides.
// seedOverride is nil when --seed was not given.
func resolveConfig(path string, seedOverride *int64, assets string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if seedOverride != nil {
		cfg.Sim.Seed = *seedOverride
	}
	if assets != "" {
		cfg.Assets.Dir = assets
	}
	return cfg, nil
}

func run(cmd *cobra.Command, _ []string) error {
	var seedOverride *int64
	if cmd.Flags().Changed("seed") {
		seedOverride = &seed
	}
	cfg, err := resolveConfig(configPath, seedOverride, assetsDir)
	if err != nil {
		return err
	}
	if writeConfig != "" {
		if err := cfg.Save(writeConfig); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", writeConfig)
		return nil
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g := game.New(ctx, cfg, logger)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Sim.TPS)

	runErr := ebiten.RunGame(g)
	cancel()
	if err := g.Close(); err != nil {
		logger.Warn("asset loading did not finish cleanly", zap.Error(err))
	}
	if runErr != nil {
		return fmt.Errorf("game loop: %w", runErr)
	}
	logger.Info("exited", zap.Int("rounds", g.World().Round))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
