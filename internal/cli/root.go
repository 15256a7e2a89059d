// Package cli implements the study command line.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/study/internal/config"
	"github.com/pablasso/study/internal/logging"
	"github.com/pablasso/study/internal/store"
	"github.com/pablasso/study/internal/study"
	"github.com/pablasso/study/internal/tui"
	"github.com/pablasso/study/internal/version"
)

// lockTimeout bounds how long a mutating command waits for the plan lock
// before reporting it as locked.
var lockTimeout = 10 * time.Second

// mutationContext bounds ctx for a command that writes the plan.
func mutationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, lockTimeout)
}

// app holds what every command shares: the config flag and the resolved
// configuration.
type app struct {
	configPath string
	debug      bool
	cfg        config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "study",
		Short: "Track a week-by-week study plan",
		Long: `Study tracks a Markdown study plan: what to study today, what is done,
and how far along you are. Run without arguments to browse the plan.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			if a.debug {
				logging.SetDebug(true)
			}
			return a.load()
		},
	}
	root.SetVersionTemplate("study " + version.String() + "\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.study/config.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newShowCmd(a),
		newTodayCmd(a),
		newProgressCmd(a),
		newCompleteCmd(a),
		newNotesCmd(a),
		newJournalCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newInitCmd(a),
		newHistoryCmd(a),
		newRemindCmd(a),
		newTUICmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// RunTUI loads the default configuration and opens the plan browser.
func RunTUI() error {
	a := &app{}
	if err := a.load(); err != nil {
		return err
	}
	return a.runTUI()
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the plan interactively",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}
}

func (a *app) runTUI() error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(s)
}

// load reads .env and resolves the configuration.
func (a *app) load() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Debug("cli", "data dir %s, plan %s", cfg.DataDir, cfg.PlanPath)
	return nil
}

func (a *app) openStore() (store.Store, error) {
	return store.Open(a.cfg)
}

// loadPlan loads the stored plan for read-only commands. A failing load falls
// back to the default plan so the commands still answer.
func (a *app) loadPlan(ctx context.Context, s store.Store) study.Plan {
	p, err := s.Load(ctx)
	if err != nil {
		logging.Warn("cli", "failed to load plan, using default: %v", err)
		return study.DefaultPlan()
	}
	return p
}

// withPlan opens the store, loads the plan and passes it to fn.
func (a *app) withPlan(ctx context.Context, fn func(study.Plan) error) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(a.loadPlan(ctx, s))
}
