package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datalab-ufg/vinculo/internal/analytics"
	"github.com/datalab-ufg/vinculo/internal/config"
	"github.com/datalab-ufg/vinculo/internal/dataset"
	"github.com/datalab-ufg/vinculo/internal/driver"
	"github.com/datalab-ufg/vinculo/internal/loader"
	"github.com/datalab-ufg/vinculo/internal/match"
	"github.com/datalab-ufg/vinculo/internal/reconcile"
	"github.com/datalab-ufg/vinculo/internal/server"
)

var configPath string

func Execute() error {
	root := &cobra.Command{
		Use:           "vinculo",
		Short:         "Reconcile employment and education tables into a property graph",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.toml", "path to the TOML config file")

	root.AddCommand(newReconcileCmd(), newLoadCmd(), newQueryCmd(), newServeCmd())
	return root.Execute()
}

// loadConfig tolerates a missing config file but not a broken one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func connect(cfg *config.Config, log *zap.Logger) (driver.GraphDriver, error) {
	if cfg.Neo4j.Flavor == "memgraph" {
		return driver.NewMemgraphDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, log)
	}
	return driver.NewNeo4jDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, log)
}

func newReconcileCmd() *cobra.Command {
	var legacyEmployment, currentEmployment, legacyRemuneration, currentRemuneration string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Join the legacy and current snapshots into loadable tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			in := func(name string) string { return filepath.Join(cfg.Pipeline.DataDir, name) }
			out := func(name string) string { return filepath.Join(cfg.Pipeline.OutputDir, name) }

			legacy, err := dataset.ReadEmploymentSnapshot(in(legacyEmployment))
			if err != nil {
				return err
			}
			current, err := dataset.ReadEmploymentSnapshot(in(currentEmployment))
			if err != nil {
				return err
			}

			regions := dataset.NewRegionTable()
			rc := reconcile.New(match.Matcher{MinScore: cfg.Match.MinScore}, regions, log)

			combined, err := rc.Reconcile(legacy, current)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Pipeline.OutputDir, 0o755); err != nil {
				return err
			}
			if err := dataset.WriteCombinedEmployment(out("employment_joined.csv"), combined); err != nil {
				return err
			}
			log.Info("employment reconciled",
				zap.Int("legacy", len(legacy)),
				zap.Int("current", len(current)),
				zap.Int("joined", len(combined)))

			legacyRem, err := dataset.ReadRemunerationSnapshot(in(legacyRemuneration))
			if err != nil {
				return err
			}
			currentRem, err := dataset.ReadRemunerationSnapshot(in(currentRemuneration))
			if err != nil {
				return err
			}

			remuneration, err := rc.ReconcileRemuneration(legacyRem, currentRem)
			if err != nil {
				return err
			}
			if err := dataset.WriteRemuneration(out("remuneration_joined.csv"), remuneration); err != nil {
				return err
			}
			log.Info("remuneration reconciled", zap.Int("joined", len(remuneration)))

			return nil
		},
	}

	cmd.Flags().StringVar(&legacyEmployment, "legacy-employment", "employment_legacy.csv", "legacy employment snapshot, relative to the data dir")
	cmd.Flags().StringVar(&currentEmployment, "current-employment", "employment_current.csv", "current employment snapshot, relative to the data dir")
	cmd.Flags().StringVar(&legacyRemuneration, "legacy-remuneration", "remuneration_legacy.csv", "legacy remuneration snapshot, relative to the data dir")
	cmd.Flags().StringVar(&currentRemuneration, "current-remuneration", "remuneration_current.csv", "current remuneration snapshot, relative to the data dir")
	return cmd
}

func newLoadCmd() *cobra.Command {
	var educationFile string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the reconciled tables into the graph store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := context.Background()
			regions := dataset.NewRegionTable()

			education, err := dataset.ReadEducation(filepath.Join(cfg.Pipeline.DataDir, educationFile), regions, log)
			if err != nil {
				return err
			}
			employment, err := dataset.ReadCombinedEmployment(filepath.Join(cfg.Pipeline.OutputDir, "employment_joined.csv"))
			if err != nil {
				return err
			}
			remuneration, err := dataset.ReadRemuneration(filepath.Join(cfg.Pipeline.OutputDir, "remuneration_joined.csv"))
			if err != nil {
				return err
			}

			d, err := connect(cfg, log)
			if err != nil {
				return err
			}
			defer d.Close(ctx)

			l := loader.New(d, log)
			if err := l.BuildIndices(ctx); err != nil {
				return err
			}

			// Trajectory edges need the education and employment nodes in
			// place, and the sector map needs areas and sectors, so order
			// matters on a fresh store.
			sources := []loader.Source{
				&loader.EducationSource{Rows: education},
				&loader.EmploymentSource{Rows: employment, Regions: regions},
				&loader.TrajectorySource{Rows: education},
				&loader.RemunerationSource{Rows: remuneration},
				loader.NewSectorMapSource(),
			}
			for _, src := range sources {
				stats, err := l.Load(ctx, src)
				if err != nil {
					return err
				}
				log.Info("source loaded",
					zap.String("source", src.Kind()),
					zap.Int("rows", stats.Rows),
					zap.Int("skipped", stats.Skipped))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&educationFile, "education", "education.csv", "education table, relative to the data dir")
	return cmd
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [name]",
		Short: "Run one canned analytical query, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := context.Background()
			d, err := connect(cfg, log)
			if err != nil {
				return err
			}
			defer d.Close(ctx)

			runner := analytics.NewRunner(d, log)

			names := make([]string, 0, 1)
			if len(args) == 1 {
				names = append(names, args[0])
			} else {
				for _, q := range runner.List() {
					names = append(names, q.Name)
				}
			}

			if err := os.MkdirAll(cfg.Pipeline.OutputDir, 0o755); err != nil {
				return err
			}
			for _, name := range names {
				result, err := runner.Run(ctx, name)
				if err != nil {
					return err
				}
				path := filepath.Join(cfg.Pipeline.OutputDir, name+".csv")
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := analytics.WriteCSV(f, result); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Printf("%s: %d rows -> %s\n", name, len(result.Rows), path)
			}

			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the canned queries and graph statistics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			d, err := connect(cfg, log)
			if err != nil {
				return err
			}
			defer d.Close(context.Background())

			r := server.NewServer(d, log).SetupRouter()
			log.Info("starting server", zap.String("port", cfg.Server.Port))
			return r.Run(":" + cfg.Server.Port)
		},
	}
}
