package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/jengzang/shark-tracker-go/internal/api"
	"github.com/jengzang/shark-tracker-go/internal/config"
	"github.com/jengzang/shark-tracker-go/internal/database"
	"github.com/jengzang/shark-tracker-go/internal/middleware"
	"github.com/jengzang/shark-tracker-go/internal/repository"
	"github.com/jengzang/shark-tracker-go/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:          "shark-tracker",
		Short:        "Shark sighting dashboard backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 加载配置
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			return applyFlags(cmd, cfg)
		},
	}
	root.PersistentFlags().String("data", "", "CSV table path (overrides DATA_PATH)")
	root.PersistentFlags().String("db", "", "snapshot store path or URL (overrides DB_PATH)")
	root.PersistentFlags().String("db-driver", "", "snapshot store driver: sqlite or postgres")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serve.Flags().String("port", "", "listen address (overrides PORT)")
	serve.Flags().String("source", "", "dataset source: csv or db")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load the CSV table into the snapshot store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cfg)
		},
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Print snapshot metadata and per-region sighting totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), cmd, cfg)
		},
	}

	token := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for the API (requires JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, cfg)
		},
	}
	token.Flags().String("subject", "dashboard", "token subject")
	token.Flags().Duration("ttl", 24*time.Hour, "token lifetime")

	root.AddCommand(serve, importCmd, summary, token)
	root.RunE = serve.RunE
	return root
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	overrides := map[string]*string{
		"data":      &cfg.DataPath,
		"db":        &cfg.DBPath,
		"db-driver": &cfg.DBDriver,
		"port":      &cfg.Port,
		"source":    &cfg.DataSource,
	}
	for name, dst := range overrides {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		*dst = f.Value.String()
	}
	return cfg.Validate()
}

func runServe(ctx context.Context, cfg *config.Config) error {
	var repo *repository.SightingRepository
	if cfg.DBPath != "" {
		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = repository.NewSightingRepository(db)
	}

	// 数据只加载一次，之后只读共享
	data, err := service.LoadDataset(ctx, cfg.DataSource, cfg.DataPath, repo)
	if err != nil {
		log.Printf("Failed to load dataset: %v", err)
		return err
	}

	dashboard := service.NewDashboardService(data, cfg.MarkerRadiusScale)
	router := api.SetupRouter(cfg, dashboard)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func runImport(ctx context.Context, cfg *config.Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("import requires a snapshot store (--db or DB_PATH)")
	}
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = service.ImportCSV(ctx, cfg.DataPath, repository.NewSightingRepository(db))
	return err
}

func runSummary(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("summary requires a snapshot store (--db or DB_PATH)")
	}
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewSightingRepository(db)
	snap, ok, err := repo.Snapshot(ctx)
	if err != nil {
		return err
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	totals, err := repo.RegionTotals(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ok {
		fmt.Fprintf(out, "source:   %s\nimported: %s\n", snap.Source, snap.ImportedAt.Format(time.RFC3339))
	} else {
		fmt.Fprintln(out, "source:   (nothing imported)")
	}
	fmt.Fprintf(out, "records:  %d\n\n", count)

	regions := make([]string, 0, len(totals))
	for r := range totals {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	for _, r := range regions {
		fmt.Fprintf(out, "%-24s %d\n", r, totals[r])
	}
	return nil
}

func runToken(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("token requires JWT_SECRET to be set")
	}
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	signed, err := middleware.IssueToken([]byte(cfg.JWTSecret), subject, ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	// 初始化数据库
	return database.Open(ctx, database.Config{Driver: cfg.DBDriver, DSN: cfg.DBPath})
}
