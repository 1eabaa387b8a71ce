package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"shopfloor/cmd"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/services"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "shopfloor",
	Short: "Part lifecycle and task assignment service",
	Long: `shopfloor tracks fabricated parts from quality check to installation.
Operators take parts, complete work on them or divert them into exception states;
packed parts receive a QR packing code that the site scans to confirm delivery.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	rootCmd.AddCommand(serveCmd(), migrateCmd(), boardCmd(), metricsCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	if err := cmd.LoadDotEnv(viper.GetString("env-file")); err != nil {
		log.Fatalf("Error loading env file: %v", err)
	}
	cmd.SetDefaults(viper.GetViper())
	cmd.BindEnv(viper.GetViper())
}

func addPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("http-port", "8080", "HTTP listen port")
	flags.String("db-host", "localhost", "postgres host")
	flags.String("db-port", "5432", "postgres port")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("blob-driver", "fs", "packing-code image store (fs, s3)")
	for _, name := range []string{"env-file", "http-port", "db-host", "db-port", "log-level", "blob-driver"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func loadConfig() (cmd.Config, *slog.Logger, error) {
	config := cmd.ConfigFrom(viper.GetViper())
	if err := config.Validate(); err != nil {
		return cmd.Config{}, nil, err
	}
	level, _ := config.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	return config, logger, nil
}

func openDB(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// withRoot runs fn against a fully wired composition root.
func withRoot(ctx context.Context, fn func(root *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error) error {
	config, logger, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(config)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	root, err := cmd.NewCompositionRoot(ctx, config, db, logger)
	if err != nil {
		return err
	}
	return fn(root, config, logger)
}

func serveCmd() *cobra.Command {
	var migrate bool
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withRoot(ctx, func(root *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
				if migrate {
					if err := root.Migrate(); err != nil {
						return err
					}
				}
				return serve(ctx, root, config, logger)
			})
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return c
}

func serve(ctx context.Context, root *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	server, err := root.CreateHTTPServer()
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(gommonLevel(config.LogLevel))
	server.Register(e)

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "port", config.HTTPPort)
		if startErr := e.Start("0.0.0.0:" + config.HTTPPort); !errors.Is(startErr, http.ErrServerClosed) {
			errCh <- startErr
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.InfoContext(shutdownCtx, "Shutting down")
	return e.Shutdown(shutdownCtx)
}

func gommonLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			return withRoot(c.Context(), func(root *cmd.CompositionRoot, _ cmd.Config, logger *slog.Logger) error {
				if err := root.Migrate(); err != nil {
					return err
				}
				logger.InfoContext(c.Context(), "Schema is up to date")
				return nil
			})
		},
	}
}

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the work board (parts grouped by state)",
		RunE: func(c *cobra.Command, _ []string) error {
			return withRoot(c.Context(), func(root *cmd.CompositionRoot, _ cmd.Config, _ *slog.Logger) error {
				buckets, err := root.CreateGetPartsByAllStatesQueryHandler().
					Handle(c.Context(), queries.NewGetPartsByAllStatesQuery())
				if err != nil {
					return err
				}
				printBoard(buckets)
				return nil
			})
		},
	}
}

func printBoard(buckets []queries.StateBucket) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Column", "Part", "Project", "Client", "Type", "State", "Operator"})
	for _, b := range buckets {
		if len(b.Parts) == 0 {
			tw.AppendRow(table.Row{b.Label, "-", "", "", "", "", ""})
			continue
		}
		for _, p := range b.Parts {
			operator := ""
			if p.ActiveOperatorID != nil {
				operator = strconv.FormatInt(*p.ActiveOperatorID, 10)
			}
			tw.AppendRow(table.Row{b.Label, p.ID.String(), p.ProjectID, p.ClientAlias, p.PartTypeName, p.State.Label(), operator})
		}
		tw.AppendSeparator()
	}
	tw.Render()
}

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <operator-id>",
		Short: "Print an operator's task metrics over the configured window",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			operatorID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("operator id: %w", err)
			}
			query, err := queries.NewGetOperatorMetricsQuery(operatorID, nil, nil)
			if err != nil {
				return err
			}
			return withRoot(c.Context(), func(root *cmd.CompositionRoot, _ cmd.Config, _ *slog.Logger) error {
				metrics, handleErr := root.CreateGetOperatorMetricsQueryHandler().Handle(c.Context(), query)
				if handleErr != nil {
					return handleErr
				}
				printMetrics(metrics)
				return nil
			})
		},
	}
}

func printMetrics(m services.OperatorMetrics) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle(fmt.Sprintf("Operator %d, %s to %s", m.OperatorID,
		m.Window.From.Format(time.DateOnly), m.Window.To.Format(time.DateOnly)))
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Tasks", m.TotalTasks},
		{"Average duration", m.FormattedAverage()},
		{"Last 24h", m.CountsByPeriod.Day},
		{"This month", m.CountsByPeriod.Month},
		{"This year", m.CountsByPeriod.Year},
	})
	tw.AppendSeparator()
	states := make([]part.State, 0, len(m.CountsByInitialState))
	for state := range m.CountsByInitialState {
		states = append(states, state)
	}
	slices.Sort(states)
	for _, state := range states {
		tw.AppendRow(table.Row{"Started in " + state.Label(), m.CountsByInitialState[state]})
	}
	tw.Render()
}
