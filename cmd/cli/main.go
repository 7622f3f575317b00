package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/config"
	"github.com/limaJavier/coursetable/internal/logger"
)

const (
	exitFailure      = 1
	exitNoTimetables = 20
)

// errNoTimetables is returned by generate when the request is valid but nothing fits
var errNoTimetables = errors.New("no conflict-free timetable exists for the requested courses")

// app holds what every command needs once the persistent flags are parsed
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	application := &app{}

	rootCmd := &cobra.Command{
		Use:   "coursetable",
		Short: "Builds every conflict-free course timetable",
		Long: `coursetable enumerates the timetables that take one block of sections
(a lecture and, when the course has them, its paired lab or tutorial) from every
requested course such that no two sections meet at the same time and no section
falls into a blocked period.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(application.configPath)
			if err != nil {
				return err
			}
			application.cfg = cfg

			application.logger, err = logger.NewLogger(cfg.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if application.logger != nil {
				_ = application.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&application.configPath, "config", "", "Path to the configuration file (defaults to ./coursetable.yaml or ./config/coursetable.yaml when present)")

	rootCmd.AddCommand(newGenerateCmd(application), newImportCmd(application))
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errNoTimetables):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitNoTimetables)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitFailure)
	}
}
