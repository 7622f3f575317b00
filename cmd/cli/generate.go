package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/pkg/model"
)

type warningJson struct {
	Course             string `json:"course"`
	RegistrationNumber int    `json:"registration_number"`
	Code               string `json:"code"`
	Reason             string `json:"reason"`
}

type generateOutput struct {
	Timetables []model.Timetable `json:"timetables"`
	Warnings   []warningJson     `json:"warnings"`
}

func newGenerateCmd(application *app) *cobra.Command {
	var inputFile, outFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enumerate the timetables of the courses listed in an input file",
		Long: `Reads the requested courses and blocked periods from a JSON input file,
fetches their sections from the configured catalog and writes every
conflict-free timetable as JSON. Exits with status 20 when none exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := model.InputFromJson(inputFile)
			if err != nil {
				return fmt.Errorf("cannot parse input file: %w", err)
			}

			repository, release, err := newRepository(ctx, application.cfg, application.logger)
			if err != nil {
				return err
			}
			defer release()

			generator := model.NewGenerator(repository, newCombinator(application.cfg.Engine), application.logger)
			result, err := generator.GenerateTimetables(ctx, input.Courses, input.Blocked)
			if err != nil {
				return fmt.Errorf("an error occurred during timetable generation: %w", err)
			}

			payload, err := json.MarshalIndent(generateOutput{
				Timetables: result.Timetables,
				Warnings: lo.Map(result.Warnings, func(warning model.ClassificationWarning, _ int) warningJson {
					return warningJson{
						Course:             warning.Course,
						RegistrationNumber: warning.Section.RegistrationNumber,
						Code:               warning.Section.Code,
						Reason:             warning.Reason,
					}
				}),
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("an error occurred while building output json: %w", err)
			}

			// Without an output file the results go to the standard output
			if outFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			} else if err := os.WriteFile(outFile, payload, 0666); err != nil {
				return fmt.Errorf("an error occurred while writing to the output file: %w", err)
			}

			application.logger.Info("timetables generated",
				zap.Int("timetables", len(result.Timetables)),
				zap.Int("warnings", len(result.Warnings)),
			)
			if len(result.Timetables) == 0 {
				return errNoTimetables
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to the input file")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
