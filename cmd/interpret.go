package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/obsidiansec/auditlens/api/schemas"
	"github.com/obsidiansec/auditlens/internal/interpret"
	"github.com/obsidiansec/auditlens/internal/observability"
	"github.com/obsidiansec/auditlens/internal/reporting"
)

// newInterpretCmd creates the `interpret` command: run the interpretation
// engine over an already-produced report text, without any upstream call.
// Useful for re-processing stored raw reports after heuristic changes.
func newInterpretCmd() *cobra.Command {
	var (
		format string
		output string
	)

	interpretCmd := &cobra.Command{
		Use:   "interpret [report-file]",
		Short: "Interprets an existing raw audit report into structured findings",
		Long: `Interprets an existing raw audit report into structured findings.
Reads the report text from the given file, or from stdin when the argument
is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			var (
				raw  []byte
				name string
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				name = filepath.Base(args[0])
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read report text: %w", err)
			}

			interpreter := interpret.New(interpret.Options{
				MinDocumentLength: cfg.Interpreter.MinDocumentLength,
			}, logger)
			findings, summary := interpreter.Interpret(string(raw))

			if format == "" {
				format = cfg.Report.Format
			}
			if output == "" {
				output = cfg.Report.Output
			}
			reporter, err := reporting.New(format, output)
			if err != nil {
				return err
			}
			defer reporter.Close()

			return reporter.Write(&schemas.AuditReport{
				AuditID:      uuid.New().String(),
				ContractName: name,
				CreatedAt:    time.Now().UTC(),
				Findings:     findings,
				Summary:      summary,
			})
		},
	}

	interpretCmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, markdown or text")
	interpretCmd.Flags().StringVarP(&output, "output", "o", "", "output path, or stdout")
	return interpretCmd
}
