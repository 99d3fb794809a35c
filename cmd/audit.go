package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/obsidiansec/auditlens/api/schemas"
	"github.com/obsidiansec/auditlens/internal/interpret"
	"github.com/obsidiansec/auditlens/internal/llmclient"
	"github.com/obsidiansec/auditlens/internal/observability"
	"github.com/obsidiansec/auditlens/internal/reporting"
	"github.com/obsidiansec/auditlens/internal/store"
)

// newAuditCmd creates and configures the `audit` command: request a review
// for one or more contract files, interpret the raw reports and render them.
func newAuditCmd() *cobra.Command {
	var (
		description string
		format      string
		output      string
		save        bool
		concurrency int
	)

	auditCmd := &cobra.Command{
		Use:   "audit [contracts...]",
		Short: "Requests an AI security review for the given contract files and interprets the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			// errgroup.SetLimit(0) would block every Go call forever.
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1, got %d", concurrency)
			}

			if format == "" {
				format = cfg.Report.Format
			}
			if output == "" {
				output = cfg.Report.Output
			}

			client, err := llmclient.NewClient(cfg.LLM, logger)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}

			var auditStore schemas.AuditStore
			if save {
				if cfg.Database.URL == "" {
					return fmt.Errorf("--save requires database.url to be configured")
				}
				pool, err := pgxpool.New(ctx, cfg.Database.URL)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer pool.Close()
				if auditStore, err = store.New(ctx, pool, logger); err != nil {
					return err
				}
			}

			interpreter := interpret.New(interpret.Options{
				MinDocumentLength: cfg.Interpreter.MinDocumentLength,
			}, logger)

			reports := make([]*schemas.AuditReport, len(args))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					report, err := runAudit(gctx, path, description, client, interpreter, logger)
					if err != nil {
						return err
					}
					reports[i] = report
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			reporter, err := reporting.New(format, output)
			if err != nil {
				return err
			}
			defer reporter.Close()

			for _, report := range reports {
				if err := reporter.Write(report); err != nil {
					return err
				}
				if auditStore != nil {
					if err := auditStore.SaveReport(ctx, report); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	auditCmd.Flags().StringVarP(&description, "description", "d", "", "free-form description of the contract under review")
	auditCmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, markdown or text")
	auditCmd.Flags().StringVarP(&output, "output", "o", "", "output path, or stdout")
	auditCmd.Flags().BoolVar(&save, "save", false, "persist the interpreted report to the audit store")
	auditCmd.Flags().IntVar(&concurrency, "concurrency", 2, "number of contracts audited in parallel")
	return auditCmd
}

// runAudit performs the full pipeline for one contract file: read source,
// obtain the raw report upstream, interpret it into findings and a summary.
func runAudit(
	ctx context.Context,
	path, description string,
	client schemas.LLMClient,
	interpreter *interpret.Interpreter,
	logger *zap.Logger,
) (*schemas.AuditReport, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract %s: %w", path, err)
	}

	prompt := llmclient.BuildAuditPrompt(schemas.AuditRequest{
		Code:        string(code),
		Description: description,
	})

	logger.Info("Requesting audit", zap.String("contract", path))
	rawReport, err := client.GenerateResponse(ctx, prompt)
	if err != nil {
		// Upstream failures surface here, in the calling layer; the
		// interpreter only ever sees successfully produced text.
		return nil, fmt.Errorf("audit request for %s failed: %w", path, err)
	}

	findings, summary := interpreter.Interpret(rawReport)
	return &schemas.AuditReport{
		AuditID:      uuid.New().String(),
		ContractName: filepath.Base(path),
		CreatedAt:    time.Now().UTC(),
		RawReport:    rawReport,
		Findings:     findings,
		Summary:      summary,
	}, nil
}
