package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/obsidiansec/auditlens/api/schemas"
)

// DBPool abstracts pgxpool.Pool so the store can be exercised against a mock.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is the PostgreSQL implementation of schemas.AuditStore. Findings and
// summary are persisted as opaque JSONB attached to the audit record; the
// store knows nothing about their internal structure beyond serializability.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

var _ schemas.AuditStore = (*Store)(nil)

// New creates a store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// SaveReport persists one finished audit report inside a transaction.
func (s *Store) SaveReport(ctx context.Context, report *schemas.AuditReport) error {
	findingsJSON, err := json.Marshal(report.Findings)
	if err != nil {
		return fmt.Errorf("failed to marshal findings: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit returns pgx.ErrTxClosed;
		// errors.Is keeps that from logging as a failure.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	const insertAudit = `
		INSERT INTO audits (id, contract_name, created_at, raw_report, findings, summary)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET raw_report = EXCLUDED.raw_report,
		    findings   = EXCLUDED.findings,
		    summary    = EXCLUDED.summary`

	if _, err := tx.Exec(ctx, insertAudit,
		report.AuditID, report.ContractName, report.CreatedAt,
		report.RawReport, findingsJSON, summaryJSON); err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info("Audit report persisted",
		zap.String("audit_id", report.AuditID),
		zap.Int("findings", report.Summary.TotalFindings))
	return nil
}

// GetReport retrieves a previously saved report by audit ID.
func (s *Store) GetReport(ctx context.Context, auditID string) (*schemas.AuditReport, error) {
	const selectAudit = `
		SELECT id, contract_name, created_at, raw_report, findings, summary
		FROM audits WHERE id = $1`

	var (
		report       schemas.AuditReport
		findingsJSON []byte
		summaryJSON  []byte
	)
	row := s.pool.QueryRow(ctx, selectAudit, auditID)
	if err := row.Scan(&report.AuditID, &report.ContractName, &report.CreatedAt,
		&report.RawReport, &findingsJSON, &summaryJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("audit %s not found: %w", auditID, err)
		}
		return nil, fmt.Errorf("failed to query audit: %w", err)
	}

	if err := json.Unmarshal(findingsJSON, &report.Findings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal findings: %w", err)
	}
	if err := json.Unmarshal(summaryJSON, &report.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &report, nil
}
