package store

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/obsidiansec/auditlens/api/schemas"
)

// flexibleSQLMatcher builds a whitespace-insensitive regex for SQL mocks.
func flexibleSQLMatcher(sql string) string {
	trimmed := strings.TrimSpace(sql)
	return regexp.MustCompile(`\s+`).ReplaceAllString(regexp.QuoteMeta(trimmed), `\s+`)
}

func sampleReport() *schemas.AuditReport {
	return &schemas.AuditReport{
		AuditID:      uuid.New().String(),
		ContractName: "Vault.sol",
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		RawReport:    "### Vulnerability 1: Reentrancy\n**Severity**: Critical\n",
		Findings: []schemas.Finding{{
			VulnerabilityName: "Reentrancy",
			Severity:          schemas.SeverityCritical,
			Explanation:       "External call before state update.",
		}},
		Summary: schemas.Summary{
			TotalFindings: 1,
			CriticalCount: 1,
			RiskScore:     10,
			OverallRisk:   schemas.RiskCritical,
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("should return error if ping fails", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		pingErr := errors.New("database unavailable")
		mockPool.ExpectPing().WillReturnError(pingErr)

		_, err = New(context.Background(), mockPool, zap.NewNop())
		require.Error(t, err)
		assert.ErrorIs(t, err, pingErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestSaveReport(t *testing.T) {
	const insertSQL = `INSERT INTO audits`

	setup := func(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
		t.Helper()
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		t.Cleanup(mockPool.Close)

		mockPool.ExpectPing()
		s, err := New(context.Background(), mockPool, zap.NewNop())
		require.NoError(t, err)
		return s, mockPool
	}

	t.Run("commits the audit record", func(t *testing.T) {
		s, mockPool := setup(t)
		report := sampleReport()
		findingsJSON, _ := json.Marshal(report.Findings)
		summaryJSON, _ := json.Marshal(report.Summary)

		mockPool.ExpectBegin()
		mockPool.ExpectExec(insertSQL).
			WithArgs(report.AuditID, report.ContractName, report.CreatedAt,
				report.RawReport, findingsJSON, summaryJSON).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockPool.ExpectCommit()
		mockPool.ExpectRollback()

		require.NoError(t, s.SaveReport(context.Background(), report))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("rolls back when insert fails", func(t *testing.T) {
		s, mockPool := setup(t)
		execErr := errors.New("constraint violation")

		mockPool.ExpectBegin()
		mockPool.ExpectExec(insertSQL).WillReturnError(execErr)
		mockPool.ExpectRollback()

		err := s.SaveReport(context.Background(), sampleReport())
		require.Error(t, err)
		assert.ErrorIs(t, err, execErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("propagates begin failure", func(t *testing.T) {
		s, mockPool := setup(t)
		beginErr := errors.New("pool exhausted")
		mockPool.ExpectBegin().WillReturnError(beginErr)

		err := s.SaveReport(context.Background(), sampleReport())
		require.Error(t, err)
		assert.ErrorIs(t, err, beginErr)
	})
}

func TestGetReport(t *testing.T) {
	const selectSQL = `SELECT id, contract_name, created_at, raw_report, findings, summary FROM audits WHERE id = $1`

	setup := func(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
		t.Helper()
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		t.Cleanup(mockPool.Close)

		mockPool.ExpectPing()
		s, err := New(context.Background(), mockPool, zap.NewNop())
		require.NoError(t, err)
		return s, mockPool
	}

	t.Run("round-trips a saved report", func(t *testing.T) {
		s, mockPool := setup(t)
		want := sampleReport()
		findingsJSON, _ := json.Marshal(want.Findings)
		summaryJSON, _ := json.Marshal(want.Summary)

		mockPool.ExpectQuery(flexibleSQLMatcher(selectSQL)).
			WithArgs(want.AuditID).
			WillReturnRows(pgxmock.NewRows(
				[]string{"id", "contract_name", "created_at", "raw_report", "findings", "summary"},
			).AddRow(want.AuditID, want.ContractName, want.CreatedAt, want.RawReport, findingsJSON, summaryJSON))

		got, err := s.GetReport(context.Background(), want.AuditID)
		require.NoError(t, err)
		assert.Equal(t, want.AuditID, got.AuditID)
		assert.Equal(t, want.Findings, got.Findings)
		assert.Equal(t, want.Summary, got.Summary)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("missing audit reports not found", func(t *testing.T) {
		s, mockPool := setup(t)

		mockPool.ExpectQuery(flexibleSQLMatcher(selectSQL)).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		_, err := s.GetReport(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}
