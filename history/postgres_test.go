package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &Postgres{db: mock}, mock
}

var historyColumns = []string{
	"slug", "title", "content_hash", "has_score", "overall", "keyword_optimization",
	"content_quality", "technical_seo", "user_experience", "pass_rate", "recorded_at",
}

func TestPostgresEnsureSchema(t *testing.T) {
	p, mock := newMockPostgres(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seo_score_history").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, p.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordSendsEveryColumn(t *testing.T) {
	p, mock := newMockPostgres(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := Entry{
		Slug:                "go-testing",
		Title:               "Go testing",
		ContentHash:         "abc",
		HasScore:            true,
		Overall:             0.81,
		KeywordOptimization: 0.7,
		ContentQuality:      0.9,
		TechnicalSEO:        0.8,
		UserExperience:      0.85,
		PassRate:            70,
		RecordedAt:          at,
	}

	mock.ExpectExec("INSERT INTO seo_score_history").
		WithArgs("go-testing", "Go testing", "abc", true, 0.81, 0.7, 0.9, 0.8, 0.85, 70, at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, p.Record(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordWrapsError(t *testing.T) {
	p, mock := newMockPostgres(t)
	mock.ExpectExec("INSERT INTO seo_score_history").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err := p.Record(context.Background(), Entry{Slug: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record history for a")
}

func TestPostgresRecentScansRows(t *testing.T) {
	p, mock := newMockPostgres(t)
	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	rows := pgxmock.NewRows(historyColumns).
		AddRow("go-testing", "Go testing", "h2", true, 0.9, 0.8, 0.9, 1.0, 0.9, 80, newer).
		AddRow("go-testing", "Go testing", "h1", false, 0.0, 0.0, 0.0, 0.0, 0.0, 40, older)
	mock.ExpectQuery("SELECT slug, title").
		WithArgs("go-testing", 2).
		WillReturnRows(rows)

	got, err := p.Recent(context.Background(), "go-testing", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "h2", got[0].ContentHash)
	assert.True(t, got[0].HasScore)
	assert.Equal(t, 80, got[0].PassRate)
	assert.True(t, got[0].RecordedAt.Equal(newer))
	assert.False(t, got[1].HasScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecentQueryError(t *testing.T) {
	p, mock := newMockPostgres(t)
	mock.ExpectQuery("SELECT slug, title").
		WithArgs("x", 5).
		WillReturnError(errors.New("timeout"))

	_, err := p.Recent(context.Background(), "x", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query history for x")
}
