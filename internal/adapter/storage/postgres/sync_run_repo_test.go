package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncRunCols() []string {
	return []string{"id", "connector_id", "sync_type", "status", "trigger", "started_at", "completed_at",
		"records_processed", "errors"}
}

func TestSyncRunRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	run := &domain.SyncRun{
		ID:          uuid.New(),
		ConnectorID: uuid.New(),
		SyncType:    domain.SyncTypeFull,
		Status:      domain.SyncRunStatusRunning,
		Trigger:     domain.SyncTriggerAPI,
		StartedAt:   time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sync_runs").
		WithArgs(run.ID, run.ConnectorID, "full", "running", "api", run.StartedAt, []byte(`{}`), []byte(`[]`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Create(context.Background(), tx, run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_Complete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	done := time.Now().UTC()
	run := &domain.SyncRun{
		ID:          uuid.New(),
		Status:      domain.SyncRunStatusCompleted,
		CompletedAt: &done,
	}
	run.RecordsProcessed.Set("customers", 3)
	run.RecordsProcessed.Set("orders", 0)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sync_runs").
		WithArgs(run.ID, "completed", &done, []byte(`{"customers":3,"orders":0}`), []byte(`[]`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Complete(context.Background(), tx, run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_Complete_AlreadyTerminal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	done := time.Now().UTC()
	run := &domain.SyncRun{ID: uuid.New(), Status: domain.SyncRunStatusFailed, CompletedAt: &done}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sync_runs").
		WithArgs(run.ID, "failed", &done, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Complete(context.Background(), tx, run)
	assert.True(t, errors.Is(err, ErrRunAlreadyTerminal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_ListByConnector(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	connectorID := uuid.New()
	started := time.Now().UTC().Add(-time.Minute)
	done := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM sync_runs\\s+WHERE connector_id").
		WithArgs(connectorID, 5).
		WillReturnRows(pgxmock.NewRows(syncRunCols()).AddRow(
			uuid.New(), connectorID, "incremental", "failed", "schedule", started, &done,
			[]byte(`{"products":2,"customers":1}`),
			[]byte(`[{"type":"authentication","message":"token expired"}]`),
		))

	runs, err := repo.ListByConnector(context.Background(), connectorID, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, domain.SyncTypeIncremental, run.SyncType)
	assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
	assert.Equal(t, domain.SyncTriggerSchedule, run.Trigger)
	assert.Equal(t, []string{"products", "customers"}, run.RecordsProcessed.Entities())
	require.Len(t, run.Errors, 1)
	assert.Equal(t, "authentication", run.Errors[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_ListStale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	cutoff := time.Now().UTC().Add(-30 * time.Minute)

	mock.ExpectQuery("SELECT .+ FROM sync_runs\\s+WHERE status = 'running' AND started_at").
		WithArgs(cutoff, 100).
		WillReturnRows(pgxmock.NewRows(syncRunCols()))

	runs, err := repo.ListStale(context.Background(), cutoff, 100)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
