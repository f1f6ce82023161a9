package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connector-hub/config"
	"connector-hub/internal/adapter/provider/shopify"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/internal/core/ports/mocks"
	"connector-hub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockTx implements pgx.Tx for testing
type mockTx struct {
	pgx.Tx
	committed bool
}

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error {
	m.committed = true
	return nil
}

type syncTestDeps struct {
	svc        *SyncServiceImpl
	connRepo   *mocks.MockConnectorRepository
	runRepo    *mocks.MockSyncRunRepository
	transactor *mocks.MockDBTransactor
	credSvc    *mocks.MockCredentialService
	registry   *mocks.MockProviderRegistry
	adapter    *mocks.MockProviderAdapter
	records    *mocks.MockRecordStore
	publisher  *mocks.MockEventPublisher
	ctrl       *gomock.Controller
}

var syncTestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setupSyncService(t *testing.T) *syncTestDeps {
	ctrl := gomock.NewController(t)
	d := &syncTestDeps{
		connRepo:   mocks.NewMockConnectorRepository(ctrl),
		runRepo:    mocks.NewMockSyncRunRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		credSvc:    mocks.NewMockCredentialService(ctrl),
		registry:   mocks.NewMockProviderRegistry(ctrl),
		adapter:    mocks.NewMockProviderAdapter(ctrl),
		records:    mocks.NewMockRecordStore(ctrl),
		publisher:  mocks.NewMockEventPublisher(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewSyncService(
		d.connRepo, d.runRepo, d.transactor, d.credSvc, d.registry, d.records, d.publisher,
		config.SyncConfig{
			Timeout:        time.Minute,
			Interval:       6 * time.Hour,
			StaleAfter:     time.Hour,
			SchedulerBatch: 10,
		},
		newTestLogger(),
	)
	d.svc.now = func() time.Time { return syncTestNow }
	return d
}

func testConnector(tenantID uuid.UUID) *domain.Connector {
	return &domain.Connector{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProviderType:   domain.ProviderStripe,
		CredentialsEnc: "enc",
		Status:         domain.ConnectorStatusConnected,
		IsEnabled:      true,
		LastSyncStatus: domain.SyncStatusNone,
	}
}

// expectStart wires the claim transaction and returns the created run.
func (d *syncTestDeps) expectStart(ctx context.Context, conn *domain.Connector) *domain.SyncRun {
	run := &domain.SyncRun{}
	tx := &mockTx{}
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.connRepo.EXPECT().TryStartSync(gomock.Any(), tx, conn.ID).Return(&ports.SyncClaim{LastSyncAt: conn.LastSyncAt}, nil)
	d.runRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, r *domain.SyncRun) error {
			*run = *r
			return nil
		},
	)
	return run
}

// ==================== Trigger Tests ====================

func TestSyncService_Trigger_FullSyncSuccess(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	creds := &domain.StripeCredentials{APIKey: "sk_test_1"}

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.expectStart(ctx, conn)
	d.credSvc.EXPECT().Resolve(ctx, conn).Return(creds, nil)

	counts := domain.EntityCounts{}
	counts.Set("customers", 3)
	counts.Set("products", 2)
	d.adapter.EXPECT().FullSync(gomock.Any(), creds, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.Credentials, w ports.EntityWriter) (*domain.SyncResult, error) {
			n, err := w.Write(ctx, "customers", []domain.Record{{ExternalID: "cus_1"}})
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			return &domain.SyncResult{RecordsProcessed: counts}, nil
		},
	)
	d.records.EXPECT().UpsertRecords(gomock.Any(), domain.RecordScope{
		TenantID:    tenantID,
		ConnectorID: conn.ID,
		Provider:    domain.ProviderStripe,
	}, "customers", gomock.Len(1)).Return(1, nil)

	finishTx := &mockTx{}
	d.transactor.EXPECT().Begin(gomock.Any()).Return(finishTx, nil)
	d.runRepo.EXPECT().Complete(gomock.Any(), finishTx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, r *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusCompleted, r.Status)
			assert.NotNil(t, r.CompletedAt)
			return nil
		},
	)
	d.connRepo.EXPECT().FinishSync(gomock.Any(), finishTx, conn.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
			assert.Equal(t, domain.SyncStatusCompleted, f.Status)
			assert.Equal(t, domain.ConnectorStatusActive, f.ConnectorStatus)
			require.NotNil(t, f.SyncedAt)
			assert.Equal(t, syncTestNow, *f.SyncedAt)
			assert.Nil(t, f.Error)
			return domain.ConnectorStatusActive, nil
		},
	)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, evt domain.OutboundEvent) error {
			assert.Equal(t, domain.EventSyncCompleted, evt.Type)
			assert.Equal(t, tenantID, evt.TenantID)
			return nil
		},
	)

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, domain.SyncTypeFull, run.SyncType)
	assert.Equal(t, domain.SyncRunStatusCompleted, run.Status)
	assert.Equal(t, domain.SyncTriggerAPI, run.Trigger)
	assert.Equal(t, 5, run.RecordsProcessed.Total())
	assert.Equal(t, []string{"customers", "products"}, run.RecordsProcessed.Entities())
	assert.True(t, finishTx.committed)
	assert.Equal(t, domain.ConnectorStatusActive, conn.Status)
	assert.Equal(t, domain.SyncStatusCompleted, conn.LastSyncStatus)
}

func TestSyncService_Trigger_IncrementalAfterPriorSync(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	lastSync := syncTestNow.Add(-2 * time.Hour)
	conn.LastSyncAt = &lastSync
	conn.LastSyncStatus = domain.SyncStatusCompleted
	creds := &domain.StripeCredentials{APIKey: "sk_test_1"}

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.expectStart(ctx, conn)
	d.credSvc.EXPECT().Resolve(ctx, conn).Return(creds, nil)
	d.adapter.EXPECT().IncrementalSync(gomock.Any(), creds, lastSync, gomock.Any()).
		Return(&domain.SyncResult{RecordsProcessed: domain.EntityCounts{}}, nil)

	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.runRepo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.connRepo.EXPECT().FinishSync(gomock.Any(), gomock.Any(), conn.ID, gomock.Any()).Return(domain.ConnectorStatusActive, nil)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncTypeIncremental, run.SyncType)
	require.NotNil(t, conn.LastSyncAt)
	assert.Equal(t, syncTestNow, *conn.LastSyncAt)
}

func TestSyncService_Trigger_SyncTypeFollowsClaim(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	creds := &domain.StripeCredentials{APIKey: "sk_test_1"}
	// The read saw no prior sync, but a run completed before the claim.
	finishedMeanwhile := syncTestNow.Add(-time.Minute)

	tx := &mockTx{}
	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.connRepo.EXPECT().TryStartSync(gomock.Any(), tx, conn.ID).
		Return(&ports.SyncClaim{LastSyncAt: &finishedMeanwhile}, nil)
	d.runRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, r *domain.SyncRun) error {
			assert.Equal(t, domain.SyncTypeIncremental, r.SyncType)
			return nil
		},
	)
	d.credSvc.EXPECT().Resolve(ctx, conn).Return(creds, nil)
	d.adapter.EXPECT().IncrementalSync(gomock.Any(), creds, finishedMeanwhile, gomock.Any()).
		Return(&domain.SyncResult{}, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.runRepo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.connRepo.EXPECT().FinishSync(gomock.Any(), gomock.Any(), conn.ID, gomock.Any()).Return(domain.ConnectorStatusActive, nil)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerSchedule)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncTypeIncremental, run.SyncType)
}

func TestSyncService_Trigger_DisconnectDuringSyncStaysDisabled(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	creds := &domain.StripeCredentials{APIKey: "sk_test_1"}

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.expectStart(ctx, conn)
	d.credSvc.EXPECT().Resolve(ctx, conn).Return(creds, nil)
	d.adapter.EXPECT().FullSync(gomock.Any(), creds, gomock.Any()).Return(&domain.SyncResult{}, nil)

	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.runRepo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	// The connector was disconnected while the adapter ran.
	d.connRepo.EXPECT().FinishSync(gomock.Any(), gomock.Any(), conn.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
			assert.Equal(t, domain.ConnectorStatusActive, f.ConnectorStatus)
			return domain.ConnectorStatusDisabled, nil
		},
	)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncRunStatusCompleted, run.Status)
	assert.Equal(t, domain.ConnectorStatusDisabled, conn.Status)
	assert.NotEqual(t, domain.ConnectorStatusActive, conn.Status)
}

// shopifyStore serves customers, products and orders and records the
// updated_at_min filter of every list call.
type shopifyStore struct {
	mu      sync.Mutex
	filters []string
}

func (s *shopifyStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	since := r.URL.Query().Get("updated_at_min")
	s.mu.Lock()
	s.filters = append(s.filters, since)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/admin/api/2024-10/customers.json":
		if since != "" {
			fmt.Fprint(w, `{"customers":[{"id":2,"updated_at":"2026-03-01T12:30:00Z"}]}`)
			return
		}
		fmt.Fprint(w, `{"customers":[{"id":1,"updated_at":"2026-02-01T10:00:00Z"},{"id":2,"updated_at":"2026-02-02T10:00:00Z"}]}`)
	case "/admin/api/2024-10/products.json":
		if since != "" {
			fmt.Fprint(w, `{"products":[]}`)
			return
		}
		fmt.Fprint(w, `{"products":[{"id":10,"updated_at":"2026-02-01T00:00:00Z"}]}`)
	case "/admin/api/2024-10/orders.json":
		if since != "" {
			fmt.Fprint(w, `{"orders":[]}`)
			return
		}
		fmt.Fprint(w, `{"orders":[{"id":100,"updated_at":"2026-02-03T00:00:00Z"}]}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *shopifyStore) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.filters))
	copy(out, s.filters)
	return out
}

func TestSyncService_Trigger_ShopifyFullThenIncremental(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	store := &shopifyStore{}
	srv := httptest.NewServer(store)
	defer srv.Close()
	adapter := shopify.New(config.ShopifyConfig{APIVersion: "2024-10"}, "", 5*time.Second,
		shopify.WithShopURL(func(string) string { return srv.URL }))

	// Every call advances the clock so a run's start and end differ.
	clock := syncTestNow
	d.svc.now = func() time.Time {
		now := clock
		clock = clock.Add(time.Minute)
		return now
	}

	ctx := context.Background()
	tenantID := uuid.New()
	state := testConnector(tenantID)
	state.ProviderType = domain.ProviderShopify
	creds := &domain.ShopifyCredentials{ShopDomain: "acme.myshopify.com", AccessToken: "shpat_token"}

	d.connRepo.EXPECT().GetByID(ctx, state.ID).DoAndReturn(
		func(context.Context, uuid.UUID) (*domain.Connector, error) {
			c := *state
			return &c, nil
		},
	).Times(2)
	d.registry.EXPECT().Sync(domain.ProviderShopify).Return(adapter, nil).Times(2)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil).Times(4)
	d.connRepo.EXPECT().TryStartSync(gomock.Any(), gomock.Any(), state.ID).DoAndReturn(
		func(context.Context, pgx.Tx, uuid.UUID) (*ports.SyncClaim, error) {
			return &ports.SyncClaim{LastSyncAt: state.LastSyncAt}, nil
		},
	).Times(2)
	d.runRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	d.credSvc.EXPECT().Resolve(ctx, gomock.Any()).Return(creds, nil).Times(2)
	d.records.EXPECT().UpsertRecords(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, scope domain.RecordScope, _ string, recs []domain.Record) (int, error) {
			assert.Equal(t, domain.ProviderShopify, scope.Provider)
			return len(recs), nil
		},
	).AnyTimes()
	d.runRepo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	d.connRepo.EXPECT().FinishSync(gomock.Any(), gomock.Any(), state.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
			state.LastSyncStatus = f.Status
			if f.SyncedAt != nil {
				state.LastSyncAt = f.SyncedAt
			}
			state.Status = domain.ConnectorStatusActive
			return state.Status, nil
		},
	).Times(2)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := d.svc.Trigger(ctx, tenantID, state.ID, domain.SyncTriggerAPI)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncTypeFull, first.SyncType)
	assert.Equal(t, domain.SyncRunStatusCompleted, first.Status)
	for entity, want := range map[string]int{"customers": 2, "products": 1, "orders": 1} {
		n, ok := first.RecordsProcessed.Get(entity)
		assert.True(t, ok, entity)
		assert.Equal(t, want, n, entity)
	}
	require.NotNil(t, first.CompletedAt)
	assert.True(t, first.CompletedAt.After(first.StartedAt))
	require.NotNil(t, state.LastSyncAt)
	assert.Equal(t, first.StartedAt, *state.LastSyncAt)
	assert.Equal(t, []string{"", "", ""}, store.snapshot())

	second, err := d.svc.Trigger(ctx, tenantID, state.ID, domain.SyncTriggerAPI)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncTypeIncremental, second.SyncType)
	assert.Equal(t, domain.SyncRunStatusCompleted, second.Status)
	n, ok := second.RecordsProcessed.Get("customers")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	since := first.StartedAt.UTC().Format(time.RFC3339)
	assert.Equal(t, []string{since, since, since}, store.snapshot()[3:])
	assert.Equal(t, second.StartedAt, *state.LastSyncAt)
}

func TestSyncService_Trigger_StepFailureFailsRun(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	creds := &domain.StripeCredentials{APIKey: "sk_test_1"}

	counts := domain.EntityCounts{}
	counts.Set("customers", 4)
	stepErr := &domain.SyncError{
		Provider: domain.ProviderStripe,
		Entity:   "products",
		Err:      &domain.ConnectionError{Provider: domain.ProviderStripe, Err: errors.New("502")},
	}

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.expectStart(ctx, conn)
	d.credSvc.EXPECT().Resolve(ctx, conn).Return(creds, nil)
	d.adapter.EXPECT().FullSync(gomock.Any(), creds, gomock.Any()).Return(&domain.SyncResult{
		RecordsProcessed: counts,
		Errors: []domain.SyncErrorDetail{
			{Type: domain.ErrorKindConnection, Entity: "products", Message: stepErr.Error()},
		},
	}, stepErr)

	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.runRepo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, r *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusFailed, r.Status)
			require.Len(t, r.Errors, 1)
			assert.Equal(t, "products", r.Errors[0].Entity)
			return nil
		},
	)
	d.connRepo.EXPECT().FinishSync(gomock.Any(), gomock.Any(), conn.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
			assert.Equal(t, domain.SyncStatusFailed, f.Status)
			assert.Nil(t, f.SyncedAt)
			assert.Empty(t, f.ConnectorStatus)
			require.NotNil(t, f.Error)
			return domain.ConnectorStatusConnected, nil
		},
	)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, evt domain.OutboundEvent) error {
			assert.Equal(t, domain.EventSyncFailed, evt.Type)
			return nil
		},
	)

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	require.Error(t, err)
	require.NotNil(t, run)
	assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
	c, ok := run.RecordsProcessed.Get("customers")
	assert.True(t, ok)
	assert.Equal(t, 4, c)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CON_004", appErr.Code)
	details, ok := appErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, run.ID, details["sync_id"])
	assert.Nil(t, conn.LastSyncAt)
}

func TestSyncService_Trigger_AuthFailureMarksConnectorError(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	authErr := &domain.AuthenticationError{Provider: domain.ProviderStripe, Reason: "missing required fields: api_key"}

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.expectStart(ctx, conn)
	d.credSvc.EXPECT().Resolve(ctx, conn).Return(nil, authErr)

	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.runRepo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, r *domain.SyncRun) error {
			require.Len(t, r.Errors, 1)
			assert.Equal(t, domain.ErrorKindAuthentication, r.Errors[0].Type)
			return nil
		},
	)
	d.connRepo.EXPECT().FinishSync(gomock.Any(), gomock.Any(), conn.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
			assert.Equal(t, domain.ConnectorStatusError, f.ConnectorStatus)
			return domain.ConnectorStatusError, nil
		},
	)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	require.Error(t, err)
	assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
	assert.Equal(t, domain.ConnectorStatusError, conn.Status)
}

func TestSyncService_Trigger_AlreadyRunning(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	conn.LastSyncStatus = domain.SyncStatusRunning

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	assert.Nil(t, run)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CON_003", appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestSyncService_Trigger_LostClaimRace(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	running := *conn
	running.LastSyncStatus = domain.SyncStatusRunning

	tx := &mockTx{}
	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.connRepo.EXPECT().TryStartSync(ctx, tx, conn.ID).Return(nil, nil)
	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(&running, nil)
	// No run is created and the adapter never runs.

	run, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	assert.Nil(t, run)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CON_003", appErr.Code)
	assert.False(t, tx.committed)
}

func TestSyncService_Trigger_Disabled(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	conn.IsEnabled = false

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)

	_, err := d.svc.Trigger(ctx, tenantID, conn.ID, domain.SyncTriggerAPI)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CON_002", appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestSyncService_Trigger_OtherTenant(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	conn := testConnector(uuid.New())

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)

	_, err := d.svc.Trigger(ctx, uuid.New(), conn.ID, domain.SyncTriggerAPI)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CON_001", appErr.Code)
}

// ==================== Status Tests ====================

func TestSyncService_Status(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.New()
	conn := testConnector(tenantID)
	runs := []domain.SyncRun{{ID: uuid.New(), ConnectorID: conn.ID, Status: domain.SyncRunStatusCompleted}}

	d.connRepo.EXPECT().GetByID(ctx, conn.ID).Return(conn, nil)
	d.runRepo.EXPECT().ListByConnector(ctx, conn.ID, recentRunsLimit).Return(runs, nil)

	view, err := d.svc.Status(ctx, tenantID, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, conn, view.Connector)
	assert.Len(t, view.Runs, 1)
}

// ==================== Scheduler & Recovery Tests ====================

func TestSyncService_RunScheduled(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	due := testConnector(uuid.New())
	busy := testConnector(uuid.New())
	busy.LastSyncStatus = domain.SyncStatusRunning

	d.connRepo.EXPECT().ListDueForSync(ctx, syncTestNow.Add(-6*time.Hour), 10).
		Return([]domain.Connector{*due, *busy}, nil)

	d.connRepo.EXPECT().GetByID(ctx, due.ID).Return(due, nil)
	d.registry.EXPECT().Sync(domain.ProviderStripe).Return(d.adapter, nil)
	d.expectStart(ctx, due)
	d.credSvc.EXPECT().Resolve(ctx, due).Return(&domain.StripeCredentials{APIKey: "sk_test_1"}, nil)
	d.adapter.EXPECT().FullSync(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.SyncResult{}, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.runRepo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.connRepo.EXPECT().FinishSync(gomock.Any(), gomock.Any(), due.ID, gomock.Any()).Return(domain.ConnectorStatusActive, nil)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	d.connRepo.EXPECT().GetByID(ctx, busy.ID).Return(busy, nil)

	n, err := d.svc.RunScheduled(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSyncService_RecoverStale(t *testing.T) {
	d := setupSyncService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stale := domain.SyncRun{
		ID:          uuid.New(),
		ConnectorID: uuid.New(),
		Status:      domain.SyncRunStatusRunning,
		StartedAt:   syncTestNow.Add(-3 * time.Hour),
	}
	finished := domain.SyncRun{
		ID:          uuid.New(),
		ConnectorID: uuid.New(),
		Status:      domain.SyncRunStatusRunning,
		StartedAt:   syncTestNow.Add(-2 * time.Hour),
	}

	d.runRepo.EXPECT().ListStale(ctx, syncTestNow.Add(-time.Hour), 10).
		Return([]domain.SyncRun{stale, finished}, nil)

	tx := &mockTx{}
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.runRepo.EXPECT().Complete(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, r *domain.SyncRun) error {
			assert.Equal(t, domain.SyncRunStatusFailed, r.Status)
			require.Len(t, r.Errors, 1)
			assert.Equal(t, domain.ErrorKindTimeout, r.Errors[0].Type)
			return nil
		},
	)
	d.connRepo.EXPECT().FinishSync(ctx, tx, stale.ConnectorID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
			assert.Equal(t, domain.SyncStatusFailed, f.Status)
			return domain.ConnectorStatusConnected, nil
		},
	)

	// The second run finished between listing and recovery.
	d.transactor.EXPECT().Begin(ctx).Return(&mockTx{}, nil)
	d.runRepo.EXPECT().Complete(ctx, gomock.Any(), gomock.Any()).Return(errors.New("sync run already terminal"))

	n, err := d.svc.RecoverStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, tx.committed)
}
