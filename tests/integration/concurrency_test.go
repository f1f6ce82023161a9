package integration

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentSyncTriggers fires many triggers at one connector while the
// provider is held mid-sync. Exactly one trigger may own the run; every
// other caller is turned away with CON_003 without writing a ledger entry.
func TestConcurrentSyncTriggers(t *testing.T) {
	app := newTestApp(t)
	tenantID := uuid.New()
	token := app.token(t, tenantID)
	connectorID := app.connectStripe(t, tenantID)

	gate := app.stripe.hold()
	const concurrency = 20

	type result struct {
		status int
		code   string
	}
	results := make(chan result, concurrency)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var body struct {
				ErrorCode string `json:"error_code"`
			}
			status := app.do(t, http.MethodPost, "/api/v1/connectors/"+connectorID+"/sync", token, nil, &body)
			results <- result{status: status, code: body.ErrorCode}
		}()
	}

	// The winner is parked on the gate, so every loser answers first.
	for i := 0; i < concurrency-1; i++ {
		select {
		case r := <-results:
			assert.Equal(t, http.StatusConflict, r.status)
			assert.Equal(t, "CON_003", r.code)
		case <-time.After(10 * time.Second):
			t.Fatalf("only %d of %d losing triggers returned", i, concurrency-1)
		}
	}
	close(gate)

	select {
	case r := <-results:
		assert.Equal(t, http.StatusOK, r.status)
	case <-time.After(10 * time.Second):
		t.Fatal("winning trigger never returned")
	}
	wg.Wait()

	runs, err := app.runRepo.ListByConnector(context.Background(), uuid.MustParse(connectorID), 100)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.SyncRunStatusCompleted, runs[0].Status)

	conn, err := app.connRepo.GetByID(context.Background(), uuid.MustParse(connectorID))
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusCompleted, conn.LastSyncStatus)
	assert.False(t, conn.IsSyncRunning())
}

// TestSequentialSyncsAfterRelease checks the guard is released once a run
// finishes, and the second run is incremental.
func TestSequentialSyncsAfterRelease(t *testing.T) {
	app := newTestApp(t)
	tenantID := uuid.New()
	token := app.token(t, tenantID)
	connectorID := app.connectStripe(t, tenantID)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/api/v1/connectors/"+connectorID+"/sync", token, nil, nil))
	}

	runs, err := app.runRepo.ListByConnector(context.Background(), uuid.MustParse(connectorID), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	types := map[domain.SyncType]int{}
	for _, r := range runs {
		assert.Equal(t, domain.SyncRunStatusCompleted, r.Status)
		types[r.SyncType]++
	}
	assert.Equal(t, map[domain.SyncType]int{domain.SyncTypeFull: 1, domain.SyncTypeIncremental: 1}, types)
}

// TestConcurrentDuplicateWebhooks delivers the same provider event many
// times at once. The mirror changes once and one outbound event goes out;
// every other delivery is acknowledged as a duplicate or told to retry.
func TestConcurrentDuplicateWebhooks(t *testing.T) {
	app := newTestApp(t)
	tenantID := uuid.New()
	connectorID := app.connectStripe(t, tenantID)
	rcv := newWebhookReceiver(t)
	app.createEndpoint(t, tenantID, rcv.server.URL, string(domain.EventRecordUpserted))

	body := stripeEvent("evt_concurrent", "customer.updated", "cus_concurrent")
	const concurrency = 25

	var (
		mu         sync.Mutex
		processed  int
		duplicates int
		inProgress int
		other      []int
	)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, resp := app.postStripeWebhook(t, body, testStripeSecret)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case status == http.StatusOK && resp["data"].(map[string]any)["duplicate"] == true:
				duplicates++
			case status == http.StatusOK:
				processed++
			case status == http.StatusConflict && resp["error_code"] == "WHK_005":
				inProgress++
			default:
				other = append(other, status)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, processed)
	assert.Equal(t, concurrency-1, duplicates+inProgress)

	n, err := app.records.CountRecords(context.Background(), uuid.MustParse(connectorID), "customers")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	app.publisher.Wait()
	assert.Len(t, rcv.received(string(domain.EventRecordUpserted)), 1)

	// Once processing settles, a redelivery is always a duplicate.
	status, resp := app.postStripeWebhook(t, body, testStripeSecret)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["data"].(map[string]any)["duplicate"])
}

// TestDisconnectDuringSync disconnects a connector while its sync is parked
// on the provider. Finishing the run must not bring the connector back.
func TestDisconnectDuringSync(t *testing.T) {
	app := newTestApp(t)
	tenantID := uuid.New()
	token := app.token(t, tenantID)
	connectorID := app.connectStripe(t, tenantID)
	id := uuid.MustParse(connectorID)

	gate := app.stripe.hold()
	done := make(chan int, 1)
	go func() {
		done <- app.do(t, http.MethodPost, "/api/v1/connectors/"+connectorID+"/sync", token, nil, nil)
	}()

	require.Eventually(t, func() bool {
		conn, err := app.connRepo.GetByID(context.Background(), id)
		return err == nil && conn.IsSyncRunning()
	}, 10*time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, "/api/v1/connectors/"+connectorID, token, nil, nil))
	close(gate)

	select {
	case status := <-done:
		assert.Equal(t, http.StatusOK, status)
	case <-time.After(10 * time.Second):
		t.Fatal("sync never returned")
	}

	conn, err := app.connRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectorStatusDisabled, conn.Status)
	assert.False(t, conn.IsEnabled)
	assert.Empty(t, conn.CredentialsEnc)
	assert.False(t, conn.IsSyncRunning())

	var body struct {
		ErrorCode string `json:"error_code"`
	}
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/api/v1/connectors/"+connectorID+"/sync", token, nil, &body))
	assert.Equal(t, "CON_002", body.ErrorCode)
}
