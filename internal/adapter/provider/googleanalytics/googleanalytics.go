// Package googleanalytics adapts the Google Analytics Admin and Data APIs.
// Connectors authorize with OAuth (PKCE, offline access) and sync accounts,
// their GA4 properties, and per-day traffic metrics for each property.
package googleanalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"connector-hub/config"
	"connector-hub/internal/adapter/provider"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
)

const (
	pageSize = "200"
	// fullHistory bounds the report window of a full sync.
	fullHistory = "365daysAgo"
)

var (
	entities = []string{"accounts", "properties", "daily_metrics"}
	metrics  = []string{"activeUsers", "sessions", "screenPageViews"}
)

// Adapter implements ports.ProviderAdapter, ports.OAuthAdapter and
// ports.TokenRefresher for Google Analytics.
type Adapter struct {
	cfg         config.GoogleAnalyticsConfig
	redirectURL string
	client      *provider.Client
	now         func() time.Time
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithClock replaces the clock used to stamp report rows.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// New creates the Google Analytics adapter. redirectURL is the OAuth callback.
func New(cfg config.GoogleAnalyticsConfig, redirectURL string, timeout time.Duration, opts ...Option) *Adapter {
	cfg.AdminBaseURL = strings.TrimRight(cfg.AdminBaseURL, "/")
	cfg.DataBaseURL = strings.TrimRight(cfg.DataBaseURL, "/")
	a := &Adapter{
		cfg:         cfg,
		redirectURL: redirectURL,
		client:      provider.NewClient(domain.ProviderGoogleAnalytics, nil, timeout),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Provider() domain.ProviderType { return domain.ProviderGoogleAnalytics }

func (a *Adapter) Entities() []string {
	out := make([]string, len(entities))
	copy(out, entities)
	return out
}

func (a *Adapter) TestConnection(ctx context.Context, creds domain.Credentials) bool {
	c, err := credentials(creds)
	if err != nil {
		return false
	}
	return a.client.Ping(ctx, provider.Request{
		URL:    a.cfg.AdminBaseURL + "/v1beta/accounts?pageSize=1",
		Header: authHeader(c),
	})
}

func (a *Adapter) FullSync(ctx context.Context, creds domain.Credentials, w ports.EntityWriter) (*domain.SyncResult, error) {
	return a.sync(ctx, creds, fullHistory, w)
}

// IncrementalSync re-reads metrics from the day of the last sync, since the
// latest day's numbers are still settling.
func (a *Adapter) IncrementalSync(ctx context.Context, creds domain.Credentials, since time.Time, w ports.EntityWriter) (*domain.SyncResult, error) {
	return a.sync(ctx, creds, since.UTC().Format("2006-01-02"), w)
}

func (a *Adapter) sync(ctx context.Context, creds domain.Credentials, startDate string, w ports.EntityWriter) (*domain.SyncResult, error) {
	c, err := credentials(creds)
	if err != nil {
		return &domain.SyncResult{}, err
	}

	// Each step feeds the names it saw to the next one.
	var accounts, properties []string
	steps := []provider.Step{
		{Entity: "accounts", Run: func(ctx context.Context, emit provider.Emit) error {
			return a.listAdmin(ctx, c, "accounts", url.Values{}, func(rec domain.Record) {
				accounts = append(accounts, rec.ExternalID)
			}, emit)
		}},
		{Entity: "properties", Run: func(ctx context.Context, emit provider.Emit) error {
			for _, account := range accounts {
				q := url.Values{"filter": {"parent:" + account}}
				err := a.listAdmin(ctx, c, "properties", q, func(rec domain.Record) {
					properties = append(properties, rec.ExternalID)
				}, emit)
				if err != nil {
					return err
				}
			}
			return nil
		}},
		{Entity: "daily_metrics", Run: func(ctx context.Context, emit provider.Emit) error {
			for _, property := range properties {
				records, err := a.runReport(ctx, c, property, startDate)
				if err != nil {
					return err
				}
				if err := emit(records); err != nil {
					return err
				}
			}
			return nil
		}},
	}
	return provider.RunSteps(ctx, domain.ProviderGoogleAnalytics, steps, w)
}

type adminResource struct {
	Name       string    `json:"name"`
	UpdateTime time.Time `json:"updateTime"`
}

// listAdmin pages through an Admin API collection. Resources are keyed by
// their resource name, e.g. "accounts/123".
func (a *Adapter) listAdmin(ctx context.Context, c *domain.GoogleAnalyticsCredentials, collection string, q url.Values, seen func(domain.Record), emit provider.Emit) error {
	q.Set("pageSize", pageSize)
	for {
		var raw map[string]json.RawMessage
		_, err := a.client.Do(ctx, provider.Request{
			URL:    a.cfg.AdminBaseURL + "/v1beta/" + collection + "?" + q.Encode(),
			Header: authHeader(c),
		}, &raw)
		if err != nil {
			return err
		}

		// The list key is the collection name, absent when the page is empty.
		var (
			items     []json.RawMessage
			nextToken string
		)
		if b, ok := raw[collection]; ok {
			if err := json.Unmarshal(b, &items); err != nil {
				return fmt.Errorf("decode %s: %w", collection, err)
			}
		}
		if b, ok := raw["nextPageToken"]; ok {
			if err := json.Unmarshal(b, &nextToken); err != nil {
				return fmt.Errorf("decode page token: %w", err)
			}
		}

		records := make([]domain.Record, 0, len(items))
		for _, item := range items {
			var res adminResource
			if err := json.Unmarshal(item, &res); err != nil {
				return fmt.Errorf("decode %s: %w", collection, err)
			}
			if res.Name == "" {
				return fmt.Errorf("%s entry has no name", collection)
			}
			updated := res.UpdateTime
			if updated.IsZero() {
				updated = a.now()
			}
			rec := domain.Record{ExternalID: res.Name, Data: item, UpdatedAt: updated.UTC()}
			seen(rec)
			records = append(records, rec)
		}
		if err := emit(records); err != nil {
			return err
		}
		if nextToken == "" {
			return nil
		}
		q.Set("pageToken", nextToken)
	}
}

type reportRequest struct {
	DateRanges []dateRange `json:"dateRanges"`
	Dimensions []named     `json:"dimensions"`
	Metrics    []named     `json:"metrics"`
	Limit      int         `json:"limit"`
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type named struct {
	Name string `json:"name"`
}

type reportResponse struct {
	MetricHeaders []named `json:"metricHeaders"`
	Rows          []struct {
		DimensionValues []struct {
			Value string `json:"value"`
		} `json:"dimensionValues"`
		MetricValues []struct {
			Value string `json:"value"`
		} `json:"metricValues"`
	} `json:"rows"`
}

// runReport pulls one row per day for property. Rows are keyed
// "<property>:<yyyymmdd>" so re-reading a day replaces it.
func (a *Adapter) runReport(ctx context.Context, c *domain.GoogleAnalyticsCredentials, property, startDate string) ([]domain.Record, error) {
	req := reportRequest{
		DateRanges: []dateRange{{StartDate: startDate, EndDate: "today"}},
		Dimensions: []named{{Name: "date"}},
		Limit:      10000,
	}
	for _, m := range metrics {
		req.Metrics = append(req.Metrics, named{Name: m})
	}

	var resp reportResponse
	_, err := a.client.Do(ctx, provider.Request{
		Method: http.MethodPost,
		URL:    a.cfg.DataBaseURL + "/v1beta/" + property + ":runReport",
		Header: authHeader(c),
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}

	fetched := a.now().UTC()
	records := make([]domain.Record, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if len(row.DimensionValues) == 0 {
			continue
		}
		day := row.DimensionValues[0].Value
		data := map[string]any{"property": property, "date": day}
		for i, mv := range row.MetricValues {
			if i >= len(resp.MetricHeaders) {
				break
			}
			data[resp.MetricHeaders[i].Name] = metricValue(mv.Value)
		}
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode report row: %w", err)
		}
		records = append(records, domain.Record{
			ExternalID: property + ":" + day,
			Data:       b,
			UpdatedAt:  fetched,
		})
	}
	return records, nil
}

func metricValue(v string) any {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func credentials(creds domain.Credentials) (*domain.GoogleAnalyticsCredentials, error) {
	c, ok := creds.(*domain.GoogleAnalyticsCredentials)
	if !ok || c == nil {
		return nil, &domain.AuthenticationError{Provider: domain.ProviderGoogleAnalytics, Reason: "credentials are not google analytics credentials"}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func authHeader(c *domain.GoogleAnalyticsCredentials) http.Header {
	return http.Header{"Authorization": {"Bearer " + c.AccessToken}}
}
