package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"edge-stats/internal/models"
	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/shared/metrics"
	"edge-stats/internal/shared/svcerrors"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultTimeout bounds a single request, not the whole run.
	DefaultTimeout = 30 * time.Second

	// maxRetries is the number of immediate retries after a transport failure.
	maxRetries = 1

	maxErrorBodyBytes = 512
)

// MetricsSource issues analytics queries for one zone.
//
//go:generate mockgen -source=client.go -destination=./mocks/metrics_source_mock.go -package=mocks
type MetricsSource interface {
	// Query issues one logical query for r and returns the zone payload.
	Query(ctx context.Context, kind QueryKind, r models.TimeRange) (*ZoneData, error)
	// QueryTraffic returns the request and byte sums for r.
	QueryTraffic(ctx context.Context, r models.TimeRange) (*models.TrafficTotals, error)
	// QueryFirewall returns the mitigation events in r.
	QueryFirewall(ctx context.Context, r models.TimeRange) ([]models.FirewallEvent, error)
	// QueryRawSamples returns the sampled successful requests in r.
	QueryRawSamples(ctx context.Context, r models.TimeRange) ([]models.RawSampleEvent, error)
}

// Options configures a MetricsSource. Values are read-only after construction.
type Options struct {
	Endpoint string
	APIToken string
	ZoneID   string
	Timeout  time.Duration
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

type metricsSource struct {
	endpoint   string
	apiToken   string
	zoneID     string
	httpClient *http.Client
}

func NewMetricsSource(opts Options) MetricsSource {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &metricsSource{
		endpoint:   opts.Endpoint,
		apiToken:   opts.APIToken,
		zoneID:     opts.ZoneID,
		httpClient: httpClient,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables queryVariables `json:"variables"`
}

type queryVariables struct {
	ZoneTag string `json:"zoneTag"`
	Since   string `json:"since"`
	Until   string `json:"until"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data *struct {
		Viewer *struct {
			Zones []ZoneData `json:"zones"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// ZoneData is the per-zone payload. Only the dataset requested by the query
// is populated; a nil slice means the dataset was absent from the response.
type ZoneData struct {
	HTTPRequests1hGroups   []TrafficGroup  `json:"httpRequests1hGroups"`
	FirewallEventsAdaptive []FirewallEntry `json:"firewallEventsAdaptive"`
	HTTPRequestsAdaptive   []RequestSample `json:"httpRequestsAdaptive"`
}

type TrafficGroup struct {
	Sum struct {
		Requests int64 `json:"requests"`
		Bytes    int64 `json:"bytes"`
	} `json:"sum"`
}

type FirewallEntry struct {
	Action   string `json:"action"`
	Datetime string `json:"datetime"`
}

type RequestSample struct {
	UserAgent             *string `json:"userAgent"`
	Datetime              string  `json:"datetime"`
	EdgeResponseStatus    int     `json:"edgeResponseStatus"`
	ClientRequestHTTPHost *string `json:"clientRequestHTTPHost"`
}

func (s *metricsSource) Query(ctx context.Context, kind QueryKind, r models.TimeRange) (*ZoneData, error) {
	doc, ok := Document(kind)
	if !ok {
		return nil, errUnknownQueryKind(kind)
	}

	body, err := json.Marshal(graphQLRequest{
		Query: doc,
		Variables: queryVariables{
			ZoneTag: s.zoneID,
			Since:   r.FormatSince(),
			Until:   r.FormatUntil(),
		},
	})
	if err != nil {
		return nil, svcerrors.NewInternalErrorUndefined(fmt.Errorf("marshal query: %w", err))
	}

	logger := loggers.Ctx(ctx)
	start := time.Now()
	attempts := 0

	var zone *ZoneData
	operation := func() error {
		attempts++
		resp, err := s.post(ctx, body)
		if err != nil {
			return err
		}
		zone, err = extractZone(kind, resp)
		if err != nil {
			// logical empty results are final
			return backoff.Permanent(err)
		}
		return nil
	}
	notify := func(err error, _ time.Duration) {
		metricQueryRetryTotal.WithLabelValues(string(kind)).Inc()
		logger.Warn().
			Err(err).
			Str(loggers.FieldQueryKind, string(kind)).
			Int(loggers.FieldAttempt, attempts).
			Msg("metrics source request failed, retrying")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxRetries), ctx)
	err = backoff.RetryNotify(operation, policy, notify)
	metricQueryLatency.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok || !svcErr.IsDegradable() {
			svcErr = errTransportFailure(kind, attempts, err)
		}
		metricQueryTotal.WithLabelValues(string(kind), svcErr.Code).Inc()
		return nil, svcErr
	}

	metricQueryTotal.WithLabelValues(string(kind), metrics.ValueNoError).Inc()
	return zone, nil
}

func (s *metricsSource) QueryTraffic(ctx context.Context, r models.TimeRange) (*models.TrafficTotals, error) {
	zone, err := s.Query(ctx, KindTraffic, r)
	if err != nil {
		return nil, err
	}
	if len(zone.HTTPRequests1hGroups) == 0 {
		return nil, errMissingData(KindTraffic, "traffic groups")
	}

	sum := zone.HTTPRequests1hGroups[0].Sum
	return &models.TrafficTotals{Requests: sum.Requests, Bytes: sum.Bytes}, nil
}

func (s *metricsSource) QueryFirewall(ctx context.Context, r models.TimeRange) ([]models.FirewallEvent, error) {
	zone, err := s.Query(ctx, KindFirewall, r)
	if err != nil {
		return nil, err
	}
	if zone.FirewallEventsAdaptive == nil {
		return nil, errMissingData(KindFirewall, "firewall events")
	}

	events := make([]models.FirewallEvent, 0, len(zone.FirewallEventsAdaptive))
	for _, e := range zone.FirewallEventsAdaptive {
		events = append(events, models.FirewallEvent{
			Action:   e.Action,
			Datetime: parseDatetime(e.Datetime),
		})
	}
	return events, nil
}

func (s *metricsSource) QueryRawSamples(ctx context.Context, r models.TimeRange) ([]models.RawSampleEvent, error) {
	zone, err := s.Query(ctx, KindRawSamples, r)
	if err != nil {
		return nil, err
	}
	if zone.HTTPRequestsAdaptive == nil {
		return nil, errMissingData(KindRawSamples, "request samples")
	}

	samples := make([]models.RawSampleEvent, 0, len(zone.HTTPRequestsAdaptive))
	for _, sample := range zone.HTTPRequestsAdaptive {
		samples = append(samples, models.RawSampleEvent{
			UserAgent: deref(sample.UserAgent),
			Host:      deref(sample.ClientRequestHTTPHost),
			Status:    sample.EdgeResponseStatus,
			Datetime:  parseDatetime(sample.Datetime),
		})
	}
	return samples, nil
}

// post performs one round trip. Any error it returns is a transport failure.
func (s *metricsSource) post(ctx context.Context, body []byte) (*graphQLResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+s.apiToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var resp graphQLResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// extractZone returns the single zone payload or a logical empty error.
func extractZone(kind QueryKind, resp *graphQLResponse) (*ZoneData, error) {
	if len(resp.Errors) > 0 {
		return nil, errApplicationErrors(kind, resp.Errors)
	}
	if resp.Data == nil || resp.Data.Viewer == nil {
		return nil, errMissingData(kind, "data")
	}
	if len(resp.Data.Viewer.Zones) == 0 {
		return nil, errMissingData(kind, "zones")
	}
	return &resp.Data.Viewer.Zones[0], nil
}

func parseDatetime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsLogicalEmpty reports whether err is a well-formed response without data.
func IsLogicalEmpty(err error) bool {
	svcErr, ok := svcerrors.AsServiceError(err)
	return ok && svcErr.IsDegradable() && !svcErr.IsRetryable()
}
