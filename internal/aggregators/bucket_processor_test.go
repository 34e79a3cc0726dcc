package aggregators

import (
	"context"
	"errors"
	"testing"
	"time"

	"edge-stats/internal/models"
	"edge-stats/internal/shared/svcerrors"
	"edge-stats/internal/sources/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	uaCurl   = "curl/7.68"
	uaChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.75 Safari/537.36"
)

func testBucket(t *testing.T) models.TimeRange {
	t.Helper()

	since := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)
	r, err := models.NewTimeRange(since, since.Add(time.Hour))
	require.NoError(t, err)
	return r
}

func transportFailure() error {
	return svcerrors.NewTransportFailureError("SRC_9000", "query failed after 2 attempts", errors.New("connection refused"))
}

func logicalEmpty() error {
	return svcerrors.NewLogicalEmptyError("SRC_2001", "query returned no data", nil)
}

func firewallEvents(n int) []models.FirewallEvent {
	events := make([]models.FirewallEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, models.FirewallEvent{Action: "block"})
	}
	return events
}

func TestBucketProcessor_Process_EndToEnd(t *testing.T) {
	t.Parallel()

	for _, parallel := range []bool{false, true} {
		t.Run(map[bool]string{false: "sequential", true: "parallel"}[parallel], func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			r := testBucket(t)
			mockSource := mocks.NewMockMetricsSource(ctrl)
			mockSource.EXPECT().QueryTraffic(gomock.Any(), r).
				Return(&models.TrafficTotals{Requests: 1000, Bytes: 52428800}, nil)
			mockSource.EXPECT().QueryFirewall(gomock.Any(), r).
				Return(firewallEvents(3), nil)
			mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).
				Return([]models.RawSampleEvent{
					{UserAgent: uaCurl, Host: "example.com"},
					{UserAgent: uaCurl, Host: "example.com"},
					{UserAgent: uaChrome, Host: "api.example.com"},
				}, nil)

			processor := NewBucketProcessor(mockSource, Options{IncludeDomains: true, ParallelQueries: parallel})
			record := processor.Process(context.Background(), r)

			require.NotNil(t, record)
			assert.Equal(t, r.Since.Unix(), record.Since)
			assert.Equal(t, r.Until.Unix(), record.Until)
			assert.Equal(t, int64(1000), record.TotalRequests)
			assert.Equal(t, int64(52428800), record.TotalBytes)
			assert.Equal(t, models.Megabytes(50), record.TotalMegabytes)
			assert.Equal(t, int64(3), record.WAFMitigatedRequests)
			assert.Equal(t, []models.ClientRank{
				{Category: "cURL", Requests: 2},
				{Category: "Chrome", Requests: 1},
			}, record.TopClients)
			assert.Equal(t, []models.DomainRank{
				{Domain: "example.com", Requests: 2},
				{Domain: "api.example.com", Requests: 1},
			}, record.TopDomains)
			assert.Empty(t, record.TopPlatforms)
		})
	}
}

func TestBucketProcessor_Process_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		trafficErr   error
		firewallErr  error
		samplesErr   error
		wantRequests int64
		wantBytes    int64
		wantWAF      int64
		wantClients  int
	}{
		{
			name:         "raw samples fail",
			samplesErr:   transportFailure(),
			wantRequests: 1000,
			wantBytes:    1048576,
			wantWAF:      2,
			wantClients:  0,
		},
		{
			name:        "traffic logically empty",
			trafficErr:  logicalEmpty(),
			wantWAF:     2,
			wantClients: 1,
		},
		{
			name:         "firewall fails",
			firewallErr:  transportFailure(),
			wantRequests: 1000,
			wantBytes:    1048576,
			wantClients:  1,
		},
		{
			name:        "everything fails",
			trafficErr:  transportFailure(),
			firewallErr: logicalEmpty(),
			samplesErr:  errors.New("unexpected"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			r := testBucket(t)
			mockSource := mocks.NewMockMetricsSource(ctrl)

			if tt.trafficErr != nil {
				mockSource.EXPECT().QueryTraffic(gomock.Any(), r).Return(nil, tt.trafficErr)
			} else {
				mockSource.EXPECT().QueryTraffic(gomock.Any(), r).Return(&models.TrafficTotals{Requests: 1000, Bytes: 1048576}, nil)
			}
			if tt.firewallErr != nil {
				mockSource.EXPECT().QueryFirewall(gomock.Any(), r).Return(nil, tt.firewallErr)
			} else {
				mockSource.EXPECT().QueryFirewall(gomock.Any(), r).Return(firewallEvents(2), nil)
			}
			if tt.samplesErr != nil {
				mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).Return(nil, tt.samplesErr)
			} else {
				mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).Return([]models.RawSampleEvent{{UserAgent: uaCurl, Host: "example.com"}}, nil)
			}

			processor := NewBucketProcessor(mockSource, Options{IncludeDomains: true})
			record := processor.Process(context.Background(), r)

			require.NotNil(t, record)
			assert.Equal(t, tt.wantRequests, record.TotalRequests)
			assert.Equal(t, tt.wantBytes, record.TotalBytes)
			assert.Equal(t, models.MegabytesFromBytes(tt.wantBytes), record.TotalMegabytes)
			assert.Equal(t, tt.wantWAF, record.WAFMitigatedRequests)
			assert.Len(t, record.TopClients, tt.wantClients)
			assert.Len(t, record.TopDomains, tt.wantClients)
			assert.NotNil(t, record.TopClients)
			assert.NotNil(t, record.TopDomains)
		})
	}
}

func TestBucketProcessor_Process_AllFailedEqualsEmptyRecord(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := testBucket(t)
	mockSource := mocks.NewMockMetricsSource(ctrl)
	mockSource.EXPECT().QueryTraffic(gomock.Any(), r).Return(nil, transportFailure())
	mockSource.EXPECT().QueryFirewall(gomock.Any(), r).Return(nil, transportFailure())
	mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).Return(nil, transportFailure())

	processor := NewBucketProcessor(mockSource, Options{IncludeDomains: true, IncludePlatforms: true, ParallelQueries: true})
	record := processor.Process(context.Background(), r)

	assert.Equal(t, models.NewEmptyBucketRecord(r), record)
}

func TestBucketProcessor_Process_SkipsBlankUserAgents(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := testBucket(t)
	mockSource := mocks.NewMockMetricsSource(ctrl)
	mockSource.EXPECT().QueryTraffic(gomock.Any(), r).Return(&models.TrafficTotals{}, nil)
	mockSource.EXPECT().QueryFirewall(gomock.Any(), r).Return([]models.FirewallEvent{}, nil)
	mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).Return([]models.RawSampleEvent{
		{UserAgent: "", Host: ""},
		{UserAgent: "   ", Host: "example.com"},
		{UserAgent: uaChrome, Host: ""},
		{UserAgent: "Unknown", Host: "example.com"},
	}, nil)

	processor := NewBucketProcessor(mockSource, Options{IncludeDomains: true})
	record := processor.Process(context.Background(), r)

	// blank agents are dropped from the client ranking but their hosts still count
	assert.Equal(t, []models.ClientRank{
		{Category: "Chrome", Requests: 1},
		{Category: "Unknown", Requests: 1},
	}, record.TopClients)
	assert.Equal(t, []models.DomainRank{
		{Domain: "Unknown", Requests: 2},
		{Domain: "example.com", Requests: 2},
	}, record.TopDomains)
}

func TestBucketProcessor_Process_OptionalRankings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          Options
		wantDomains   []models.DomainRank
		wantPlatforms []models.PlatformRank
	}{
		{
			name:          "clients only",
			opts:          Options{},
			wantDomains:   []models.DomainRank{},
			wantPlatforms: []models.PlatformRank{},
		},
		{
			name:          "with platforms",
			opts:          Options{IncludePlatforms: true},
			wantDomains:   []models.DomainRank{},
			wantPlatforms: []models.PlatformRank{{Platform: "Windows", Requests: 2}},
		},
		{
			name:          "with domains and platforms",
			opts:          Options{IncludeDomains: true, IncludePlatforms: true},
			wantDomains:   []models.DomainRank{{Domain: "example.com", Requests: 2}},
			wantPlatforms: []models.PlatformRank{{Platform: "Windows", Requests: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			r := testBucket(t)
			mockSource := mocks.NewMockMetricsSource(ctrl)
			mockSource.EXPECT().QueryTraffic(gomock.Any(), r).Return(&models.TrafficTotals{Requests: 2}, nil)
			mockSource.EXPECT().QueryFirewall(gomock.Any(), r).Return(nil, logicalEmpty())
			mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).Return([]models.RawSampleEvent{
				{UserAgent: uaChrome, Host: "example.com"},
				{UserAgent: uaChrome, Host: "example.com"},
			}, nil)

			record := NewBucketProcessor(mockSource, tt.opts).Process(context.Background(), r)

			assert.Equal(t, []models.ClientRank{{Category: "Chrome", Requests: 2}}, record.TopClients)
			assert.Equal(t, tt.wantDomains, record.TopDomains)
			assert.Equal(t, tt.wantPlatforms, record.TopPlatforms)
		})
	}
}

func TestBucketProcessor_Process_RankLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := testBucket(t)
	samples := make([]models.RawSampleEvent, 0, 30)
	for i := 0; i < 15; i++ {
		samples = append(samples, models.RawSampleEvent{UserAgent: uaCurl, Host: string(rune('a'+i)) + ".example.com"})
	}

	mockSource := mocks.NewMockMetricsSource(ctrl)
	mockSource.EXPECT().QueryTraffic(gomock.Any(), r).Return(&models.TrafficTotals{}, nil)
	mockSource.EXPECT().QueryFirewall(gomock.Any(), r).Return([]models.FirewallEvent{}, nil)
	mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).Return(samples, nil)

	record := NewBucketProcessor(mockSource, Options{IncludeDomains: true}).Process(context.Background(), r)

	require.Len(t, record.TopDomains, 10)
	assert.Equal(t, "a.example.com", record.TopDomains[0].Domain)
	assert.Equal(t, "j.example.com", record.TopDomains[9].Domain)
	assert.Equal(t, []models.ClientRank{{Category: "cURL", Requests: 15}}, record.TopClients)
}

func TestBucketProcessor_Process_RecoversQueryPanic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := testBucket(t)
	mockSource := mocks.NewMockMetricsSource(ctrl)
	mockSource.EXPECT().QueryTraffic(gomock.Any(), r).Return(&models.TrafficTotals{Requests: 7, Bytes: 0}, nil)
	mockSource.EXPECT().QueryFirewall(gomock.Any(), r).
		DoAndReturn(func(ctx context.Context, r models.TimeRange) ([]models.FirewallEvent, error) {
			panic("decoder exploded")
		})
	mockSource.EXPECT().QueryRawSamples(gomock.Any(), r).Return([]models.RawSampleEvent{}, nil)

	record := NewBucketProcessor(mockSource, Options{ParallelQueries: true}).Process(context.Background(), r)

	assert.Equal(t, int64(7), record.TotalRequests)
	assert.Equal(t, int64(0), record.WAFMitigatedRequests)
}

func TestErrQueryPanicked(t *testing.T) {
	t.Parallel()

	err := errQueryPanicked("firewall", errors.New("boom"))
	assert.Equal(t, "AGG_9000", err.Code)
	assert.True(t, err.IsInternalError())
	assert.Contains(t, err.Error(), "firewallQueryPanicked")
}
