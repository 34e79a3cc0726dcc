package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"edge-stats/internal/models"
	"edge-stats/internal/shared/filestorages"
	"edge-stats/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testReport(t *testing.T) *models.Report {
	t.Helper()

	since := time.Date(2025, 12, 28, 17, 0, 0, 0, time.UTC)
	first, err := models.NewTimeRange(since, since.Add(time.Hour))
	require.NoError(t, err)
	second, err := models.NewTimeRange(since.Add(time.Hour), since.Add(2*time.Hour))
	require.NoError(t, err)

	busy := models.NewEmptyBucketRecord(second)
	busy.TotalRequests = 1000
	busy.TotalBytes = 52428800
	busy.TotalMegabytes = models.MegabytesFromBytes(52428800)
	busy.WAFMitigatedRequests = 3
	busy.TopClients = []models.ClientRank{{Category: "cURL", Requests: 2}, {Category: "Chrome", Requests: 1}}
	busy.TopDomains = []models.DomainRank{{Domain: "example.com", Requests: 3}}

	return &models.Report{
		RunID:       "01JG2Q5X7N8C4W3KZ6Y9T0ABCD",
		GeneratedAt: since.Add(2 * time.Hour),
		Window:      models.TimeRange{Since: first.Since, Until: second.Until},
		Buckets:     []*models.BucketRecord{models.NewEmptyBucketRecord(first), busy},
	}
}

func decodeBuckets(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var buckets []map[string]any
	require.NoError(t, json.Unmarshal(data, &buckets))
	return buckets
}

func TestReportStore_Put_Document(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          Options
		wantDomains   bool
		wantPlatforms bool
	}{
		{name: "user agents only", opts: Options{}},
		{name: "with domains", opts: Options{IncludeDomains: true}, wantDomains: true},
		{name: "with domains and platforms", opts: Options{IncludeDomains: true, IncludePlatforms: true}, wantDomains: true, wantPlatforms: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			storage, err := filestorages.NewFileStorage(t.TempDir())
			require.NoError(t, err)
			store := NewReportStore(storage, tt.opts)
			ctx := context.Background()

			result, err := store.Put(ctx, testReport(t))
			require.NoError(t, err)
			assert.Equal(t, DefaultFileName, result.LatestKey)
			assert.Empty(t, result.ArchiveKey)

			data, err := store.GetLatest(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(len(data)), result.Size)
			assert.Contains(t, string(data), `"total_megabytes": 50.00`)
			assert.Contains(t, string(data), `"total_megabytes": 0.00`)

			buckets := decodeBuckets(t, data)
			require.Len(t, buckets, 2)
			assert.Equal(t, float64(time.Date(2025, 12, 28, 17, 0, 0, 0, time.UTC).Unix()), buckets[0]["since"])
			assert.Equal(t, float64(1000), buckets[1]["total_requests"])
			assert.Equal(t, float64(52428800), buckets[1]["total_bytes"])
			assert.Equal(t, float64(3), buckets[1]["waf_mitigated_requests"])
			assert.Equal(t, []any{}, buckets[0]["top_user_agents"])
			assert.Equal(t, []any{
				map[string]any{"browser": "cURL", "requests": float64(2)},
				map[string]any{"browser": "Chrome", "requests": float64(1)},
			}, buckets[1]["top_user_agents"])

			for _, bucket := range buckets {
				_, hasDomains := bucket["top_domains"]
				_, hasPlatforms := bucket["top_platforms"]
				assert.Equal(t, tt.wantDomains, hasDomains)
				assert.Equal(t, tt.wantPlatforms, hasPlatforms)
			}
			if tt.wantDomains {
				assert.Equal(t, []any{}, buckets[0]["top_domains"])
				assert.Len(t, buckets[1]["top_domains"], 1)
			}
			if tt.wantPlatforms {
				assert.Equal(t, []any{}, buckets[1]["top_platforms"])
			}
		})
	}
}

func TestReportStore_Put_OverwritesLatest(t *testing.T) {
	t.Parallel()

	storage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	store := NewReportStore(storage, Options{FileName: "stats.json"})
	ctx := context.Background()

	report := testReport(t)
	_, err = store.Put(ctx, report)
	require.NoError(t, err)

	report.Buckets = report.Buckets[:1]
	result, err := store.Put(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, "stats.json", result.LatestKey)

	data, err := store.GetLatest(ctx)
	require.NoError(t, err)
	assert.Len(t, decodeBuckets(t, data), 1)
}

func TestReportStore_Put_Archive(t *testing.T) {
	t.Parallel()

	storage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	store := NewReportStore(storage, Options{Archive: true})
	ctx := context.Background()

	report := testReport(t)
	result, err := store.Put(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, "archive/20251228T17Z-01JG2Q5X7N8C4W3KZ6Y9T0ABCD.json", result.ArchiveKey)

	keys, err := store.ListArchive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{result.ArchiveKey}, keys)

	// same run id again must not replace the snapshot, nor the latest report
	latestBefore, err := store.GetLatest(ctx)
	require.NoError(t, err)
	changed := *report
	changed.Buckets = report.Buckets[:1]
	_, err = store.Put(ctx, &changed)
	assert.ErrorIs(t, err, ErrArchiveAlreadyExists)

	latestAfter, err := store.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, latestBefore, latestAfter)

	report.RunID = "01JG2Q5X7N8C4W3KZ6Y9T0WXYZ"
	_, err = store.Put(ctx, report)
	require.NoError(t, err)

	keys, err = store.ListArchive(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestReportStore_Put_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage, Options{Archive: true})
	ctx := context.Background()

	gomock.InOrder(
		mockFileStorage.EXPECT().
			Put(ctx, "archive/20251228T17Z-01JG2Q5X7N8C4W3KZ6Y9T0ABCD.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
			Return(&filestorages.PutResult{}, nil),
		mockFileStorage.EXPECT().
			Put(ctx, DefaultFileName, gomock.Any(), filestorages.PutOptions{AllowOverwrite: true}).
			Return(nil, errors.New("disk full")),
	)

	_, err := store.Put(ctx, testReport(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to put report")
	assert.Contains(t, err.Error(), "disk full")
}

func TestReportStore_Put_ArchiveError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		archiveErr error
		wantErrIs  error
		wantErrMsg string
	}{
		{
			name:       "archive collision",
			archiveErr: filestorages.ErrFileAlreadyExists,
			wantErrIs:  ErrArchiveAlreadyExists,
		},
		{
			name:       "archive write failure",
			archiveErr: errors.New("permission denied"),
			wantErrMsg: "failed to archive report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFileStorage := mocks.NewMockFileStorage(ctrl)
			store := NewReportStore(mockFileStorage, Options{Archive: true})
			ctx := context.Background()

			// the latest report must not be written when archiving fails
			mockFileStorage.EXPECT().
				Put(ctx, "archive/20251228T17Z-01JG2Q5X7N8C4W3KZ6Y9T0ABCD.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
				Return(nil, tt.archiveErr)

			_, err := store.Put(ctx, testReport(t))
			require.Error(t, err)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			}
			if tt.wantErrMsg != "" {
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			}
		})
	}
}

func TestReportStore_Put_ArchiveMatchesLatest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage, Options{Archive: true})
	ctx := context.Background()

	var archived []byte
	gomock.InOrder(
		mockFileStorage.EXPECT().
			Put(ctx, "archive/20251228T17Z-01JG2Q5X7N8C4W3KZ6Y9T0ABCD.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
			DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
				data, err := io.ReadAll(r)
				require.NoError(t, err)
				archived = data
				return &filestorages.PutResult{FileKey: key}, nil
			}),
		mockFileStorage.EXPECT().
			Put(ctx, DefaultFileName, gomock.Any(), filestorages.PutOptions{AllowOverwrite: true}).
			DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
				data, err := io.ReadAll(r)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(archived, data), "latest must match the archived report")
				return &filestorages.PutResult{FileKey: key}, nil
			}),
	)

	result, err := store.Put(ctx, testReport(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, result.LatestKey)
	assert.Equal(t, "archive/20251228T17Z-01JG2Q5X7N8C4W3KZ6Y9T0ABCD.json", result.ArchiveKey)
}

func TestReportStore_GetLatest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		getResult io.ReadCloser
		getErr    error
		want      []byte
		wantErr   error
		errSubstr string
	}{
		{
			name:      "found",
			getResult: io.NopCloser(bytes.NewReader([]byte(`[]`))),
			want:      []byte(`[]`),
		},
		{
			name:    "not found",
			getErr:  filestorages.ErrFileNotFound,
			wantErr: ErrReportNotFound,
		},
		{
			name:      "storage failure",
			getErr:    errors.New("io error"),
			errSubstr: "failed to get report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFileStorage := mocks.NewMockFileStorage(ctrl)
			store := NewReportStore(mockFileStorage, Options{})
			ctx := context.Background()

			mockFileStorage.EXPECT().Get(ctx, DefaultFileName).Return(tt.getResult, tt.getErr)

			data, err := store.GetLatest(ctx)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errSubstr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, data)
			}
		})
	}
}

func TestReportStore_ListArchive_Error(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage, Options{})
	ctx := context.Background()

	mockFileStorage.EXPECT().List(ctx, "archive").Return(nil, errors.New("io error"))

	_, err := store.ListArchive(ctx)
	assert.ErrorContains(t, err, "failed to list archived reports")
}
