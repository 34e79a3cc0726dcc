package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"edge-stats/internal/models"
	"edge-stats/internal/shared/filestorages"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrArchiveAlreadyExists = errors.New("archived report already exists")
)

const (
	DefaultFileName = "cloudflare_hourly_stats.json"

	archiveDir = "archive"

	targetLatest  = "latest"
	targetArchive = "archive"
)

// Options controls the report document layout and where it is written.
type Options struct {
	FileName         string
	IncludeDomains   bool
	IncludePlatforms bool
	// Archive also keeps an immutable copy per run under archive/.
	Archive bool
}

type PutResult struct {
	LatestKey  string
	ArchiveKey string
	Size       int64
}

// ReportStore persists the bucket array of a run. The latest report is
// replaced wholesale on every Put; archived copies are create-if-not-exists,
// so a run id can never overwrite an earlier snapshot. The archive copy is
// written first: when it fails, the latest report is left untouched.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Put(ctx context.Context, report *models.Report) (*PutResult, error)
	// GetLatest returns the latest report document as written.
	GetLatest(ctx context.Context) ([]byte, error)
	ListArchive(ctx context.Context) ([]string, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
	opts        Options
}

func NewReportStore(fileStorage filestorages.FileStorage, opts Options) ReportStore {
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}
	return &reportStore{fileStorage: fileStorage, opts: opts}
}

// bucketDocument is the on-disk shape of one bucket. Optional rankings are
// pointers so a disabled list is omitted while an enabled empty one is [].
type bucketDocument struct {
	Since                int64                  `json:"since"`
	Until                int64                  `json:"until"`
	TotalRequests        int64                  `json:"total_requests"`
	TotalBytes           int64                  `json:"total_bytes"`
	TotalMegabytes       models.Megabytes       `json:"total_megabytes"`
	WAFMitigatedRequests int64                  `json:"waf_mitigated_requests"`
	TopUserAgents        []models.ClientRank    `json:"top_user_agents"`
	TopDomains           *[]models.DomainRank   `json:"top_domains,omitempty"`
	TopPlatforms         *[]models.PlatformRank `json:"top_platforms,omitempty"`
}

func (s *reportStore) Put(ctx context.Context, report *models.Report) (*PutResult, error) {
	data, err := s.encode(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	result := &PutResult{LatestKey: s.opts.FileName, Size: int64(len(data))}

	if s.opts.Archive {
		archiveKey := fmt.Sprintf("%s/%s-%s.json", archiveDir, report.Window.FormatWindowStart(), report.RunID)
		_, err = s.fileStorage.Put(ctx, archiveKey, bytes.NewReader(data), filestorages.PutOptions{AllowOverwrite: false})
		if err != nil {
			if errors.Is(err, filestorages.ErrFileAlreadyExists) {
				return nil, ErrArchiveAlreadyExists
			}
			return nil, fmt.Errorf("failed to archive report: %w", err)
		}
		metricReportWrittenTotal.WithLabelValues(targetArchive).Inc()
		result.ArchiveKey = archiveKey
	}

	_, err = s.fileStorage.Put(ctx, s.opts.FileName, bytes.NewReader(data), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return nil, fmt.Errorf("failed to put report: %w", err)
	}
	metricReportWrittenTotal.WithLabelValues(targetLatest).Inc()
	metricReportSizeBytes.Set(float64(len(data)))

	return result, nil
}

func (s *reportStore) GetLatest(ctx context.Context) ([]byte, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.opts.FileName)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return data, nil
}

func (s *reportStore) ListArchive(ctx context.Context) ([]string, error) {
	keys, err := s.fileStorage.List(ctx, archiveDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports: %w", err)
	}
	return keys, nil
}

// encode renders the buckets as an indented JSON array, oldest first.
func (s *reportStore) encode(report *models.Report) ([]byte, error) {
	documents := make([]bucketDocument, 0, len(report.Buckets))
	for _, record := range report.Buckets {
		documents = append(documents, s.toDocument(record))
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(documents); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportStore) toDocument(record *models.BucketRecord) bucketDocument {
	doc := bucketDocument{
		Since:                record.Since,
		Until:                record.Until,
		TotalRequests:        record.TotalRequests,
		TotalBytes:           record.TotalBytes,
		TotalMegabytes:       record.TotalMegabytes,
		WAFMitigatedRequests: record.WAFMitigatedRequests,
		TopUserAgents:        nonNil(record.TopClients),
	}
	if s.opts.IncludeDomains {
		domains := nonNil(record.TopDomains)
		doc.TopDomains = &domains
	}
	if s.opts.IncludePlatforms {
		platforms := nonNil(record.TopPlatforms)
		doc.TopPlatforms = &platforms
	}
	return doc
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
