package aggregators

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"edge-stats/internal/classifiers"
	"edge-stats/internal/models"
	"edge-stats/internal/rankings"
	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/shared/svcerrors"
	"edge-stats/internal/sources"
)

// unknownHost replaces a blank host in the domain ranking.
const unknownHost = "Unknown"

// Options selects the optional parts of a bucket record.
type Options struct {
	IncludeDomains   bool
	IncludePlatforms bool
	// ParallelQueries runs the three source queries concurrently.
	ParallelQueries bool
	// RankLimit bounds every ranking; zero means rankings.DefaultLimit.
	RankLimit int
}

//go:generate mockgen -source=bucket_processor.go -destination=./mocks/bucket_processor_mock.go -package=mocks
type BucketProcessor interface {
	// Process builds the record for r. It never fails: a query that fails
	// leaves its fields zeroed or empty.
	Process(ctx context.Context, r models.TimeRange) *models.BucketRecord
}

type bucketProcessor struct {
	source sources.MetricsSource
	opts   Options
}

func NewBucketProcessor(source sources.MetricsSource, opts Options) BucketProcessor {
	if opts.RankLimit <= 0 {
		opts.RankLimit = rankings.DefaultLimit
	}
	return &bucketProcessor{source: source, opts: opts}
}

func (p *bucketProcessor) Process(ctx context.Context, r models.TimeRange) *models.BucketRecord {
	bucketID := r.BucketID()
	ctx = loggers.Ctx(ctx).With().
		Str(loggers.FieldBucketID, bucketID).
		Str(loggers.FieldSince, r.FormatSince()).
		Logger().WithContext(ctx)

	// each query owns exactly one of these
	var (
		traffic  *models.TrafficTotals
		firewall []models.FirewallEvent
		samples  []models.RawSampleEvent
	)

	queries := []struct {
		kind sources.QueryKind
		run  func() error
	}{
		{kind: sources.KindTraffic, run: func() (err error) {
			traffic, err = p.source.QueryTraffic(ctx, r)
			return err
		}},
		{kind: sources.KindFirewall, run: func() (err error) {
			firewall, err = p.source.QueryFirewall(ctx, r)
			return err
		}},
		{kind: sources.KindRawSamples, run: func() (err error) {
			samples, err = p.source.QueryRawSamples(ctx, r)
			return err
		}},
	}

	if p.opts.ParallelQueries {
		var wg sync.WaitGroup
		for _, q := range queries {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.runQuery(ctx, q.kind, q.run)
			}()
		}
		wg.Wait()
	} else {
		for _, q := range queries {
			p.runQuery(ctx, q.kind, q.run)
		}
	}

	record := models.NewEmptyBucketRecord(r)
	if traffic != nil {
		record.TotalRequests = traffic.Requests
		record.TotalBytes = traffic.Bytes
	}
	record.TotalMegabytes = models.MegabytesFromBytes(record.TotalBytes)
	record.WAFMitigatedRequests = int64(len(firewall))
	p.rankSamples(record, samples)

	metricBucketProcessedTotal.WithLabelValues(bucketID).Inc()
	loggers.Ctx(ctx).Debug().
		Int64("total_requests", record.TotalRequests).
		Int64("waf_mitigated_requests", record.WAFMitigatedRequests).
		Int("samples", len(samples)).
		Msg("bucket processed")

	return record
}

// runQuery executes one query and absorbs its failure, panics included.
func (p *bucketProcessor) runQuery(ctx context.Context, kind sources.QueryKind, run func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("bucket query panic recovered: %v", rec)

			var panicErr error
			if err, ok := rec.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", rec)
			}
			p.degrade(ctx, kind, errQueryPanicked(kind, panicErr))
		}
	}()

	if err := run(); err != nil {
		p.degrade(ctx, kind, err)
	}
}

func (p *bucketProcessor) degrade(ctx context.Context, kind sources.QueryKind, err error) {
	code := svcerrors.CodeOf(err)
	metricQueryDegradedTotal.WithLabelValues(string(kind), code).Inc()
	loggers.Ctx(ctx).Warn().
		Err(err).
		Str(loggers.FieldQueryKind, string(kind)).
		Str(loggers.FieldErrorCode, code).
		Msg("query degraded, fields zeroed")
}

func (p *bucketProcessor) rankSamples(record *models.BucketRecord, samples []models.RawSampleEvent) {
	clients := rankings.NewTally()
	domains := rankings.NewTally()
	platforms := rankings.NewTally()

	for _, sample := range samples {
		userAgent := strings.TrimSpace(sample.UserAgent)
		if userAgent != "" {
			clients.Add(classifiers.Classify(userAgent))
			if p.opts.IncludePlatforms {
				platforms.Add(classifiers.ClassifyPlatform(userAgent))
			}
		}

		if p.opts.IncludeDomains {
			host := strings.TrimSpace(sample.Host)
			if host == "" {
				host = unknownHost
			}
			domains.Add(host)
		}
	}

	for _, e := range clients.Top(p.opts.RankLimit) {
		record.TopClients = append(record.TopClients, models.ClientRank{Category: e.Label, Requests: e.Count})
	}
	for _, e := range domains.Top(p.opts.RankLimit) {
		record.TopDomains = append(record.TopDomains, models.DomainRank{Domain: e.Label, Requests: e.Count})
	}
	for _, e := range platforms.Top(p.opts.RankLimit) {
		record.TopPlatforms = append(record.TopPlatforms, models.PlatformRank{Platform: e.Label, Requests: e.Count})
	}
}
