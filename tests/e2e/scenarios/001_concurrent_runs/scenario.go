package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// The fake source answers every bucket with the same data, so every bucket of
// the report must carry these values.
const (
	bucketRequests = 1000
	bucketBytes    = 52428800
	bucketMB       = "50.00"
	firewallEvents = 3
	bucketCount    = 24
)

const (
	trafficBody  = `{"data":{"viewer":{"zones":[{"httpRequests1hGroups":[{"sum":{"requests":1000,"bytes":52428800}}]}]}}}`
	firewallBody = `{"data":{"viewer":{"zones":[{"firewallEventsAdaptive":[{"action":"block","datetime":"2025-12-28T18:01:00Z"},{"action":"challenge","datetime":"2025-12-28T18:02:00Z"},{"action":"managed_block","datetime":"2025-12-28T18:03:00Z"}]}]}}}`
	samplesBody  = `{"data":{"viewer":{"zones":[{"httpRequestsAdaptive":[
		{"userAgent":"curl/7.88.1","datetime":"2025-12-28T18:01:00Z","edgeResponseStatus":200,"clientRequestHTTPHost":"example.com"},
		{"userAgent":"curl/7.88.1","datetime":"2025-12-28T18:02:00Z","edgeResponseStatus":200,"clientRequestHTTPHost":"example.com"},
		{"userAgent":"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36","datetime":"2025-12-28T18:03:00Z","edgeResponseStatus":200,"clientRequestHTTPHost":"blog.example.com"}]}]}}}`
)

// ### End - fixed configs

type bucket struct {
	Since                int64           `json:"since"`
	Until                int64           `json:"until"`
	TotalRequests        int64           `json:"total_requests"`
	TotalBytes           int64           `json:"total_bytes"`
	TotalMegabytes       json.RawMessage `json:"total_megabytes"`
	WAFMitigatedRequests int64           `json:"waf_mitigated_requests"`
	TopUserAgents        []struct {
		Browser  string `json:"browser"`
		Requests int64  `json:"requests"`
	} `json:"top_user_agents"`
}

// main runs the e2e scenario: 001_concurrent_runs
//
// It hosts a fake analytics source, then drives an edgestats server started
// with that source as its endpoint:
//
//	EDGE_STATS_SOURCE_ENDPOINT=http://localhost:9400 \
//	CLOUDFLARE_API_TOKEN=e2e ZONE_ID=e2e \
//	go run ./cmd/edgestats serve
//
// What it tests:
//   - Snapshot triggering via POST /runs
//   - Overlapping runs are rejected with 409 Conflict, never queued
//   - The latest report served by GET /reports/latest has 24 hourly buckets,
//     oldest first and contiguous, each carrying the fake source's values
//
// Expected results:
//   - Exactly one run per round returns 201, the others 409
//   - Every bucket reports 1000 requests, 50.00 MB, 3 mitigated requests and
//     top_user_agents [{cURL 2} {Chrome 1}]
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("BASE_URL", "http://localhost:8080") // edgestats server
	sourceAddr := getEnv("SOURCE_ADDR", "localhost:9400")  // fake analytics source listen address
	sourceDelay := 20 * time.Millisecond                   // per-query latency so runs overlap
	parallel := 4                                          // concurrent POST /runs per round
	rounds := 3                                            // number of rounds

	fmt.Println("Starting e2e scenario: 001_concurrent_runs")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("SOURCE_ADDR: %s\n", sourceAddr)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("ROUNDS: %d\n", rounds)
	fmt.Println()

	var sourceCalls int64
	listener, err := net.Listen("tcp", sourceAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to listen on %s: %v\n", sourceAddr, err)
		os.Exit(1)
	}
	go func() {
		_ = http.Serve(listener, fakeSource(sourceDelay, &sourceCalls))
	}()
	defer listener.Close()

	client := &http.Client{Timeout: 5 * time.Minute}
	var created, conflicted, failed int64

	for round := 1; round <= rounds; round++ {
		var wg sync.WaitGroup
		for i := 0; i < parallel; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				res, err := client.Post(baseURL+"/runs", "application/json", nil)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: Round %d run failed: %v\n", round, err)
					return
				}
				defer res.Body.Close()
				_, _ = io.Copy(io.Discard, res.Body)

				switch res.StatusCode {
				case http.StatusCreated:
					atomic.AddInt64(&created, 1)
					fmt.Printf("Round %d run completed (run id %s)\n", round, res.Header.Get("x-run-id"))
				case http.StatusConflict:
					atomic.AddInt64(&conflicted, 1)
				default:
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: Round %d run returned status %d\n", round, res.StatusCode)
				}
			}()
		}
		wg.Wait()
	}

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Created runs: %d\n", created)
	fmt.Printf("Conflicted runs: %d\n", conflicted)
	fmt.Printf("Failed runs: %d\n", failed)
	fmt.Printf("Source queries served: %d\n", atomic.LoadInt64(&sourceCalls))
	fmt.Println()

	if failed > 0 || created < int64(rounds) {
		fmt.Fprintf(os.Stderr, "ERROR: expected at least %d created runs and no failures\n", rounds)
		os.Exit(1)
	}

	if err := verifyLatest(client, baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func fakeSource(delay time.Duration, calls *int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		time.Sleep(delay)

		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(string(body), "httpRequests1hGroups"):
			_, _ = io.WriteString(w, trafficBody)
		case strings.Contains(string(body), "firewallEventsAdaptive"):
			_, _ = io.WriteString(w, firewallBody)
		case strings.Contains(string(body), "httpRequestsAdaptive"):
			_, _ = io.WriteString(w, samplesBody)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
}

func verifyLatest(client *http.Client, baseURL string) error {
	res, err := client.Get(baseURL + "/reports/latest")
	if err != nil {
		return fmt.Errorf("get latest report: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("get latest report: status %d", res.StatusCode)
	}

	var buckets []bucket
	if err := json.NewDecoder(res.Body).Decode(&buckets); err != nil {
		return fmt.Errorf("decode latest report: %w", err)
	}
	if len(buckets) != bucketCount {
		return fmt.Errorf("expected %d buckets, got %d", bucketCount, len(buckets))
	}

	for i, b := range buckets {
		if b.Until-b.Since != 3600 {
			return fmt.Errorf("bucket %d: width %ds", i, b.Until-b.Since)
		}
		if i > 0 && b.Since != buckets[i-1].Until {
			return fmt.Errorf("bucket %d: not contiguous with previous bucket", i)
		}
		if b.TotalRequests != bucketRequests || b.TotalBytes != bucketBytes || string(b.TotalMegabytes) != bucketMB {
			return fmt.Errorf("bucket %d: unexpected totals %d/%d/%s", i, b.TotalRequests, b.TotalBytes, b.TotalMegabytes)
		}
		if b.WAFMitigatedRequests != firewallEvents {
			return fmt.Errorf("bucket %d: expected %d mitigated requests, got %d", i, firewallEvents, b.WAFMitigatedRequests)
		}
		if len(b.TopUserAgents) != 2 ||
			b.TopUserAgents[0].Browser != "cURL" || b.TopUserAgents[0].Requests != 2 ||
			b.TopUserAgents[1].Browser != "Chrome" || b.TopUserAgents[1].Requests != 1 {
			return fmt.Errorf("bucket %d: unexpected top_user_agents %+v", i, b.TopUserAgents)
		}
	}

	fmt.Printf("Latest report verified: %d buckets from %s to %s\n", len(buckets),
		time.Unix(buckets[0].Since, 0).UTC().Format(time.RFC3339),
		time.Unix(buckets[len(buckets)-1].Until, 0).UTC().Format(time.RFC3339))
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
