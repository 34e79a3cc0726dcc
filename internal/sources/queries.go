package sources

import (
	"fmt"
	"strconv"
	"strings"
)

// QueryKind identifies one of the logical queries issued against the metrics source.
type QueryKind string

const (
	KindTraffic    QueryKind = "traffic"
	KindFirewall   QueryKind = "firewall"
	KindRawSamples QueryKind = "raw_samples"
)

const (
	firewallEventLimit = 10000
	rawSampleLimit     = 5000
)

// SuccessStatuses is the allow-list of edge response codes for raw request samples.
var SuccessStatuses = []int{200, 201, 202, 204, 206, 301, 302, 304, 307, 308}

// MitigationActions are the firewall actions counted as mitigated requests.
var MitigationActions = []string{"block", "challenge", "jschallenge", "managed_challenge", "managed_block"}

const trafficQuery = `
query GetZoneAnalytics($zoneTag: String!, $since: DateTime!, $until: DateTime!) {
  viewer {
    zones(filter: { zoneTag: $zoneTag }) {
      httpRequests1hGroups(
        limit: 1,
        filter: { datetime_geq: $since, datetime_lt: $until }
      ) {
        sum {
          requests
          bytes
        }
      }
    }
  }
}`

const firewallQueryTemplate = `
query GetWAFMitigatedRequests($zoneTag: String!, $since: DateTime!, $until: DateTime!) {
  viewer {
    zones(filter: { zoneTag: $zoneTag }) {
      firewallEventsAdaptive(
        filter: {
          datetime_geq: $since,
          datetime_lt: $until,
          action_in: [%s]
        }
        limit: %d
      ) {
        action
        datetime
      }
    }
  }
}`

const rawSamplesQueryTemplate = `
query GetRequestSamples($zoneTag: String!, $since: DateTime!, $until: DateTime!) {
  viewer {
    zones(filter: { zoneTag: $zoneTag }) {
      httpRequestsAdaptive(
        filter: {
          datetime_geq: $since,
          datetime_lt: $until,
          edgeResponseStatus_in: [%s]
        }
        limit: %d
      ) {
        userAgent
        datetime
        edgeResponseStatus
        clientRequestHTTPHost
      }
    }
  }
}`

var queryDocuments = map[QueryKind]string{
	KindTraffic:    trafficQuery,
	KindFirewall:   fmt.Sprintf(firewallQueryTemplate, quoteJoin(MitigationActions), firewallEventLimit),
	KindRawSamples: fmt.Sprintf(rawSamplesQueryTemplate, intJoin(SuccessStatuses), rawSampleLimit),
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}

func intJoin(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// Document returns the query document for kind.
func Document(kind QueryKind) (string, bool) {
	doc, ok := queryDocuments[kind]
	return doc, ok
}
