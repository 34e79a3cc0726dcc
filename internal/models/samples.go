package models

import "time"

// TrafficTotals is the aggregate sum of requests and bytes over a range.
type TrafficTotals struct {
	Requests int64
	Bytes    int64
}

// FirewallEvent is a single mitigation action taken by the edge firewall.
type FirewallEvent struct {
	Action   string
	Datetime time.Time
}

// RawSampleEvent is one sampled request. It is consumed by the classifiers
// and discarded; it is never persisted.
type RawSampleEvent struct {
	UserAgent string
	Host      string
	Status    int
	Datetime  time.Time
}
