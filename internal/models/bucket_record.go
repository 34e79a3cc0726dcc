package models

import (
	"math"
	"strconv"
)

const bytesPerMegabyte = 1 << 20

// Megabytes is a size in MiB rounded to two decimals. It always serializes
// with exactly two fractional digits (e.g. 50.00).
type Megabytes float64

// MegabytesFromBytes converts a byte count to Megabytes, rounded to 2 decimals.
func MegabytesFromBytes(bytes int64) Megabytes {
	return Megabytes(math.Round(float64(bytes)/bytesPerMegabyte*100) / 100)
}

func (m Megabytes) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m), 'f', 2, 64)), nil
}

// ClientRank is one entry of the client-type ranking.
type ClientRank struct {
	Category string `json:"browser"`
	Requests int64  `json:"requests"`
}

// DomainRank is one entry of the requested-host ranking.
type DomainRank struct {
	Domain   string `json:"domain"`
	Requests int64  `json:"requests"`
}

// PlatformRank is one entry of the client operating-system ranking.
type PlatformRank struct {
	Platform string `json:"platform"`
	Requests int64  `json:"requests"`
}

// BucketRecord is the normalized aggregate for one hourly bucket.
//
// Example JSON:
//
//	{
//	  "since": 1766944800,
//	  "until": 1766948400,
//	  "total_requests": 1000,
//	  "total_bytes": 52428800,
//	  "total_megabytes": 50.00,
//	  "waf_mitigated_requests": 3,
//	  "top_user_agents": [
//	    {"browser": "cURL", "requests": 2},
//	    {"browser": "Chrome", "requests": 1}
//	  ],
//	  "top_domains": [
//	    {"domain": "example.com", "requests": 3}
//	  ]
//	}
//
// A record is built once by the bucket processor and never mutated afterwards.
type BucketRecord struct {
	Since                int64          `json:"since"`
	Until                int64          `json:"until"`
	TotalRequests        int64          `json:"total_requests"`
	TotalBytes           int64          `json:"total_bytes"`
	TotalMegabytes       Megabytes      `json:"total_megabytes"`
	WAFMitigatedRequests int64          `json:"waf_mitigated_requests"`
	TopClients           []ClientRank   `json:"top_user_agents"`
	TopDomains           []DomainRank   `json:"top_domains"`
	TopPlatforms         []PlatformRank `json:"top_platforms"`
}

// NewEmptyBucketRecord returns a zeroed record for r with empty (non-nil) rankings.
func NewEmptyBucketRecord(r TimeRange) *BucketRecord {
	return &BucketRecord{
		Since:          r.Since.Unix(),
		Until:          r.Until.Unix(),
		TotalMegabytes: MegabytesFromBytes(0),
		TopClients:     []ClientRank{},
		TopDomains:     []DomainRank{},
		TopPlatforms:   []PlatformRank{},
	}
}
