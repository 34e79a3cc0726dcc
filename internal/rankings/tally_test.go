package rankings

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_SortsByCountDescending(t *testing.T) {
	t.Parallel()

	result := Rank([]string{"Chrome", "cURL", "cURL", "Firefox", "cURL", "Chrome"})

	assert.Equal(t, []Entry{
		{Label: "cURL", Count: 3},
		{Label: "Chrome", Count: 2},
		{Label: "Firefox", Count: 1},
	}, result)
}

func TestRank_TiesKeepFirstSeenOrder(t *testing.T) {
	t.Parallel()

	result := Rank([]string{"Safari", "Chrome", "Firefox", "Chrome", "Safari", "Firefox", "Edge"})

	assert.Equal(t, []Entry{
		{Label: "Safari", Count: 2},
		{Label: "Chrome", Count: 2},
		{Label: "Firefox", Count: 2},
		{Label: "Edge", Count: 1},
	}, result)
}

func TestRank_TruncatesToTen(t *testing.T) {
	t.Parallel()

	var labels []string
	for i := 0; i < 15; i++ {
		for j := 0; j <= i; j++ {
			labels = append(labels, fmt.Sprintf("label-%02d", i))
		}
	}

	result := Rank(labels)

	assert.Len(t, result, DefaultLimit)
	assert.Equal(t, Entry{Label: "label-14", Count: 15}, result[0])
	assert.Equal(t, Entry{Label: "label-05", Count: 6}, result[9])
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()

	result := Rank(nil)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestTally_CountAndLen(t *testing.T) {
	t.Parallel()

	tally := NewTally()
	tally.Add("a")
	tally.Add("b")
	tally.Add("a")

	assert.Equal(t, 2, tally.Len())
	assert.Equal(t, int64(2), tally.Count("a"))
	assert.Equal(t, int64(1), tally.Count("b"))
	assert.Equal(t, int64(0), tally.Count("c"))
	assert.Len(t, tally.Top(1), 1)
	assert.Empty(t, tally.Top(0))
}

func TestRank_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"Chrome", "Firefox", "Safari", "cURL", "Googlebot", "Other Bot", "Edge",
		"Opera", "Vivaldi", "Uncharted", "Unknown", "Mobile Browser", "ImgProxy", "Ktor Client"}

	for round := 0; round < 200; round++ {
		n := rng.Intn(300)
		labels := make([]string, n)
		truth := make(map[string]int64)
		for i := range labels {
			labels[i] = alphabet[rng.Intn(len(alphabet))]
			truth[labels[i]]++
		}

		result := Rank(labels)

		assert.LessOrEqual(t, len(result), DefaultLimit)
		var sum int64
		for i, entry := range result {
			assert.Equal(t, truth[entry.Label], entry.Count)
			if i > 0 {
				assert.GreaterOrEqual(t, result[i-1].Count, entry.Count)
			}
			sum += entry.Count
		}
		assert.LessOrEqual(t, sum, int64(n))
		assert.Equal(t, result, Rank(labels), "ranking must be reproducible")
	}
}
