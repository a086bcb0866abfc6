package results

import (
	"math"
	"time"

	"github.com/verte-zerg/typecrab/internal/key"
	"github.com/verte-zerg/typecrab/internal/model"
)

const (
	charsPerWord = 5.0
	// BucketWidth is the window used for the consistency score and the
	// speed timeline.
	BucketWidth = time.Second
	// minElapsed keeps speeds finite for very short tests.
	minElapsed = time.Second
)

// Results holds the final metrics of a test.
type Results struct {
	Mode        model.Mode
	Lang        string
	NetWPM      float64
	RawWPM      float64
	Accuracy    float64
	Consistency float64
	Total       int
	Correct     int
	Incorrect   int
	Corrected   int
	Elapsed     time.Duration
	// Timeline is the raw speed in WPM for each BucketWidth window.
	Timeline []float64
}

// Process computes the metrics for a raw timeline. It is a pure function
// and always succeeds.
func Process(raw RawResults) model.Response[Results] {
	res := Results{
		Mode:    raw.Config.Mode,
		Lang:    raw.Config.Lang,
		Elapsed: raw.Elapsed,
	}
	for _, ev := range raw.Log {
		if ev.Key.Kind != key.KindChar {
			continue
		}
		res.Total++
		if !ev.Correct {
			res.Incorrect++
		}
		if ev.Erased {
			res.Corrected++
		}
		if ev.Correct && !ev.Erased {
			res.Correct++
		}
	}

	elapsed := raw.Elapsed
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	minutes := elapsed.Minutes()
	res.RawWPM = (float64(res.Total) / charsPerWord) / minutes
	res.NetWPM = (float64(res.Correct) / charsPerWord) / minutes
	res.Accuracy = 100
	if res.Total > 0 {
		res.Accuracy = float64(res.Correct) / float64(res.Total) * 100
	}
	res.Timeline = timeline(raw)
	res.Consistency = consistency(res.Timeline)
	return model.Ok(res)
}

// timeline buckets accepted characters into BucketWidth windows starting at
// the first logged event and converts each bucket to WPM. The last bucket
// absorbs the remainder, so it spans between one and two widths. No bucket
// is narrower than minElapsed, matching the headline speeds.
func timeline(raw RawResults) []float64 {
	if len(raw.Log) == 0 {
		return nil
	}
	start := raw.Log[0].At
	count := int(raw.Elapsed / BucketWidth)
	if count < 1 {
		count = 1
	}
	chars := make([]int, count)
	for _, ev := range raw.Log {
		if ev.Key.Kind != key.KindChar {
			continue
		}
		idx := int(ev.At.Sub(start) / BucketWidth)
		if idx < 0 {
			idx = 0
		}
		if idx >= count {
			idx = count - 1
		}
		chars[idx]++
	}

	out := make([]float64, count)
	for i, n := range chars {
		width := BucketWidth
		if i == count-1 {
			if rest := raw.Elapsed - time.Duration(count-1)*BucketWidth; rest > 0 {
				width = rest
			}
		}
		if width < minElapsed {
			width = minElapsed
		}
		out[i] = (float64(n) / charsPerWord) / width.Minutes()
	}
	return out
}

// consistency maps the coefficient of variation of the bucket speeds to
// 100/(1+cv): 100 for a perfectly even pace, approaching 0 as it varies.
func consistency(speeds []float64) float64 {
	if len(speeds) < 2 {
		return 100
	}
	var sum float64
	for _, v := range speeds {
		sum += v
	}
	mean := sum / float64(len(speeds))
	if mean <= 0 {
		return 100
	}
	var variance float64
	for _, v := range speeds {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(speeds))
	cv := math.Sqrt(variance) / mean
	return 100 / (1 + cv)
}
