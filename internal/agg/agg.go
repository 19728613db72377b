// Package agg computes tumbling-window summaries over a stream of typed
// rows. Windows are fixed-size, contiguous, non-overlapping and
// epoch-aligned: window k spans [k*size, (k+1)*size). Rows must arrive in
// non-decreasing timestamp order; the aggregator holds at most one open
// window at a time, so memory stays constant regardless of stream length.
package agg

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/csvroll/csvroll/internal/coerce"
	"github.com/csvroll/csvroll/internal/errors"
)

// WindowResult is the closed-window summary handed to the caller. It is a
// value object; the aggregator never touches it again after returning it.
// Count is always at least 1 since empty windows are never emitted.
type WindowResult struct {
	// Start and End delimit the window in timestamp units, End exclusive.
	Start float64
	End   float64
	// Count is the number of rows folded into the window.
	Count int
	// Sum, Min and Max keep the scalar typing of the accumulated values:
	// integer until a float is mixed in, float from then on.
	Sum coerce.Scalar
	Min coerce.Scalar
	Max coerce.Scalar
	// Avg is Sum/Count, always a float.
	Avg float64
}

func (r WindowResult) String() string {
	return fmt.Sprintf("WindowResult(Start:%v,End:%v,Count:%d,Sum:%v,Avg:%v,Min:%v,Max:%v)",
		r.Start, r.End, r.Count, r.Sum, r.Avg, r.Min, r.Max)
}

// CSV renders the result as one output line in the column order
// window_start,window_end,count,sum,avg,min,max.
func (r WindowResult) CSV() string {
	return formatFloat(r.Start) + "," +
		formatFloat(r.End) + "," +
		strconv.Itoa(r.Count) + "," +
		r.Sum.String() + "," +
		formatFloat(r.Avg) + "," +
		r.Min.String() + "," +
		r.Max.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// accumulator is the running state of the one open window. A nil accumulator
// means no window is open; a non-nil one always has count >= 1.
type accumulator struct {
	bucket int64
	count  int
	sum    coerce.Scalar
	min    coerce.Scalar
	max    coerce.Scalar
}

// Aggregator consumes rows one at a time and emits a WindowResult exactly
// when a row crosses a window boundary. It is meant for a single owning
// goroutine; Add and Flush must be called in row order.
type Aggregator struct {
	size     float64 // window width in timestamp units (seconds)
	tsIndex  int
	valIndex int
	acc      *accumulator
}

// NewAggregator returns an aggregator with the given window size and the
// row positions of the timestamp and value columns. The window size must be
// positive and the column indices non-negative.
func NewAggregator(windowSize time.Duration, tsIndex, valIndex int) (*Aggregator, error) {
	if windowSize <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig,
			"window size must be positive, got %v", windowSize)
	}
	if tsIndex < 0 || valIndex < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig,
			"column indices must be non-negative, got ts %d val %d", tsIndex, valIndex)
	}
	return &Aggregator{
		size:     windowSize.Seconds(),
		tsIndex:  tsIndex,
		valIndex: valIndex,
	}, nil
}

// Add folds one row into the aggregation. It returns a non-nil WindowResult
// only when the row's timestamp falls into a later window than the one
// currently open, in which case the open window is closed and the row seeds
// a fresh one. Windows skipped entirely between the two buckets received no
// rows and are not emitted.
//
// Rows with a timestamp bucket earlier than the open window violate the
// sorted-arrival assumption and fail with ErrSequencingViolation rather than
// silently corrupting the stats.
func (a *Aggregator) Add(row coerce.Row) (*WindowResult, error) {
	if a.tsIndex >= len(row) || a.valIndex >= len(row) {
		return nil, errors.Wrapf(errors.ErrColumnIndexOutOfRange,
			"row has %d fields, need ts %d and val %d", len(row), a.tsIndex, a.valIndex)
	}
	ts := row[a.tsIndex]
	val := row[a.valIndex]
	if !ts.IsNumeric() {
		return nil, errors.Wrapf(errors.ErrNonNumericValue,
			"timestamp column %d holds %s %q", a.tsIndex, ts.Kind(), ts)
	}
	if !val.IsNumeric() {
		return nil, errors.Wrapf(errors.ErrNonNumericValue,
			"value column %d holds %s %q", a.valIndex, val.Kind(), val)
	}

	bucket := int64(math.Floor(ts.Float64() / a.size))
	if a.acc == nil {
		a.acc = seed(bucket, val)
		return nil, nil
	}

	switch {
	case bucket == a.acc.bucket:
		a.acc.count++
		a.acc.sum = coerce.Add(a.acc.sum, val)
		a.acc.min = coerce.Min(a.acc.min, val)
		a.acc.max = coerce.Max(a.acc.max, val)
		return nil, nil
	case bucket > a.acc.bucket:
		result := a.finalize()
		a.acc = seed(bucket, val)
		return result, nil
	default:
		return nil, errors.Wrapf(errors.ErrSequencingViolation,
			"window index %d after %d", bucket, a.acc.bucket)
	}
}

// Flush closes the currently open window, if any. It returns nil when no
// window is open, which is how an empty stream is distinguished from a
// closed window (a closed window always has rows). Flushing twice in a row
// returns nil the second time.
func (a *Aggregator) Flush() *WindowResult {
	if a.acc == nil {
		return nil
	}
	result := a.finalize()
	a.acc = nil
	return result
}

func seed(bucket int64, val coerce.Scalar) *accumulator {
	return &accumulator{
		bucket: bucket,
		count:  1,
		sum:    val,
		min:    val,
		max:    val,
	}
}

func (a *Aggregator) finalize() *WindowResult {
	start := float64(a.acc.bucket) * a.size
	return &WindowResult{
		Start: start,
		End:   start + a.size,
		Count: a.acc.count,
		Sum:   a.acc.sum,
		Avg:   a.acc.sum.Float64() / float64(a.acc.count),
		Min:   a.acc.min,
		Max:   a.acc.max,
	}
}
