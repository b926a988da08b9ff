package telemetry

import (
	"fmt"
	"log"
	"time"
)

const (
	// DefaultCapacity bounds the number of frame durations kept.
	DefaultCapacity = 256
	// DefaultReportEvery is the number of samples between two reports.
	DefaultReportEvery = 60
)

// Summary describes the durations currently held by a Ring.
type Summary struct {
	Samples int
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
}

// FPS is the frame rate implied by the average duration.
func (s Summary) FPS() float64 {
	if s.Average <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.Average)
}

func (s Summary) String() string {
	return fmt.Sprintf("%.1f fps (avg %v, min %v, max %v over %d frames)",
		s.FPS(), s.Average.Round(time.Microsecond), s.Min.Round(time.Microsecond), s.Max.Round(time.Microsecond), s.Samples)
}

// Ring keeps the most recent frame durations and reports a summary at a fixed cadence.
type Ring struct {
	samples     []time.Duration
	next        int
	full        bool
	sinceReport int
	reportEvery int
	// Report receives a summary every reportEvery samples. Defaults to logging it.
	Report func(Summary)
}

// NewRing returns a ring holding up to capacity durations that reports every
// reportEvery samples. Zero or negative values select the defaults; a capacity
// above DefaultCapacity is clamped.
func NewRing(capacity, reportEvery int) *Ring {
	if capacity <= 0 || capacity > DefaultCapacity {
		capacity = DefaultCapacity
	}
	if reportEvery <= 0 {
		reportEvery = DefaultReportEvery
	}
	return &Ring{
		samples:     make([]time.Duration, capacity),
		reportEvery: reportEvery,
		Report: func(s Summary) {
			log.Printf("Frame time: %v", s)
		},
	}
}

// Record adds one frame duration, overwriting the oldest when the ring is full.
func (r *Ring) Record(d time.Duration) {
	r.samples[r.next] = d
	r.next++
	if r.next == len(r.samples) {
		r.next = 0
		r.full = true
	}

	r.sinceReport++
	if r.sinceReport >= r.reportEvery {
		r.sinceReport = 0
		if r.Report != nil {
			r.Report(r.Summary())
		}
	}
}

// Len returns the number of durations held.
func (r *Ring) Len() int {
	if r.full {
		return len(r.samples)
	}
	return r.next
}

// Summary computes statistics over the held durations.
func (r *Ring) Summary() Summary {
	n := r.Len()
	if n == 0 {
		return Summary{}
	}
	var total time.Duration
	s := Summary{Samples: n, Min: r.samples[0], Max: r.samples[0]}
	for _, d := range r.samples[:n] {
		total += d
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
	}
	s.Average = total / time.Duration(n)
	return s
}
