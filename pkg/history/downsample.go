package history

import (
	"time"

	"github.com/itohio/goohm/pkg/ohmmeter"
)

// Downsample reduces src to at most maxPoints elements by decimation.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
// A non-positive maxPoints copies everything.
func Downsample[T any](dst []T, src []T, maxPoints int) []T {
	if maxPoints <= 0 || len(src) <= maxPoints {
		if cap(dst) >= len(src) {
			dst = dst[:len(src)]
			copy(dst, src)
			return dst
		}
		result := make([]T, len(src))
		copy(result, src)
		return result
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]T, 0, maxPoints)
	}

	// Step size for decimation
	step := float64(len(src)) / float64(maxPoints)

	for i := range maxPoints {
		idx := int(float64(i) * step)
		if idx < len(src) {
			dst = append(dst, src[idx])
		}
	}

	return dst
}

// Point is one result prepared for plotting.
type Point struct {
	Time       time.Time
	Resistance float64 // Measured resistance, 0 when Open
	Nominal    float64 // Resolved standard value, 0 when Open
	Open       bool
}

// Points converts results to plot points, decimated to maxPoints.
func Points(results []ohmmeter.Result, maxPoints int) []Point {
	results = Downsample(nil, results, maxPoints)

	points := make([]Point, len(results))
	for i, r := range results {
		points[i] = Point{Time: r.Timestamp, Open: r.OutOfRange}
		if !r.OutOfRange {
			points[i].Resistance = float64(r.Reading.Resistance)
			points[i].Nominal = float64(r.Nominal)
		}
	}
	return points
}
