package lightmap

import (
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// Stats accumulates RGB samples in double precision
type Stats struct {
	Sum   core.Vec3
	SumSq core.Vec3
	N     int
}

// AddSample adds one color sample
func (s *Stats) AddSample(color core.Vec3) {
	s.Sum = s.Sum.Add(color)
	s.SumSq = s.SumSq.Add(color.Square())
	s.N++
}

// Add merges other into s
func (s *Stats) Add(other Stats) {
	s.Sum = s.Sum.Add(other.Sum)
	s.SumSq = s.SumSq.Add(other.SumSq)
	s.N += other.N
}

// Mean returns the average color, black without samples
func (s Stats) Mean() core.Vec3 {
	if s.N == 0 {
		return core.Vec3{}
	}
	return s.Sum.Multiply(1.0 / float64(s.N))
}

// Variance is averaged over the three channels. Round-off can push a
// near-zero variance below zero, so it is clamped.
func (s Stats) Variance() float64 {
	if s.N == 0 {
		return 0
	}
	n := float64(s.N)
	mean := s.Sum.Multiply(1 / n)
	variance := s.SumSq.Multiply(1 / n).Subtract(mean.Square()).Average()
	return math.Max(variance, 0)
}

// StdDev is the square root of Variance
func (s Stats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// ErrorSquared is the squared standard error of the mean
func (s Stats) ErrorSquared() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Variance() / float64(s.N)
}
