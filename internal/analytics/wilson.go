package analytics

import "math"

// wilsonZ is the z-score for a 95% confidence interval.
const wilsonZ = 1.96

// WilsonLowerBound returns the lower bound of the Wilson score interval
// for a binomial proportion. It ranks routes by positive share while
// penalizing small samples: a 4/4 route scores below a 80/100 route.
// Zero total returns 0.
func WilsonLowerBound(positive, total int) float64 {
	if total == 0 {
		return 0
	}
	n := float64(total)
	p := float64(positive) / n
	z := wilsonZ

	denominator := 1 + z*z/n
	center := p + z*z/(2*n)
	spread := z * math.Sqrt((p*(1-p)+z*z/(4*n))/n)
	return (center - spread) / denominator
}
