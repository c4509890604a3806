package aggregate

import (
	"sort"

	"github.com/okian/rentyield/internal/domain/number"
	"gonum.org/v1/gonum/stat"
)

// minSampleSize is the smallest group with a defined sample standard deviation.
const minSampleSize = 2

// split separates finite magnitudes from the non-finite members of values.
type split struct {
	finite    []float64
	posInf    int
	negInf    int
	undefined int
}

func partition(values []number.Value) split {
	s := split{finite: make([]float64, 0, len(values))}
	for _, v := range values {
		switch {
		case v.IsFinite():
			s.finite = append(s.finite, v.Float64())
		case v.IsInf(1):
			s.posInf++
		case v.IsInf(-1):
			s.negInf++
		default:
			s.undefined++
		}
	}
	return s
}

// Mean returns the arithmetic mean. Any undefined member, or infinities of both
// signs, make the mean undefined; otherwise an infinite member makes it infinite.
// An empty set has no mean.
func Mean(values []number.Value) number.Value {
	s := partition(values)
	switch {
	case len(values) == 0, s.undefined > 0, s.posInf > 0 && s.negInf > 0:
		return number.Undef()
	case s.posInf > 0:
		return number.Inf(1)
	case s.negInf > 0:
		return number.Inf(-1)
	}
	return number.Of(stat.Mean(s.finite, nil))
}

// Median returns the middle value after an ascending sort, or the mean of the two
// middle values for an even count. Any undefined member makes it undefined.
func Median(values []number.Value) number.Value {
	if len(values) == 0 || partition(values).undefined > 0 {
		return number.Undef()
	}

	sorted := make([]number.Value, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return number.Compare(sorted[i], sorted[j]) < 0
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return Mean(sorted[mid-1 : mid+1])
}

// StdDev returns the sample standard deviation (n-1 denominator). Fewer than two
// members leave no degrees of freedom and give undefined, as does any non-finite
// member.
func StdDev(values []number.Value) number.Value {
	s := partition(values)
	if len(values) < minSampleSize || len(s.finite) != len(values) {
		return number.Undef()
	}
	return number.Of(stat.StdDev(s.finite, nil))
}
