// Package ranking orders suburb summaries by average yield.
package ranking

import (
	"slices"

	"github.com/okian/rentyield/internal/domain/model"
	"github.com/okian/rentyield/internal/domain/number"
)

// DefaultTopN is the number of suburbs kept in the report.
const DefaultTopN = 5

// TopN returns up to n summaries ordered by AverageYield descending. The sort is
// stable, so equal yields keep their input (first-occurrence) order. +Inf ranks
// first, then finite yields, then -Inf, and undefined yields last. The input slice
// is not modified. A non-positive n yields an empty result.
func TopN(summaries []model.SuburbSummary, n int) []model.SuburbSummary {
	ranked := slices.Clone(summaries)
	slices.SortStableFunc(ranked, func(a, b model.SuburbSummary) int {
		return number.Compare(b.AverageYield, a.AverageYield)
	})

	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []model.SuburbSummary{}
	}
	return ranked
}
