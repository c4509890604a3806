// Package types contains the report shapes written by the application
package types

import (
	"github.com/okian/rentyield/internal/domain/model"
	"github.com/okian/rentyield/internal/domain/number"
)

// DefaultRoundPlaces is the number of decimals kept in report figures.
const DefaultRoundPlaces = 2

// SuburbEntry is one ranked suburb in the report. Non-finite figures encode as null.
type SuburbEntry struct {
	Name               string       `json:"name"`
	AverageYield       number.Value `json:"averageYield"`
	MedianPricePerSqM  number.Value `json:"medianPricePerSqM"`
	StdDevYield        number.Value `json:"stdDevYield"`
	AveragePricePerSqM number.Value `json:"averagePricePerSqM"`
	PropertyCount      int          `json:"propertyCount"`
}

// Report is the top-level document
type Report struct {
	TopSuburbs []SuburbEntry `json:"topSuburbs"`
}

// Format rounds every figure of the ranked summaries to places decimals (half away
// from zero) and wraps them in a Report. TopSuburbs is never nil.
func Format(ranked []model.SuburbSummary, places int) Report {
	entries := make([]SuburbEntry, len(ranked))
	for i, s := range ranked {
		entries[i] = SuburbEntry{
			Name:               s.Name,
			AverageYield:       s.AverageYield.Round(places),
			MedianPricePerSqM:  s.MedianPricePerSqM.Round(places),
			StdDevYield:        s.StdDevYield.Round(places),
			AveragePricePerSqM: s.AveragePricePerSqM.Round(places),
			PropertyCount:      s.PropertyCount,
		}
	}
	return Report{TopSuburbs: entries}
}
