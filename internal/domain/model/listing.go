// Package model contains domain models passed between pipeline stages.
package model

import "github.com/okian/rentyield/internal/domain/number"

// Listing is one property record from the input table.
type Listing struct {
	ListingID int64 // unique listing id; meaningful only when HasID is set
	HasID     bool
	Address   string // empty when the column is absent
	Suburb    string // grouping key; "" when the cell is missing

	Price             number.Value
	GrossLettableArea number.Value
	NetAnnualIncome   number.Value
}

// DerivedListing is a Listing with its two computed ratios.
type DerivedListing struct {
	Listing

	RentalYield number.Value // NetAnnualIncome / Price * 100
	PricePerSqM number.Value // Price / GrossLettableArea
}

// SuburbSummary aggregates every qualifying listing of one suburb.
type SuburbSummary struct {
	Name               string
	AverageYield       number.Value
	MedianPricePerSqM  number.Value
	StdDevYield        number.Value
	AveragePricePerSqM number.Value
	PropertyCount      int
}
