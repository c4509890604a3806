// Package yield derives rental yield and price per square metre for listings and
// selects the high-yield ones.
package yield

import (
	"github.com/okian/rentyield/internal/domain/model"
	"github.com/okian/rentyield/internal/domain/number"
)

// Default calculator configuration constants.
const (
	DefaultThreshold = 7.0
	percent          = 100
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithThreshold sets the minimum (exclusive) rental yield, in percent, a listing
// needs to qualify.
func WithThreshold(threshold float64) Option {
	return func(c *Calculator) {
		c.threshold = threshold
	}
}

// Calculator derives per-listing ratios and applies the qualifying threshold.
type Calculator struct {
	threshold float64
}

// NewCalculator creates a calculator with the default 7% threshold.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		threshold: DefaultThreshold,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Threshold returns the configured qualifying threshold.
func (c *Calculator) Threshold() float64 { return c.threshold }

// Derive computes RentalYield = NetAnnualIncome / Price * 100 and
// PricePerSqM = Price / GrossLettableArea. A zero divisor produces an infinity,
// or undefined when the dividend is zero too.
func (c *Calculator) Derive(l model.Listing) model.DerivedListing {
	return model.DerivedListing{
		Listing:     l,
		RentalYield: number.Mul(number.Div(l.NetAnnualIncome, l.Price), number.Of(percent)),
		PricePerSqM: number.Div(l.Price, l.GrossLettableArea),
	}
}

// DeriveAll derives every listing, preserving order.
func (c *Calculator) DeriveAll(listings []model.Listing) []model.DerivedListing {
	out := make([]model.DerivedListing, len(listings))
	for i, l := range listings {
		out[i] = c.Derive(l)
	}
	return out
}

// Qualifies reports whether the listing's yield is strictly above the threshold.
// +Inf qualifies; undefined and -Inf never do.
func (c *Calculator) Qualifies(d model.DerivedListing) bool {
	return d.RentalYield.GreaterThan(c.threshold)
}

// Filter keeps the qualifying listings in their input order.
func (c *Calculator) Filter(derived []model.DerivedListing) []model.DerivedListing {
	out := make([]model.DerivedListing, 0, len(derived))
	for _, d := range derived {
		if c.Qualifies(d) {
			out = append(out, d)
		}
	}
	return out
}
