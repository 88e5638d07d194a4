// Package installments models a purchase split across N monthly parcels:
// the per-parcel money math, the "i/total" progress labels, and the group
// of expense records that together represent one financed purchase.
package installments

import "github.com/shopspring/decimal"

// SplitAmount divides the financed total evenly across parcels, rounded to
// two decimal places (half up). The rounding remainder is not redistributed,
// so the scheduled parcels may differ from the financed total by up to one
// cent per parcel in aggregate.
func SplitAmount(totalWithInterest decimal.Decimal, totalParcels int) decimal.Decimal {
	if totalParcels <= 0 {
		return decimal.Zero
	}
	return totalWithInterest.Div(decimal.NewFromInt(int64(totalParcels))).Round(2)
}

// InterestPerParcel returns each parcel's share of the financing cost:
// (totalWithInterest - originalAmount) / totalParcels, clamped to zero when
// the difference is negative or the parcel count is invalid.
func InterestPerParcel(totalWithInterest, originalAmount decimal.Decimal, totalParcels int) decimal.Decimal {
	if totalParcels <= 0 {
		return decimal.Zero
	}
	interest := totalWithInterest.Sub(originalAmount)
	if interest.IsNegative() {
		return decimal.Zero
	}
	return interest.Div(decimal.NewFromInt(int64(totalParcels))).Round(2)
}
