package installments

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitAmount(t *testing.T) {
	t.Run("even_split", func(t *testing.T) {
		got := SplitAmount(decimal.NewFromInt(1200), 12)
		if !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 100, got %s", got)
		}
	})

	t.Run("rounds_half_up", func(t *testing.T) {
		got := SplitAmount(decimal.NewFromInt(100), 3)
		if !got.Equal(decimal.RequireFromString("33.33")) {
			t.Errorf("expected 33.33, got %s", got)
		}
	})

	t.Run("zero_parcels", func(t *testing.T) {
		got := SplitAmount(decimal.NewFromInt(100), 0)
		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})

	t.Run("negative_parcels", func(t *testing.T) {
		got := SplitAmount(decimal.NewFromInt(100), -4)
		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})

	// The remainder is not redistributed, so the scheduled sum may differ
	// from the financed total, but never by more than half a cent per parcel.
	t.Run("slack_bound", func(t *testing.T) {
		total := decimal.RequireFromString("999.97")
		for n := 2; n <= 60; n++ {
			parcel := SplitAmount(total, n)
			scheduled := parcel.Mul(decimal.NewFromInt(int64(n)))
			slack := scheduled.Sub(total).Abs()
			bound := decimal.RequireFromString("0.005").Mul(decimal.NewFromInt(int64(n)))
			if slack.GreaterThan(bound) {
				t.Errorf("n=%d: slack %s exceeds bound %s", n, slack, bound)
			}
		}
	})
}

func TestInterestPerParcel(t *testing.T) {
	t.Run("positive_interest", func(t *testing.T) {
		got := InterestPerParcel(decimal.NewFromInt(1100), decimal.NewFromInt(1000), 10)
		if !got.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected 10, got %s", got)
		}
	})

	t.Run("negative_interest_clamped", func(t *testing.T) {
		got := InterestPerParcel(decimal.NewFromInt(900), decimal.NewFromInt(1000), 10)
		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})

	t.Run("zero_parcels", func(t *testing.T) {
		got := InterestPerParcel(decimal.NewFromInt(1100), decimal.NewFromInt(1000), 0)
		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})
}
