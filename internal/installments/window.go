package installments

// DefaultHorizonYears is how many years beyond the reference year group
// scans look for sibling parcels. A 60-parcel purchase spans five years, but
// anything created by the expense form fits well inside this bound.
const DefaultHorizonYears = 3

// Window bounds the years scanned when collecting the members of a group.
// It is injected rather than hard-coded so the bound is testable and
// tunable per deployment.
type Window struct {
	FromYear int
	ToYear   int
}

// WindowFrom builds a window starting at the reference year and extending
// horizonYears beyond it. Non-positive horizons fall back to the default.
func WindowFrom(referenceYear, horizonYears int) Window {
	if horizonYears <= 0 {
		horizonYears = DefaultHorizonYears
	}
	return Window{FromYear: referenceYear, ToYear: referenceYear + horizonYears}
}

// Contains reports whether the year falls inside the window.
func (w Window) Contains(year int) bool {
	return year >= w.FromYear && year <= w.ToYear
}
