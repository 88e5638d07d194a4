package installments

import (
	"fmt"
	"sort"
	"time"

	"grana/internal/models"
)

// Group is the set of expense records sharing one installment group ID.
// It is reconstructed by query, never persisted.
type Group struct {
	ID          string
	Description string
	Expected    int
	Members     []*models.Expense
	Warnings    []string
}

// Validation is the result of checking a group's member count against the
// total declared on a reference parcel.
type Validation struct {
	Valid    bool              `json:"valid"`
	Expected int               `json:"expected_count"`
	Found    int               `json:"found_count"`
	Members  []*models.Expense `json:"members"`
	Warnings []string          `json:"warnings,omitempty"`
}

// OrphanKind classifies how a group's member count diverges from its
// declared total.
type OrphanKind string

const (
	OrphanDuplicate OrphanKind = "duplicate"
	OrphanMissing   OrphanKind = "missing"
)

// Orphan flags a group whose member count no longer matches the declared
// parcel total, typically after members were deleted individually.
type Orphan struct {
	GroupID     string     `json:"group_id"`
	Description string     `json:"description"`
	Expected    int        `json:"expected"`
	Found       int        `json:"found"`
	Kind        OrphanKind `json:"kind"`
}

// CurrentOf extracts a parcel's position, preferring the structured field
// and falling back to parsing the display label.
func CurrentOf(e *models.Expense) int {
	if e.InstallmentCurrent != nil {
		return *e.InstallmentCurrent
	}
	if p, ok := ParseProgress(e.InstallmentLabel); ok {
		return p.Current
	}
	return 0
}

// TotalOf extracts a parcel's declared group size, with the same label
// fallback as CurrentOf.
func TotalOf(e *models.Expense) int {
	if e.InstallmentTotal != nil {
		return *e.InstallmentTotal
	}
	if p, ok := ParseProgress(e.InstallmentLabel); ok {
		return p.Total
	}
	return 0
}

// scheduleDate is the ordering key for parcels: due date when present,
// purchase date otherwise.
func scheduleDate(e *models.Expense) time.Time {
	if !e.DueDate.IsZero() {
		return e.DueDate
	}
	return e.PurchaseDate
}

// SortByDate orders members ascending by (due date, fallback purchase date).
// The sort is stable so equal dates keep their relative order and repeated
// renumbering stays deterministic.
func SortByDate(members []*models.Expense) {
	sort.SliceStable(members, func(i, j int) bool {
		return scheduleDate(members[i]).Before(scheduleDate(members[j]))
	})
}

// SortByCurrent orders members ascending by parcel position.
func SortByCurrent(members []*models.Expense) {
	sort.SliceStable(members, func(i, j int) bool {
		return CurrentOf(members[i]) < CurrentOf(members[j])
	})
}

// Validate checks the collected members of a group against the parcel total
// declared on the reference record. Members are returned sorted by position.
// A description that differs from the reference is recorded as a data
// quality warning, not a failure: the group ID is the join key, the
// description only a secondary integrity check.
func Validate(ref *models.Expense, members []*models.Expense) *Validation {
	expected := TotalOf(ref)

	sorted := make([]*models.Expense, len(members))
	copy(sorted, members)
	SortByCurrent(sorted)

	var warnings []string
	for _, m := range sorted {
		if m.Description != ref.Description {
			warnings = append(warnings,
				fmt.Sprintf("member %s description %q differs from group description %q", m.ID, m.Description, ref.Description))
		}
	}

	return &Validation{
		Valid:    expected > 0 && len(sorted) == expected,
		Expected: expected,
		Found:    len(sorted),
		Members:  sorted,
		Warnings: warnings,
	}
}

// Renumber reassigns positions 1..len(members) in date order, rewriting the
// structured fields and the display label on every member. It mutates the
// given records and returns them in their new order.
func Renumber(members []*models.Expense) []*models.Expense {
	SortByDate(members)
	total := len(members)
	for i, m := range members {
		current := i + 1
		m.InstallmentCurrent = &current
		t := total
		m.InstallmentTotal = &t
		m.InstallmentLabel = Label(current, total)
	}
	return members
}
