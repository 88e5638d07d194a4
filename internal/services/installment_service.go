package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/installments"
	"grana/internal/logger"
	"grana/internal/models"
)

// installmentService keeps installment groups numerically consistent. It is
// deliberately conservative: it never guesses a renumbering when the member
// count does not match the declared total, because it cannot know which
// parcel is missing versus duplicated without user intervention.
type installmentService struct {
	db           *gorm.DB
	horizonYears int
	invalidator  CacheInvalidator
}

// NewInstallmentService creates a new InstallmentServicer. horizonYears
// bounds how far past a reference year group scans look for siblings.
func NewInstallmentService(db *gorm.DB, horizonYears int, invalidator CacheInvalidator) InstallmentServicer {
	return &installmentService{db: db, horizonYears: horizonYears, invalidator: invalidator}
}

// WindowFor builds the scan window anchored at the reference year.
func (s *installmentService) WindowFor(referenceYear int) installments.Window {
	return installments.WindowFrom(referenceYear, s.horizonYears)
}

// collectMembers loads every parcel of a group within the window, all months
// included. The group ID is the join key; description mismatches surface as
// warnings during validation instead of silently narrowing the result.
func (s *installmentService) collectMembers(userID, groupID string, window installments.Window) ([]*models.Expense, error) {
	var members []*models.Expense
	err := s.db.
		Where("user_id = ? AND installment_group_id = ? AND year BETWEEN ? AND ?",
			userID, groupID, window.FromYear, window.ToYear).
		Find(&members).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// ValidateGroup checks a group's member count against the total declared on
// the reference parcel. A missing group is simply an invalid result with
// zero members, never an error.
func (s *installmentService) ValidateGroup(userID, groupID string, ref *models.Expense) (*installments.Validation, error) {
	if ref == nil || groupID == "" {
		return &installments.Validation{}, nil
	}
	members, err := s.collectMembers(userID, groupID, s.WindowFor(ref.Year))
	if err != nil {
		return nil, err
	}
	return installments.Validate(ref, members), nil
}

// SynchronizeGroup renumbers a valid group into date order and rewrites the
// display labels. It fails closed: when the member count does not match the
// expected total it performs no mutation and returns false. Synchronizing an
// already-consistent group is a no-op that still reports true.
func (s *installmentService) SynchronizeGroup(userID, groupID string, ref *models.Expense) (bool, error) {
	validation, err := s.ValidateGroup(userID, groupID, ref)
	if err != nil {
		return false, err
	}
	if !validation.Valid {
		logger.Get().Warnw("refusing to synchronize inconsistent installment group",
			"group_id", groupID,
			"expected", validation.Expected,
			"found", validation.Found,
		)
		return false, nil
	}

	members := installments.Renumber(validation.Members)
	if err := s.persistNumbering(userID, members); err != nil {
		return false, err
	}
	return true, nil
}

// ReindexAfterDeletion renumbers whatever members remain after a parcel was
// deleted: survivors become 1..n in date order with total=n. Unlike
// SynchronizeGroup this renumbers regardless of the declared total, because
// deletion is exactly the event that invalidates it.
func (s *installmentService) ReindexAfterDeletion(userID, groupID, description string, window installments.Window) error {
	if groupID == "" {
		return nil
	}
	members, err := s.collectMembers(userID, groupID, window)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}

	for _, m := range members {
		if description != "" && m.Description != description {
			logger.Get().Warnw("installment group member description mismatch",
				"group_id", groupID,
				"member_id", m.ID,
				"expected_description", description,
			)
		}
	}

	installments.Renumber(members)
	return s.persistNumbering(userID, members)
}

// persistNumbering writes each member's position fields back to the store.
func (s *installmentService) persistNumbering(userID string, members []*models.Expense) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range members {
			err := tx.Model(&models.Expense{}).
				Where("id = ? AND user_id = ?", m.ID, userID).
				Updates(map[string]interface{}{
					"installment_current": *m.InstallmentCurrent,
					"installment_total":   *m.InstallmentTotal,
					"installment_label":   m.InstallmentLabel,
				}).Error
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			s.invalidate(userID, m.Year)
		}
		return nil
	})
}

// DeleteMember deletes a single parcel and renumbers the survivors. Deleting
// a record that does not exist is a no-op with an empty result.
func (s *installmentService) DeleteMember(userID, expenseID string) (*BulkResult, error) {
	result := &BulkResult{}

	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&expense).Error; err != nil {
		result.Failed = append(result.Failed, expense.ID)
		return result, nil
	}
	result.Succeeded = append(result.Succeeded, expense.ID)
	s.invalidate(userID, expense.Year)

	if expense.InstallmentGroupID != nil {
		window := s.WindowFor(expense.Year)
		if err := s.ReindexAfterDeletion(userID, *expense.InstallmentGroupID, expense.Description, window); err != nil {
			return result, err
		}
	}
	return result, nil
}

// DeleteFuture deletes the reference parcel and every sibling scheduled at
// or after it. Earlier parcels are left untouched and unnumbered; the next
// validation pass flags the group for repair. Partial failures are reported
// per record rather than collapsed into a boolean.
func (s *installmentService) DeleteFuture(userID, expenseID string) (*BulkResult, error) {
	result := &BulkResult{}

	var ref models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if ref.InstallmentGroupID == nil {
		return s.DeleteMember(userID, expenseID)
	}

	members, err := s.collectMembers(userID, *ref.InstallmentGroupID, s.WindowFor(ref.Year))
	if err != nil {
		return nil, err
	}

	refCurrent := installments.CurrentOf(&ref)
	for _, m := range members {
		if installments.CurrentOf(m) < refCurrent {
			continue
		}
		if err := s.db.Delete(m).Error; err != nil {
			result.Failed = append(result.Failed, m.ID)
			continue
		}
		result.Succeeded = append(result.Succeeded, m.ID)
		s.invalidate(userID, m.Year)
	}
	return result, nil
}

// DeleteGroup deletes every member matching group, description, and
// category. Records in the group filed under a different description or
// category survive, mirroring the dashboard's "delete entire purchase"
// action which matches on all three.
func (s *installmentService) DeleteGroup(userID, groupID, description, category string) (*BulkResult, error) {
	result := &BulkResult{}
	if groupID == "" {
		return result, nil
	}

	var members []*models.Expense
	query := s.db.Where("user_id = ? AND installment_group_id = ?", userID, groupID)
	if description != "" {
		query = query.Where("description = ?", description)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, m := range members {
		if err := s.db.Delete(m).Error; err != nil {
			result.Failed = append(result.Failed, m.ID)
			continue
		}
		result.Succeeded = append(result.Succeeded, m.ID)
		s.invalidate(userID, m.Year)
	}
	return result, nil
}

// FindOrphanGroups scans the window for groups whose member count diverges
// from the declared parcel total, classifying each as having duplicate or
// missing members.
func (s *installmentService) FindOrphanGroups(userID string, window installments.Window) ([]installments.Orphan, error) {
	var records []*models.Expense
	err := s.db.
		Where("user_id = ? AND installment_group_id IS NOT NULL AND year BETWEEN ? AND ?",
			userID, window.FromYear, window.ToYear).
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	groups := make(map[string][]*models.Expense)
	for _, r := range records {
		groups[*r.InstallmentGroupID] = append(groups[*r.InstallmentGroupID], r)
	}

	var orphans []installments.Orphan
	for groupID, members := range groups {
		installments.SortByCurrent(members)
		ref := members[0]
		expected := installments.TotalOf(ref)
		found := len(members)
		if expected == 0 || found == expected {
			continue
		}

		kind := installments.OrphanMissing
		if found > expected {
			kind = installments.OrphanDuplicate
		}
		orphans = append(orphans, installments.Orphan{
			GroupID:     groupID,
			Description: ref.Description,
			Expected:    expected,
			Found:       found,
			Kind:        kind,
		})
	}
	return orphans, nil
}

func (s *installmentService) invalidate(userID string, year int) {
	if s.invalidator != nil {
		s.invalidator.InvalidateYear(userID, year)
	}
}
