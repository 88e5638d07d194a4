package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "grana/internal/errors"
	"grana/internal/services"
)

// InstallmentHandler exposes the installment group consistency engine.
type InstallmentHandler struct {
	installmentService services.InstallmentServicer
	expenseService     services.ExpenseServicer
}

// NewInstallmentHandler creates a new InstallmentHandler.
func NewInstallmentHandler(installmentService services.InstallmentServicer, expenseService services.ExpenseServicer) *InstallmentHandler {
	return &InstallmentHandler{
		installmentService: installmentService,
		expenseService:     expenseService,
	}
}

// ValidateGroup checks whether a parcel's group is internally consistent.
// @Summary     Validate an installment group
// @Description Check that the group a parcel belongs to has every expected member
// @Tags        installments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID of any parcel in the group"
// @Success     200 {object} installments.Validation "Validation result"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/installments/validate [get]
func (h *InstallmentHandler) ValidateGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := h.expenseService.GetExpenseByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID := ""
	if ref.InstallmentGroupID != nil {
		groupID = *ref.InstallmentGroupID
	}
	validation, err := h.installmentService.ValidateGroup(userID, groupID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"validation": validation})
}

// SynchronizeGroup renumbers a parcel's group when it is consistent.
// @Summary     Synchronize an installment group
// @Description Renumber the group's parcels in date order when the member count matches
// @Tags        installments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID of any parcel in the group"
// @Success     200 {object} map[string]bool "Group synchronized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     422 {object} ErrorResponse "Group member count mismatch"
// @Router      /expenses/{id}/installments/sync [post]
func (h *InstallmentHandler) SynchronizeGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := h.expenseService.GetExpenseByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID := ""
	if ref.InstallmentGroupID != nil {
		groupID = *ref.InstallmentGroupID
	}
	synced, err := h.installmentService.SynchronizeGroup(userID, groupID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !synced {
		respondWithError(c, apperrors.ErrGroupInconsistent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"synced": true})
}

// DeleteFuture deletes a parcel and its later siblings.
// @Summary     Delete a parcel and its future siblings
// @Description Delete the referenced parcel plus every sibling numbered at or after it
// @Tags        installments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID of the first parcel to delete"
// @Success     200 {object} services.BulkResult "Deleted record IDs"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses/{id}/installments/future [delete]
func (h *InstallmentHandler) DeleteFuture(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.installmentService.DeleteFuture(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteGroup deletes every parcel of an installment group.
// @Summary     Delete an installment group
// @Description Delete every parcel of a group, optionally narrowed by description and category
// @Tags        installments
// @Produce     json
// @Security    BearerAuth
// @Param       groupId     path  string true  "Installment group ID"
// @Param       description query string false "Narrow to parcels with this description"
// @Param       category    query string false "Narrow to parcels in this category"
// @Success     200 {object} services.BulkResult "Deleted record IDs"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /installments/groups/{groupId} [delete]
func (h *InstallmentHandler) DeleteGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.installmentService.DeleteGroup(userID, c.Param("groupId"), c.Query("description"), c.Query("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// FindOrphans scans for inconsistent installment groups.
// @Summary     Find orphan installment groups
// @Description Scan the window around a reference year for groups with missing or duplicate parcels
// @Tags        installments
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Reference year (default current)"
// @Success     200 {array} installments.Orphan "Inconsistent groups"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /installments/orphans [get]
func (h *InstallmentHandler) FindOrphans(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseQueryInt(c, "year", time.Now().Year())
	if err != nil {
		respondWithError(c, err)
		return
	}

	orphans, err := h.installmentService.FindOrphanGroups(userID, h.installmentService.WindowFor(year))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orphans": orphans})
}
