package handlers

import (
	"net/http"
	"time"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateFollowUp schedules a follow-up against one of the advisor's leads
func CreateFollowUp(c *gin.Context) {
	var request models.CreateFollowUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	// The lead must belong to the caller
	var lead models.Lead
	if err := db.Where("id = ? AND advisor_id = ?", request.LeadID, advisorID).First(&lead).Error; err != nil {
		handleError(c, http.StatusNotFound, "Lead not found", err)
		return
	}

	followUp := models.FollowUp{
		AdvisorID:    advisorID,
		LeadID:       request.LeadID,
		TeamMemberID: lead.TeamMemberID,
		FollowUpDate: request.FollowUpDate,
		Purpose:      request.Purpose,
		Notes:        request.Notes,
	}

	if err := db.Create(&followUp).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create follow-up", err)
		return
	}

	c.JSON(http.StatusCreated, followUp)
}

// GetFollowUps lists the advisor's follow-ups, optionally filtered by lead or status
func GetFollowUps(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()
	var followUps []models.FollowUp

	query := db.Preload("Lead").Where("advisor_id = ?", advisorID)

	if leadID := c.Query("lead_id"); leadID != "" {
		query = query.Where("lead_id = ?", leadID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		query = query.Where("follow_up_date >= ?", dateFrom)
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		query = query.Where("follow_up_date <= ?", dateTo)
	}

	limit, offset := pagination(c)
	if err := query.Order("follow_up_date ASC").Limit(limit).Offset(offset).Find(&followUps).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch follow-ups", err)
		return
	}

	c.JSON(http.StatusOK, followUps)
}

// UpdateFollowUp edits a follow-up's date, purpose, status or notes
func UpdateFollowUp(c *gin.Context) {
	var request models.UpdateFollowUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var followUp models.FollowUp
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("followup_id"), advisorID).First(&followUp).Error; err != nil {
		handleError(c, http.StatusNotFound, "Follow-up not found", err)
		return
	}

	if request.FollowUpDate != nil {
		followUp.FollowUpDate = *request.FollowUpDate
	}
	if request.Purpose != "" {
		followUp.Purpose = request.Purpose
	}
	if request.Status != "" {
		followUp.Status = request.Status
	}
	if request.Notes != "" {
		followUp.Notes = request.Notes
	}

	if err := db.Save(&followUp).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update follow-up", err)
		return
	}

	c.JSON(http.StatusOK, followUp)
}

// DeleteFollowUp removes a follow-up
func DeleteFollowUp(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var followUp models.FollowUp
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("followup_id"), advisorID).First(&followUp).Error; err != nil {
		handleError(c, http.StatusNotFound, "Follow-up not found", err)
		return
	}

	if err := db.Delete(&followUp).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete follow-up", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow-up deleted"})
}

// GetFollowUpSummary aggregates the advisor's follow-up workload: totals by
// status, how many are due today, and the next five upcoming
func GetFollowUpSummary(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var summary models.FollowUpSummary

	base := db.Model(&models.FollowUp{}).Where("advisor_id = ?", advisorID)
	if err := base.Count(&summary.Total).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to build summary", err)
		return
	}

	db.Model(&models.FollowUp{}).Where("advisor_id = ? AND status = ?", advisorID, models.FollowUpPending).Count(&summary.Pending)
	db.Model(&models.FollowUp{}).Where("advisor_id = ? AND status = ?", advisorID, models.FollowUpCompleted).Count(&summary.Completed)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	db.Model(&models.FollowUp{}).
		Where("advisor_id = ? AND status = ? AND follow_up_date >= ? AND follow_up_date < ?",
			advisorID, models.FollowUpPending, dayStart, dayEnd).
		Count(&summary.DueToday)

	if err := db.Preload("Lead").
		Where("advisor_id = ? AND status = ? AND follow_up_date >= ?", advisorID, models.FollowUpPending, now).
		Order("follow_up_date ASC").Limit(5).
		Find(&summary.Upcoming).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to build summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
