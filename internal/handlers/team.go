package handlers

import (
	"net/http"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateTeamMember adds an agent under the advisor's account
func CreateTeamMember(c *gin.Context) {
	var request models.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	member := models.TeamMember{
		AdvisorID:   advisorID,
		FullName:    request.FullName,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
		Role:        request.Role,
		Active:      true,
	}

	if err := db.Create(&member).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create team member", err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetTeamMembers lists the advisor's team
func GetTeamMembers(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var members []models.TeamMember
	if err := db.Where("advisor_id = ?", advisorID).Order("full_name ASC").Find(&members).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch team members", err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// UpdateTeamMember edits a team member's details or deactivates them
func UpdateTeamMember(c *gin.Context) {
	var request models.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var member models.TeamMember
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("member_id"), advisorID).First(&member).Error; err != nil {
		handleError(c, http.StatusNotFound, "Team member not found", err)
		return
	}

	if request.FullName != "" {
		member.FullName = request.FullName
	}
	if request.PhoneNumber != "" {
		member.PhoneNumber = request.PhoneNumber
	}
	if request.Role != "" {
		member.Role = request.Role
	}
	if request.Active != nil {
		member.Active = *request.Active
	}

	if err := db.Save(&member).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update team member", err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteTeamMember soft-deletes a team member; their leads stay with the advisor
func DeleteTeamMember(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var member models.TeamMember
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("member_id"), advisorID).First(&member).Error; err != nil {
		handleError(c, http.StatusNotFound, "Team member not found", err)
		return
	}

	if err := db.Delete(&member).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete team member", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member deleted"})
}
