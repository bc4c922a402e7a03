package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/reminders"
	"saarthi/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateLead handles the creation of a new lead
func CreateLead(c *gin.Context) {
	var request models.CreateLeadRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	lead := leadFromRequest(advisorID, request)
	if err := db.Create(&lead).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create lead", err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// GetLeads handles listing the advisor's leads with filtering, sorting and pagination
func GetLeads(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()
	var leads []models.Lead

	query := db.Where("advisor_id = ?", advisorID)

	// Filtering
	if status := c.Query("status"); status != "" {
		query = query.Where("lead_status = ?", status)
	}
	if source := c.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}
	if insuranceType := c.Query("insurance_type"); insuranceType != "" {
		query = query.Where("insurance_type = ?", insuranceType)
	}
	if teamMemberID := c.Query("team_member_id"); teamMemberID != "" {
		query = query.Where("team_member_id = ?", teamMemberID)
	}
	if name := c.Query("search"); name != "" {
		query = query.Where("full_name ILIKE ?", "%"+name+"%")
	}

	// Sorting, restricted to known columns so user input never reaches the ORDER BY raw
	sortBy := c.DefaultQuery("sort_by", "created_at")
	switch sortBy {
	case "created_at", "full_name", "lead_status", "next_follow_up_date":
	default:
		sortBy = "created_at"
	}
	sortOrder := c.DefaultQuery("sort_order", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	// Pagination with defaults
	limit, offset := pagination(c)
	query = query.Limit(limit).Offset(offset)

	if err := query.Find(&leads).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch leads", err)
		return
	}

	c.JSON(http.StatusOK, leads)
}

// GetLeadByID handles fetching a single lead with its follow-ups
func GetLeadByID(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var lead models.Lead
	if err := db.Preload("FollowUps").Where("id = ? AND advisor_id = ?", c.Param("lead_id"), advisorID).First(&lead).Error; err != nil {
		handleError(c, http.StatusNotFound, "Lead not found", err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// UpdateLead replaces a lead's editable fields
func UpdateLead(c *gin.Context) {
	var request models.CreateLeadRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var lead models.Lead
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("lead_id"), advisorID).First(&lead).Error; err != nil {
		handleError(c, http.StatusNotFound, "Lead not found", err)
		return
	}

	updated := leadFromRequest(advisorID, request)
	updated.ID = lead.ID
	updated.CreatedAt = lead.CreatedAt
	updated.CustomFields = lead.CustomFields

	if err := db.Save(&updated).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update lead", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteLead soft-deletes a lead
func DeleteLead(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var lead models.Lead
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("lead_id"), advisorID).First(&lead).Error; err != nil {
		handleError(c, http.StatusNotFound, "Lead not found", err)
		return
	}

	if err := db.Delete(&lead).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete lead", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}

// SearchLeads runs the ranked multi-strategy search over the advisor's leads
func SearchLeads(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	term := c.Query("q")
	limit, offset := pagination(c)

	searchService := services.NewSearchService()
	leads, err := searchService.SearchLeads(advisorID, term, limit, offset)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	c.JSON(http.StatusOK, leads)
}

// bulkRowError reports one rejected CSV row
type bulkRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BulkImportLeads ingests a CSV of leads. Rows are validated independently:
// good rows are created, bad rows are reported back with their line number.
func BulkImportLeads(c *gin.Context) {
	advisorID := auth.AdvisorID(c)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		handleError(c, http.StatusBadRequest, "CSV file is required", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		handleError(c, http.StatusBadRequest, "CSV file is empty or unreadable", err)
		return
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["full_name"]; !ok {
		handleError(c, http.StatusBadRequest, "CSV must have a full_name column", errors.New("missing full_name column"))
		return
	}

	db := database.GetDB()
	created := 0
	var rowErrors []bulkRowError

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, bulkRowError{Row: row, Error: "unreadable row"})
			continue
		}

		lead, err := leadFromCSVRow(advisorID, columns, record)
		if err != nil {
			rowErrors = append(rowErrors, bulkRowError{Row: row, Error: err.Error()})
			continue
		}

		if err := db.Create(&lead).Error; err != nil {
			rowErrors = append(rowErrors, bulkRowError{Row: row, Error: "failed to save"})
			continue
		}
		created++
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"failed":  len(rowErrors),
		"errors":  rowErrors,
	})
}

func leadFromRequest(advisorID uint, request models.CreateLeadRequest) models.Lead {
	return models.Lead{
		AdvisorID:        advisorID,
		TeamMemberID:     request.TeamMemberID,
		FullName:         request.FullName,
		Email:            request.Email,
		PhoneNumber:      request.PhoneNumber,
		Gender:           request.Gender,
		DateOfBirth:      request.DateOfBirth,
		Anniversary:      request.Anniversary,
		LeadStatus:       request.LeadStatus,
		Source:           request.Source,
		InsuranceType:    request.InsuranceType,
		PolicyNumber:     request.PolicyNumber,
		CoverageAmount:   request.CoverageAmount,
		CompanyName:      request.CompanyName,
		Referrer:         request.Referrer,
		PreferredPlan:    request.PreferredPlan,
		Address:          request.Address,
		Notes:            request.Notes,
		NextFollowUpDate: request.NextFollowUpDate,
	}
}

func leadFromCSVRow(advisorID uint, columns map[string]int, record []string) (models.Lead, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	fullName := field("full_name")
	if len(fullName) < 2 {
		return models.Lead{}, errors.New("full_name is required")
	}

	lead := models.Lead{
		AdvisorID:     advisorID,
		FullName:      fullName,
		Email:         field("email"),
		PhoneNumber:   field("phone_number"),
		Gender:        strings.ToLower(field("gender")),
		Source:        field("source"),
		InsuranceType: field("insurance_type"),
		PolicyNumber:  field("policy_number"),
		CompanyName:   field("company_name"),
		Referrer:      field("referrer"),
		PreferredPlan: field("preferred_plan"),
		Address:       field("address"),
		Notes:         field("notes"),
	}

	if status := field("lead_status"); status != "" {
		switch models.LeadStatus(status) {
		case models.HotLead, models.QualifiedLead, models.FollowUpLead, models.ColdLead, models.LostLead:
			lead.LeadStatus = models.LeadStatus(status)
		default:
			return models.Lead{}, fmt.Errorf("unknown lead_status %q", status)
		}
	}

	if raw := field("date_of_birth"); raw != "" {
		t, err := reminders.ParseDate(raw)
		if err != nil {
			return models.Lead{}, fmt.Errorf("invalid date_of_birth %q", raw)
		}
		lead.DateOfBirth = &t
	}
	if raw := field("anniversary"); raw != "" {
		t, err := reminders.ParseDate(raw)
		if err != nil {
			return models.Lead{}, fmt.Errorf("invalid anniversary %q", raw)
		}
		lead.Anniversary = &t
	}
	if raw := field("coverage_amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			return models.Lead{}, fmt.Errorf("invalid coverage_amount %q", raw)
		}
		lead.CoverageAmount = amount
	}

	return lead, nil
}

// pagination reads limit/offset query params with the list defaults
func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // max limit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
