package handlers

import (
	"fmt"
	"net/http"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomer handles the creation of a new customer
func CreateCustomer(c *gin.Context) {
	var request models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	customer := models.Customer{
		AdvisorID:       advisorID,
		TeamMemberID:    request.TeamMemberID,
		FullName:        request.FullName,
		Email:           request.Email,
		PhoneNumber:     request.PhoneNumber,
		Gender:          request.Gender,
		DateOfBirth:     request.DateOfBirth,
		Anniversary:     request.Anniversary,
		RenewalDate:     request.RenewalDate,
		AppointmentDate: request.AppointmentDate,
		PolicyNumber:    request.PolicyNumber,
		PlanName:        request.PlanName,
		PremiumAmount:   request.PremiumAmount,
		CoverageAmount:  request.CoverageAmount,
		CompanyName:     request.CompanyName,
		Address:         request.Address,
		Notes:           request.Notes,
	}

	if err := db.Create(&customer).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create customer", err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers handles listing the advisor's customers with filtering and pagination
func GetCustomers(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()
	var customers []models.Customer

	query := db.Where("advisor_id = ?", advisorID)

	if name := c.Query("search"); name != "" {
		query = query.Where("full_name ILIKE ?", "%"+name+"%")
	}
	if plan := c.Query("plan_name"); plan != "" {
		query = query.Where("plan_name = ?", plan)
	}
	if company := c.Query("company_name"); company != "" {
		query = query.Where("company_name = ?", company)
	}

	sortBy := c.DefaultQuery("sort_by", "created_at")
	switch sortBy {
	case "created_at", "full_name", "renewal_date":
	default:
		sortBy = "created_at"
	}
	sortOrder := c.DefaultQuery("sort_order", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	limit, offset := pagination(c)
	if err := query.Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch customers", err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomerByID handles fetching a single customer
func GetCustomerByID(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var customer models.Customer
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("customer_id"), advisorID).First(&customer).Error; err != nil {
		handleError(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer replaces a customer's editable fields
func UpdateCustomer(c *gin.Context) {
	var request models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var customer models.Customer
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("customer_id"), advisorID).First(&customer).Error; err != nil {
		handleError(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	customer.TeamMemberID = request.TeamMemberID
	customer.FullName = request.FullName
	customer.Email = request.Email
	customer.PhoneNumber = request.PhoneNumber
	customer.Gender = request.Gender
	customer.DateOfBirth = request.DateOfBirth
	customer.Anniversary = request.Anniversary
	customer.RenewalDate = request.RenewalDate
	customer.AppointmentDate = request.AppointmentDate
	customer.PolicyNumber = request.PolicyNumber
	customer.PlanName = request.PlanName
	customer.PremiumAmount = request.PremiumAmount
	customer.CoverageAmount = request.CoverageAmount
	customer.CompanyName = request.CompanyName
	customer.Address = request.Address
	customer.Notes = request.Notes

	if err := db.Save(&customer).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update customer", err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft-deletes a customer
func DeleteCustomer(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var customer models.Customer
	if err := db.Where("id = ? AND advisor_id = ?", c.Param("customer_id"), advisorID).First(&customer).Error; err != nil {
		handleError(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	if err := db.Delete(&customer).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete customer", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// ConvertLeadToCustomer promotes a lead into a customer, copying identity
// fields from the lead and taking policy details from the request. The lead
// is soft-deleted so it drops out of the nurturing worklist.
func ConvertLeadToCustomer(c *gin.Context) {
	var request models.ConvertLeadRequest
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

	customer := models.Customer{
		AdvisorID:       advisorID,
		TeamMemberID:    lead.TeamMemberID,
		LeadID:          &lead.ID,
		FullName:        lead.FullName,
		Email:           lead.Email,
		PhoneNumber:     lead.PhoneNumber,
		Gender:          lead.Gender,
		DateOfBirth:     lead.DateOfBirth,
		Anniversary:     lead.Anniversary,
		RenewalDate:     request.RenewalDate,
		AppointmentDate: request.AppointmentDate,
		PolicyNumber:    request.PolicyNumber,
		PlanName:        request.PlanName,
		PremiumAmount:   request.PremiumAmount,
		CoverageAmount:  request.CoverageAmount,
		CompanyName:     request.CompanyName,
		Address:         lead.Address,
		Notes:           lead.Notes,
	}
	if customer.PolicyNumber == "" {
		customer.PolicyNumber = lead.PolicyNumber
	}
	if customer.CoverageAmount == 0 {
		customer.CoverageAmount = lead.CoverageAmount
	}
	if customer.CompanyName == "" {
		customer.CompanyName = lead.CompanyName
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		return tx.Delete(&lead).Error
	})
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to convert lead", err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}
