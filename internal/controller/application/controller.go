// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/subodhkangale07/JobPortal/internal/database"
	"github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController
// with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

type applicationResponse struct {
	utilities.Response
	Application model.Application `json:"application"`
}

type applicationsResponse struct {
	utilities.Response
	Applications []model.Application `json:"application"`
}

type jobWithApplicantsResponse struct {
	utilities.Response
	Job model.Job `json:"job"`
}

// Apply creates a pending application of the caller for the given job.
// @Summary Apply to a job
// @Description One application per job per user. A duplicate submission fails.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job id"
// @Success 201 {object} applicationResponse "Applied successfully"
// @Failure 400 {object} utilities.Response "Invalid job id or already applied"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 404 {object} utilities.Response "Job not found"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /application/apply/{id} [get]
func (ac *ApplicationController) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Invalid job ID format"))
		return
	}

	// Prevent duplicate applications: check if this user already applied
	// to the same job.
	existing := model.Application{}
	if err := ac.DB.
		Where("applicant_id = ? AND job_id = ?", user.ID, jobID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("You Applied already"))
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.Fail("Failed to check existing application"))
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("No job found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve job: %s", err.Error())))
		return
	}

	application := model.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		Status:      model.ApplicationStatusPending,
	}

	if err := ac.DB.Omit("Job", "Applicant").Create(&application).Error; err != nil {
		// Two racing submissions both pass the pre-check; the composite
		// unique index turns the loser into the same client error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.Fail("You Applied already"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to create application: %s", err.Error())))
		return
	}

	c.JSON(http.StatusCreated, applicationResponse{
		Response:    utilities.Ok("Applied successfully"),
		Application: application,
	})
}

// GetMine lists every application of the caller, newest first, with the job
// and that job's company embedded.
// @Summary List the caller's applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} applicationsResponse "Applications of the caller"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /application/get [get]
func (ac *ApplicationController) GetMine(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	applications := []model.Application{}
	if err := ac.DB.
		Preload("Job").
		Preload("Job.Company").
		Where("applicant_id = ?", user.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to fetch applications: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, applicationsResponse{
		Response:     utilities.Ok("Applications found."),
		Applications: applications,
	})
}

// GetApplicants returns a job with every application and each applicant
// embedded, for the recruiter view.
// @Summary List applicants of a job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job id"
// @Success 200 {object} jobWithApplicantsResponse "Job with applications and applicants"
// @Failure 400 {object} utilities.Response "Invalid job id"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 403 {object} utilities.Response "Not logged in as recruiter"
// @Failure 404 {object} utilities.Response "Job not found"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /application/{id}/applicants [get]
func (ac *ApplicationController) GetApplicants(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Invalid job ID format"))
		return
	}

	var job model.Job
	if err := ac.DB.
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("applications.created_at DESC")
		}).
		Preload("Applications.Applicant").
		Where("id = ?", jobID).
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve job: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, jobWithApplicantsResponse{
		Response: utilities.Ok("Applicants found."),
		Job:      job,
	})
}

type statusInfo struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus sets an application's status. The value is validated against
// the known set ignoring case, then stored exactly as supplied.
// @Summary Update application status
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application id"
// @Success 200 {object} applicationResponse "Status updated successfully"
// @Failure 400 {object} utilities.Response "Missing, unknown status or invalid id"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 403 {object} utilities.Response "Not logged in as recruiter"
// @Failure 404 {object} utilities.Response "Application not found"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /application/status/{id} [post]
func (ac *ApplicationController) UpdateStatus(c *gin.Context) {
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Invalid application ID format"))
		return
	}

	var info statusInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Status is required"))
		return
	}

	if !model.ValidStatus(info.Status) {
		c.JSON(http.StatusBadRequest, utilities.Fail(fmt.Sprintf("Status '%s' not allowed", info.Status)))
		return
	}

	var application model.Application
	if err := ac.DB.Where("id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Application not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve application: %s", err.Error())))
		return
	}

	// Keep the caller's casing, the frontend displays it verbatim
	application.Status = info.Status
	if err := ac.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to update status: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, applicationResponse{
		Response:    utilities.Ok("Status updated successfully"),
		Application: application,
	})
}
