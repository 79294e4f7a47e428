// Package job provides HTTP handlers for posting and browsing job postings.
package job

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subodhkangale07/JobPortal/internal/database"
	"github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

// JobController handles job posting related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController with the provided
// database connection.
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

type postJobInfo struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Location     string `json:"location" binding:"required"`
	Experience   int    `json:"experience" binding:"required"`
	Salary       string `json:"salary" binding:"required"`
	CompanyID    string `json:"companyId" binding:"required"`
	Requirements string `json:"requirements" binding:"required"`
	JobType      string `json:"jobType" binding:"required"`
	Position     int    `json:"position" binding:"required"`
}

type jobResponse struct {
	utilities.Response
	Job model.Job `json:"job"`
}

type jobsResponse struct {
	utilities.Response
	Jobs []model.Job `json:"jobs"`
}

// Post creates a job posting for one of the caller's companies.
// @Summary Create a job posting
// @Description Requirements is a comma-joined string and salary is coerced to a number.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 201 {object} jobResponse "New Job created successfully"
// @Failure 400 {object} utilities.Response "Missing field, bad company id or non-numeric salary"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 403 {object} utilities.Response "Not logged in as recruiter"
// @Failure 404 {object} utilities.Response "Company not found"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /job/post [post]
func (jc *JobController) Post(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info postJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Something is missing"))
		return
	}

	salary, err := strconv.ParseFloat(strings.TrimSpace(info.Salary), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Salary must be a number"))
		return
	}

	companyID, err := uuid.Parse(info.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Invalid company ID format"))
		return
	}

	var company model.Company
	if err := jc.DB.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Company not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve company: %s", err.Error())))
		return
	}

	job := model.Job{
		Title:           info.Title,
		Description:     info.Description,
		Requirements:    strings.Split(info.Requirements, ","),
		Salary:          salary,
		Location:        info.Location,
		JobType:         info.JobType,
		Position:        info.Position,
		ExperienceLevel: info.Experience,
		CompanyID:       company.ID,
		CreatedByID:     user.ID,
	}

	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to create job: %s", err.Error())))
		return
	}

	job.Company = company

	c.JSON(http.StatusCreated, jobResponse{
		Response: utilities.Ok("New Job created successfully"),
		Job:      job,
	})
}

// GetAll lists jobs matching an optional keyword, newest first, with their
// company embedded. An empty result set is a success with an empty list.
// @Summary Search job postings
// @Description Keyword matches title or description, case-insensitively, substring only.
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param keyword query string false "Search keyword"
// @Success 200 {object} jobsResponse "Matching jobs, newest first"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /job/get [get]
func (jc *JobController) GetAll(c *gin.Context) {
	keyword := c.Query("keyword")

	jobs := []model.Job{}
	result := jc.DB.Preload("Company")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		result = result.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := result.Order("created_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to fetch jobs: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, jobsResponse{
		Response: utilities.Ok("Jobs found."),
		Jobs:     jobs,
	})
}

// GetByID fetches a single job with its applications embedded.
// @Summary Get job by id
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job id"
// @Success 200 {object} jobResponse "Job found"
// @Failure 400 {object} utilities.Response "Invalid job ID format"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 404 {object} utilities.Response "Job not found"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /job/get/{id} [get]
func (jc *JobController) GetByID(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Invalid job ID format"))
		return
	}

	var job model.Job
	if err := jc.DB.
		Preload("Company").
		Preload("Applications").
		Where("id = ?", jobID).
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve job: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, jobResponse{
		Response: utilities.Ok("Job found"),
		Job:      job,
	})
}

// GetAdminJobs lists every job the caller has posted, with companies embedded.
// @Summary List the caller's posted jobs
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} jobsResponse "Jobs posted by the caller"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 403 {object} utilities.Response "Not logged in as recruiter"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /job/getadminjobs [get]
func (jc *JobController) GetAdminJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	jobs := []model.Job{}
	if err := jc.DB.
		Preload("Company").
		Where("created_by_id = ?", user.ID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to fetch jobs: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, jobsResponse{
		Response: utilities.Ok("Jobs found."),
		Jobs:     jobs,
	})
}
