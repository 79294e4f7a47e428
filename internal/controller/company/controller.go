// Package company provides HTTP handlers for company registration and
// management by recruiters.
package company

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/subodhkangale07/JobPortal/internal/database"
	"github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/storage"
	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

const logoObjectPrefix = "logos"

// CompanyController handles company related endpoints
type CompanyController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewCompanyController creates a new instance of CompanyController with the
// provided database connection and storage client.
func NewCompanyController(db *database.DBinstanceStruct, st storage.Client) *CompanyController {
	return &CompanyController{
		DB:      db,
		Storage: st,
	}
}

type registerInfo struct {
	CompanyName string `json:"companyName" binding:"required"`
}

type companyResponse struct {
	utilities.Response
	Company model.Company `json:"company"`
}

type companiesResponse struct {
	utilities.Response
	Companies []model.Company `json:"companies"`
}

// Register creates a company owned by the caller.
// @Summary Register a company
// @Description Company names are unique; registering an existing name fails.
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 201 {object} companyResponse "Company registered successfully"
// @Failure 400 {object} utilities.Response "Missing name or name already taken"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 403 {object} utilities.Response "Not logged in as recruiter"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /company/register [post]
func (cc *CompanyController) Register(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info registerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Company name is required."))
		return
	}

	var existing model.Company
	err = cc.DB.Where("name = ?", info.CompanyName).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.Fail("You can't register same company."))
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Database error: %s", err.Error())))
		return
	}

	company := model.Company{
		UserID: user.ID,
		EditableCompanyInfo: model.EditableCompanyInfo{
			Name: info.CompanyName,
		},
	}

	if err := cc.DB.Create(&company).Error; err != nil {
		// Unique index on name closes the check-then-insert window under
		// concurrent identical requests.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.Fail("You can't register same company."))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to register company: %s", err.Error())))
		return
	}

	c.JSON(http.StatusCreated, companyResponse{
		Response: utilities.Ok("Company registered successfully."),
		Company:  company,
	})
}

// GetMine lists all companies owned by the caller.
// @Summary List the caller's companies
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} companiesResponse "Companies of the caller"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /company/get [get]
func (cc *CompanyController) GetMine(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	companies := []model.Company{}
	if err := cc.DB.Where("user_id = ?", user.ID).Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve companies: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, companiesResponse{
		Response:  utilities.Ok("Companies found."),
		Companies: companies,
	})
}

// GetByID fetches a single company. Malformed ids are a client error, a
// missing row is not found.
// @Summary Get company by id
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company id"
// @Success 200 {object} companyResponse "Company found"
// @Failure 400 {object} utilities.Response "Invalid company ID format"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 404 {object} utilities.Response "Company not found"
// @Failure 500 {object} utilities.Response "Database error"
// @Router /company/get/{id} [get]
func (cc *CompanyController) GetByID(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Invalid company ID format"))
		return
	}

	var company model.Company
	if err := cc.DB.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Company not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve company: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, companyResponse{
		Response: utilities.Ok("Company found"),
		Company:  company,
	})
}

type updateInfo struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Website     string `form:"website"`
	Location    string `form:"location"`
}

// Update applies a partial update to a company owned by the caller. An
// attached file replaces the logo; absent fields are left untouched.
// @Summary Update a company
// @Tags Company
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company id"
// @Success 200 {object} companyResponse "Company information updated"
// @Failure 400 {object} utilities.Response "Invalid id or duplicate name"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 403 {object} utilities.Response "Caller does not own this company"
// @Failure 404 {object} utilities.Response "Company not found"
// @Failure 500 {object} utilities.Response "Database or upload error"
// @Router /company/update/{id} [put]
func (cc *CompanyController) Update(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Invalid company ID format"))
		return
	}

	var company model.Company
	if err := cc.DB.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Company not found."))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve company: %s", err.Error())))
		return
	}

	if company.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.Fail("You are not allowed to update this company"))
		return
	}

	var info updateInfo
	if err := c.ShouldBind(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(fmt.Sprintf("Invalid request body: %s", err.Error())))
		return
	}

	edited := model.EditableCompanyInfo{
		Name:        info.Name,
		Description: info.Description,
		Website:     info.Website,
		Location:    info.Location,
	}
	utilities.MergeNonEmpty(&company.EditableCompanyInfo, &edited)

	if header, err := c.FormFile("file"); err == nil {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail("Cannot open file"))
			return
		}
		defer f.Close()

		objectName := fmt.Sprintf("%s/%s%s", logoObjectPrefix, uuid.NewString(), filepath.Ext(header.Filename))
		url, err := cc.Storage.Upload(c.Request.Context(), objectName, f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to upload logo: %s", err.Error())))
			return
		}
		company.Logo = url
	}

	if err := cc.DB.Save(&company).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.Fail("Company name already in use."))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to update company: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, companyResponse{
		Response: utilities.Ok("Company information updated."),
		Company:  company,
	})
}
