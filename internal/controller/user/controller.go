// Package user provides HTTP handlers for account registration, login and
// profile management.
package user

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/subodhkangale07/JobPortal/internal/auth"
	"github.com/subodhkangale07/JobPortal/internal/database"
	"github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/storage"
	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

const (
	photoObjectPrefix  = "photos"
	resumeObjectPrefix = "resumes"
)

// UserController handles account related endpoints
type UserController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewUserController creates a new instance of UserController with the provided
// database connection and storage client.
func NewUserController(db *database.DBinstanceStruct, st storage.Client) *UserController {
	return &UserController{
		DB:      db,
		Storage: st,
	}
}

type registerInfo struct {
	FullName    string `form:"fullName" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	PhoneNumber string `form:"phoneNumber" binding:"required"`
	Password    string `form:"password" binding:"required"`
	Role        string `form:"role" binding:"required,oneof=student recruiter"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student recruiter"`
}

type userResponse struct {
	utilities.Response
	User model.User `json:"user"`
}

type loginResponse struct {
	utilities.Response
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// uploadFormFile streams a multipart file to object storage and returns the
// public URL.
func (uc *UserController) uploadFormFile(c *gin.Context, header *multipart.FileHeader, prefix string) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), filepath.Ext(header.Filename))
	return uc.Storage.Upload(c.Request.Context(), objectName, f)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Register handles account creation from a multipart form.
// @Summary Register a new student or recruiter account
// @Description All of fullName, email, phoneNumber, password and role are required. An optional `file` part becomes the profile photo.
// @Tags User
// @Accept mpfd
// @Produce json
// @Success 201 {object} userResponse "Account created successfully"
// @Failure 400 {object} utilities.Response "Missing field or email already registered"
// @Failure 500 {object} utilities.Response "Database, hashing or upload error"
// @Router /user/register [post]
func (uc *UserController) Register(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBind(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Something is missing. Please fill all fields."))
		return
	}

	var existing model.User
	err := uc.DB.Where("email = ?", info.Email).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.Fail("User with this email already exists."))
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Database error: %s", err.Error())))
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed hash password: %s", err.Error())))
		return
	}

	newUser := model.User{
		EditableUserInfo: model.EditableUserInfo{
			FullName:    info.FullName,
			Email:       info.Email,
			PhoneNumber: info.PhoneNumber,
		},
		Password: hashedPassword,
		Role:     info.Role,
		Profile: model.Profile{
			Skills: []string{},
		},
	}

	// Optional profile photo
	if header, err := c.FormFile("file"); err == nil {
		url, err := uc.uploadFormFile(c, header, photoObjectPrefix)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to upload profile photo: %s", err.Error())))
			return
		}
		newUser.Profile.ProfilePhoto = url
	}

	if err := uc.DB.Create(&newUser).Error; err != nil {
		// The unique indexes on email and phone close the gap between the
		// existence check above and this insert.
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, utilities.Fail("User with this email or phone number already exists."))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to create user: %s", err.Error())))
		return
	}

	c.JSON(http.StatusCreated, userResponse{
		Response: utilities.Ok("Account created successfully."),
		User:     newUser,
	})
}

// Login verifies credentials and issues a signed access token.
// @Summary Log in with email, password and role
// @Description The same failure message covers unknown email, wrong password and role mismatch.
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} loginResponse "Token issued and set as cookie"
// @Failure 400 {object} utilities.Response "Missing field or incorrect credentials"
// @Failure 500 {object} utilities.Response "Database or signing error"
// @Router /user/login [post]
func (uc *UserController) Login(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Something is missing. Fill it."))
		return
	}

	var user model.User
	err := uc.DB.Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusBadRequest, utilities.Fail("Incorrect email or password."))
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Database error: %s", err.Error())))
		return
	}

	if !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusBadRequest, utilities.Fail("Incorrect email or password."))
		return
	}

	// Same message as above so a caller cannot probe which field was wrong
	if info.Role != user.Role {
		c.JSON(http.StatusBadRequest, utilities.Fail("Incorrect email or password."))
		return
	}

	token, err := auth.GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to generate access token: %s", err.Error())))
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, int(auth.TokenLifetime.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, loginResponse{
		Response: utilities.Ok(fmt.Sprintf("Welcome back %s", user.FullName)),
		User:     user,
		Token:    token,
	})
}

// Logout clears the token cookie. Tokens are not tracked server side, the
// client simply discards its copy.
// @Summary Log out
// @Tags User
// @Produce json
// @Success 200 {object} utilities.Response "Logged out"
// @Router /user/logout [get]
func (uc *UserController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, utilities.Ok("Logged out successfully."))
}

type profileUpdateInfo struct {
	FullName    string `form:"fullName"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phoneNumber"`
	Bio         string `form:"bio"`
	Skills      string `form:"skills"`
}

// UpdateProfile applies a partial profile update for the caller. Only
// supplied fields are mutated; an attached file replaces the resume.
// @Summary Update the caller's profile
// @Description Accepts fullName, email, phoneNumber, bio and a comma-joined skills string. An optional `file` part becomes the resume.
// @Tags User
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} userResponse "Profile updated successfully"
// @Failure 400 {object} utilities.Response "Invalid form or duplicate email/phone"
// @Failure 401 {object} utilities.Response "Invalid token"
// @Failure 500 {object} utilities.Response "Database or upload error"
// @Router /user/profile/update [post]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info profileUpdateInfo
	if err := c.ShouldBind(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(fmt.Sprintf("Invalid request body: %s", err.Error())))
		return
	}

	// Reload the caller's row so concurrent updates are not overwritten
	// with stale context data.
	if err := uc.DB.Where("id = ?", user.ID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to retrieve user data: %s", err.Error())))
		return
	}

	edited := model.EditableUserInfo{
		FullName:    info.FullName,
		Email:       info.Email,
		PhoneNumber: info.PhoneNumber,
	}
	utilities.MergeNonEmpty(&user.EditableUserInfo, &edited)

	if info.Bio != "" {
		user.Profile.Bio = info.Bio
	}
	if info.Skills != "" {
		user.Profile.Skills = strings.Split(info.Skills, ",")
	}

	if header, err := c.FormFile("file"); err == nil {
		url, err := uc.uploadFormFile(c, header, resumeObjectPrefix)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to upload resume: %s", err.Error())))
			return
		}
		user.Profile.Resume = url
		user.Profile.ResumeOriginalName = header.Filename
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, utilities.Fail("Email or phone number already in use."))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(fmt.Sprintf("Failed to update user information: %s", err.Error())))
		return
	}

	c.JSON(http.StatusOK, userResponse{
		Response: utilities.Ok("Profile updated successfully."),
		User:     user,
	})
}
