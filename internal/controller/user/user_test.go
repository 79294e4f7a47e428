package user

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/subodhkangale07/JobPortal/internal/database"
	"github.com/subodhkangale07/JobPortal/internal/middleware"
	"github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/storage"
	"github.com/subodhkangale07/JobPortal/internal/testutil"
	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func userRouter() *gin.Engine {
	r := gin.Default()
	uc := NewUserController(testDB, storage.NewFakeClient())
	r.POST("/user/register", uc.Register)
	r.POST("/user/login", uc.Login)
	r.GET("/user/logout", uc.Logout)
	r.POST("/user/profile/update", middleware.RequireAuth(testDB), uc.UpdateProfile)
	return r
}

func TestRegister_Success(t *testing.T) {
	r := userRouter()

	fields := map[string]string{
		"fullName":    "Eve Newcomer",
		"email":       "eve@example.com",
		"phoneNumber": "0300000001",
		"password":    "Secret123!",
		"role":        "student",
	}

	rec, resp := testutil.MakeMultipartRequest(fields, "file", "eve.png", []byte("fake image"), "", r, "/user/register", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Account created successfully.", resp["message"])
	assert.Equal(t, true, resp["success"])

	var stored model.User
	assert.NoError(t, testDB.Where("email = ?", "eve@example.com").First(&stored).Error)
	assert.NotEqual(t, "Secret123!", stored.Password)
	assert.True(t, utilities.VerifyPassword("Secret123!", stored.Password))
	assert.Contains(t, stored.Profile.ProfilePhoto, "photos/")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := userRouter()

	fields := map[string]string{
		"fullName":    "Alice Clone",
		"email":       database.TestStudent1.Email,
		"phoneNumber": "0300000099",
		"password":    "Secret123!",
		"role":        "student",
	}

	rec, resp := testutil.MakeMultipartRequest(fields, "", "", nil, "", r, "/user/register", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists.", resp["message"])
	assert.Equal(t, false, resp["success"])
}

func TestRegister_MissingField(t *testing.T) {
	r := userRouter()

	fields := map[string]string{
		"fullName": "No Password",
		"email":    "nopassword@example.com",
		"role":     "student",
	}

	rec, resp := testutil.MakeMultipartRequest(fields, "", "", nil, "", r, "/user/register", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Something is missing. Please fill all fields.", resp["message"])
}

func TestLogin_Success(t *testing.T) {
	r := userRouter()

	body := gin.H{
		"email":    database.TestStudent1.Email,
		"password": database.TestSeedPassword,
		"role":     "student",
	}

	rec, resp := testutil.MakeJSONRequest(body, "", r, "/user/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.Contains(t, resp["message"], "Welcome back")
	assert.NotEmpty(t, resp["token"])

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "token" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a token cookie to be set")
}

func TestLogin_WrongPassword(t *testing.T) {
	r := userRouter()

	body := gin.H{
		"email":    database.TestStudent1.Email,
		"password": "not-the-password",
		"role":     "student",
	}

	rec, resp := testutil.MakeJSONRequest(body, "", r, "/user/login", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Incorrect email or password.", resp["message"])
}

func TestLogin_RoleMismatch(t *testing.T) {
	r := userRouter()

	// Valid credentials but wrong role gets the same generic message
	body := gin.H{
		"email":    database.TestStudent1.Email,
		"password": database.TestSeedPassword,
		"role":     "recruiter",
	}

	rec, resp := testutil.MakeJSONRequest(body, "", r, "/user/login", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Incorrect email or password.", resp["message"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc := NewUserController(testDB, storage.NewFakeClient())

	body := gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
		"role":     "student",
	}

	rec, resp, err := utilities.SimulateAPICall(uc.Login, "/user/login", http.MethodPost, body)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Incorrect email or password.", resp["message"])
}

func TestLogout_ClearsCookie(t *testing.T) {
	r := userRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/user/logout", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully.", resp["message"])

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the token cookie to be expired")
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	r := userRouter()
	token := testutil.GetAccessToken(t, database.TestStudent2)

	fields := map[string]string{
		"bio":    "Backend enthusiast",
		"skills": "Go,PostgreSQL,Docker",
	}

	rec, resp := testutil.MakeMultipartRequest(fields, "file", "resume.pdf", []byte("%PDF-1.4"), token, r, "/user/profile/update", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Profile updated successfully.", resp["message"])

	var stored model.User
	assert.NoError(t, testDB.Where("id = ?", database.TestStudent2.ID).First(&stored).Error)
	assert.Equal(t, "Backend enthusiast", stored.Profile.Bio)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, []string(stored.Profile.Skills))
	assert.Equal(t, "resume.pdf", stored.Profile.ResumeOriginalName)
	assert.Contains(t, stored.Profile.Resume, "resumes/")
	// Untouched fields keep their values
	assert.Equal(t, database.TestStudent2.FullName, stored.FullName)
	assert.Equal(t, database.TestStudent2.Email, stored.Email)
}

func TestUpdateProfile_NoToken(t *testing.T) {
	r := userRouter()

	rec, _ := testutil.MakeMultipartRequest(map[string]string{"bio": "x"}, "", "", nil, "", r, "/user/profile/update", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
