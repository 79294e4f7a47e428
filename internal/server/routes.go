// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/subodhkangale07/JobPortal/internal/controller/application"
	"github.com/subodhkangale07/JobPortal/internal/controller/company"
	"github.com/subodhkangale07/JobPortal/internal/controller/job"
	"github.com/subodhkangale07/JobPortal/internal/controller/user"
	"github.com/subodhkangale07/JobPortal/internal/middleware"
	"github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/utilities"

	// Init swagger doc
	_ "github.com/subodhkangale07/JobPortal/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	userCtrl := user.NewUserController(s.DB, s.Storage)
	companyCtrl := company.NewCompanyController(s.DB, s.Storage)
	jobCtrl := job.NewJobController(s.DB)
	applicationCtrl := application.NewApplicationController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader(), middleware.EnvRateLimitMiddleware())

	r.GET("/", s.rootHandler)
	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	{
		userRoute := v1.Group("/user")
		{
			userRoute.POST("register", middleware.SizeLimit(10<<20), userCtrl.Register)
			userRoute.POST("login", userCtrl.Login)
			userRoute.GET("logout", userCtrl.Logout)
			userRoute.POST("profile/update",
				middleware.RequireAuth(s.DB),
				middleware.SizeLimit(10<<20),
				userCtrl.UpdateProfile)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			companyRoute := needAuth.Group("/company")
			{
				companyRoute.GET("get", companyCtrl.GetMine)
				companyRoute.GET("get/:id", companyCtrl.GetByID)
				companyRoute.Use(middleware.CheckRole(model.RoleRecruiter))
				companyRoute.POST("register", companyCtrl.Register)
				companyRoute.PUT("update/:id", middleware.SizeLimit(10<<20), companyCtrl.Update)
			}

			jobRoute := needAuth.Group("/job")
			{
				jobRoute.GET("get", jobCtrl.GetAll)
				jobRoute.GET("get/:id", jobCtrl.GetByID)
				jobRoute.Use(middleware.CheckRole(model.RoleRecruiter))
				jobRoute.POST("post", jobCtrl.Post)
				jobRoute.GET("getadminjobs", jobCtrl.GetAdminJobs)
			}

			applicationRoute := needAuth.Group("/application")
			{
				applicationRoute.GET("apply/:id", applicationCtrl.Apply)
				applicationRoute.GET("get", applicationCtrl.GetMine)
				applicationRoute.Use(middleware.CheckRole(model.RoleRecruiter))
				applicationRoute.GET(":id/applicants", applicationCtrl.GetApplicants)
				applicationRoute.POST("status/:id", applicationCtrl.UpdateStatus)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *MyServer) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utilities.Ok("I'm from Backend"))
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
