package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded users, companies and jobs for package tests
var (
	TestStudent1   m.User
	TestStudent2   m.User
	TestRecruiter1 m.User
	TestRecruiter2 m.User

	TestCompany1 m.Company
	TestCompany2 m.Company

	// Seeded jobs, created in this order
	TestJobBackend  m.Job
	TestJobFrontend m.Job
	TestJobData     m.Job

	// Plain password shared by every seeded user
	TestSeedPassword = "SeedPass123!"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample students, recruiters, companies and jobs if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	userSpecs := []struct {
		fullName string
		email    string
		phone    string
		role     string
	}{
		{"Alice Student", "student1@example.com", "0100000001", m.RoleStudent},
		{"Bob Student", "student2@example.com", "0100000002", m.RoleStudent},
		{"Carol Recruiter", "recruiter1@example.com", "0200000001", m.RoleRecruiter},
		{"Dan Recruiter", "recruiter2@example.com", "0200000002", m.RoleRecruiter},
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			EditableUserInfo: m.EditableUserInfo{
				FullName:    s.fullName,
				Email:       s.email,
				PhoneNumber: s.phone,
			},
			Password: hashedPwd,
			Role:     s.role,
			Profile: m.Profile{
				Skills: pq.StringArray{},
			},
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Email {
		case "student1@example.com":
			TestStudent1 = u
		case "student2@example.com":
			TestStudent2 = u
		case "recruiter1@example.com":
			TestRecruiter1 = u
		case "recruiter2@example.com":
			TestRecruiter2 = u
		}
	}

	companies := []m.Company{
		{
			UserID: TestRecruiter1.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				Name:        "TechNova",
				Description: "Innovative platform solutions",
				Website:     "https://technova.example.com",
				Location:    "Pune",
			},
		},
		{
			UserID: TestRecruiter2.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				Name:        "DataForge",
				Description: "Data analytics consulting",
				Website:     "https://dataforge.example.com",
				Location:    "Mumbai",
			},
		},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}
	TestCompany1 = companies[0]
	TestCompany2 = companies[1]

	// Jobs are created one by one so their creation timestamps order them
	jobSpecs := []m.Job{
		{
			Title:           "Backend Engineer",
			Description:     "Build REST APIs and database layers.",
			Requirements:    pq.StringArray{"Go", "SQL"},
			Salary:          1200000,
			Location:        "Pune",
			JobType:         "Full-time",
			Position:        2,
			ExperienceLevel: 2,
			CompanyID:       TestCompany1.ID,
			CreatedByID:     TestRecruiter1.ID,
		},
		{
			Title:           "Frontend Engineer",
			Description:     "Build component libraries and pages.",
			Requirements:    pq.StringArray{"React", "TypeScript"},
			Salary:          1100000,
			Location:        "Remote",
			JobType:         "Full-time",
			Position:        1,
			ExperienceLevel: 1,
			CompanyID:       TestCompany1.ID,
			CreatedByID:     TestRecruiter1.ID,
		},
		{
			Title:           "Data Analyst",
			Description:     "Support dashboards and reporting.",
			Requirements:    pq.StringArray{"SQL", "Statistics"},
			Salary:          900000,
			Location:        "Mumbai",
			JobType:         "Contract",
			Position:        3,
			ExperienceLevel: 0,
			CompanyID:       TestCompany2.ID,
			CreatedByID:     TestRecruiter2.ID,
		},
	}

	created := make([]m.Job, 0, len(jobSpecs))
	for i := range jobSpecs {
		if err := db.Create(&jobSpecs[i]).Error; err != nil {
			return err
		}
		created = append(created, jobSpecs[i])
	}
	TestJobBackend = created[0]
	TestJobFrontend = created[1]
	TestJobData = created[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("email IN ?", []string{
		"student1@example.com", "student2@example.com",
		"recruiter1@example.com", "recruiter2@example.com",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Email {
		case "student1@example.com":
			TestStudent1 = u
		case "student2@example.com":
			TestStudent2 = u
		case "recruiter1@example.com":
			TestRecruiter1 = u
		case "recruiter2@example.com":
			TestRecruiter2 = u
		}
	}

	if err := db.First(&TestCompany1, "name = ?", "TechNova").Error; err != nil {
		return err
	}
	if err := db.First(&TestCompany2, "name = ?", "DataForge").Error; err != nil {
		return err
	}

	var jobs []m.Job
	if err := db.Order("created_at ASC").Limit(3).Find(&jobs).Error; err != nil {
		return err
	}
	if len(jobs) > 0 {
		TestJobBackend = jobs[0]
	}
	if len(jobs) > 1 {
		TestJobFrontend = jobs[1]
	}
	if len(jobs) > 2 {
		TestJobData = jobs[2]
	}

	return nil
}
