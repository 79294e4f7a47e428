package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/subodhkangale07/JobPortal/internal/database"
	"github.com/subodhkangale07/JobPortal/internal/storage"
)

// MyServer bundle everything route handlers depend on
type MyServer struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewServer construct new http.Server instance bound to PORT
func NewServer() (*http.Server, error) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 3000
	}

	db, err := database.GetMainDB()
	if err != nil {
		return nil, fmt.Errorf("database failed to initialize: %w", err)
	}

	st, err := storage.NewCloudStorageClient(context.Background(), os.Getenv("GCS_BUCKET_NAME"))
	if err != nil {
		return nil, fmt.Errorf("storage failed to initialize: %w", err)
	}

	s := &MyServer{
		DB:      db,
		Storage: st,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}
