package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/lawconnect/lawconnect-api/api/handlers"
	"github.com/lawconnect/lawconnect-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := a.Initialize(); err != nil { //initialize database and router
		log.Fatalf("failed to initialize: %v", err)
	}

	s := a.StartScheduler()
	defer s.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("lawconnect-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
