package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dmascari/rental-tracker/cmd/categories"
	"dmascari/rental-tracker/cmd/db"
	"dmascari/rental-tracker/cmd/ingest"
	"dmascari/rental-tracker/cmd/parse"
	"dmascari/rental-tracker/cmd/probe"
	"dmascari/rental-tracker/cmd/report"
	"dmascari/rental-tracker/cmd/root"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables before any logging happens.
	loadEnvSilently()

	// Configure the global log level so every logger created later picks it up.
	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(probe.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(db.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
