package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ventus/travel-enrich/cmd/enrich"
	"ventus/travel-enrich/cmd/prefilter"
	"ventus/travel-enrich/cmd/resolve"
	"ventus/travel-enrich/cmd/root"
	"ventus/travel-enrich/cmd/serve"
	"ventus/travel-enrich/cmd/version"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables before anything logs, so LOG_LEVEL and
	// GEMINI_API_KEY are visible to configuration.
	loadEnvSilently()

	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(enrich.Cmd)
	root.Cmd.AddCommand(prefilter.Cmd)
	root.Cmd.AddCommand(resolve.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(version.Cmd)
}

// loadEnvSilently loads a .env file from the working directory or the
// project root without logging anything.
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

// configureLogLevel applies LOG_LEVEL to the global logrus level before the
// config file is even read, so early startup messages honor it.
func configureLogLevel() {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	root.Log.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
