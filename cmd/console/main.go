package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"storeops.com/console/internal/cli"
)

func main() {
	godotenv.Load("./.env")
	godotenv.Overload("./.env", "./.env.local")

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(logLevel())
	log.Logger = zerolog.New(buildLogWriter()).With().Timestamp().Logger()

	cli.Execute()
}

// logLevel keeps request tracing quiet unless LOG_LEVEL asks for it.
func logLevel() zerolog.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// buildLogWriter keeps stdout for command output. Diagnostics go to stderr,
// and to a rotated file as well when LOG_FOLDER is set.
func buildLogWriter() io.Writer {
	console := zerolog.ConsoleWriter{Out: os.Stderr}

	logFolder := os.Getenv("LOG_FOLDER")
	if logFolder == "" {
		return console
	}

	logFilePath := fmt.Sprintf("%s/console.log", logFolder)
	if instanceName := os.Getenv("INSTANCE_NAME"); instanceName != "" {
		logFilePath = fmt.Sprintf("%s/%s.log", logFolder, instanceName)
	}

	logFile := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // MB before rotation
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	return zerolog.MultiLevelWriter(logFile, console)
}
