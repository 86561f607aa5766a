// Package logger hands out a standard-library logger backed by Cloud Logging,
// for code that wants a *log.Logger rather than the structured context logger.
package logger

import (
	"context"
	"log"
	"log/slog"
	"sync"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/logging"

	chatlog "github.com/chatroom/log"
)

var (
	once   sync.Once
	logger *log.Logger
)

// FromContext returns the process-wide Cloud Logging logger, building it on
// first use. When the metadata server or the logging client is unavailable
// (local runs, degraded environments) it falls back to structured stdout
// logging instead; callers always get a usable logger and nothing is fatal.
// The logging client stays open for the life of the process.
func FromContext(ctx context.Context) *log.Logger {
	once.Do(func() {
		logger = newLogger(ctx)
	})
	return logger
}

func newLogger(ctx context.Context) *log.Logger {
	fallback := slog.NewLogLogger(chatlog.NewCloudLoggingHandler(), slog.LevelInfo)

	projectID, err := metadata.ProjectIDWithContext(ctx)
	if err != nil {
		fallback.Printf("cloud logging unavailable, using stdout: %v", err)
		return fallback
	}
	client, err := logging.NewClient(ctx, projectID)
	if err != nil {
		fallback.Printf("failed to create logging client, using stdout: %v", err)
		return fallback
	}
	return client.Logger("chatroom").StandardLogger(logging.Info)
}
