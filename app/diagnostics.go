package app

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// maxReportedCollections bounds the collection names a diagnostics report
// carries.
const maxReportedCollections = 10

// Report is the health summary served by the /test endpoint. The status
// strings are fixed; dashboards match on them.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// DiagnosticsService produces health reports about the backend and its
// document store.
type DiagnosticsService struct {
	store  ports.DocumentStore
	logger zerolog.Logger
}

// NewDiagnosticsService creates a new diagnostics service.
func NewDiagnosticsService(store ports.DocumentStore, logger zerolog.Logger) *DiagnosticsService {
	return &DiagnosticsService{
		store:  store,
		logger: logger.With().Str("service", "diagnostics").Logger(),
	}
}

// Report checks the store and the database environment and returns a summary.
// It never fails; every problem downgrades to a status string.
func (s *DiagnosticsService) Report(ctx context.Context) Report {
	report := Report{
		Backend:          "✅ Running",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	err := s.store.Ping(ctx)
	switch {
	case err == nil:
		report.ConnectionStatus = "Connected"

		names, listErr := s.store.Collections(ctx)
		if listErr != nil {
			s.logger.Debug().Err(listErr).Msg("collection listing failed")
			report.Database = "⚠️  Connected but Error: " + truncateError(listErr)
		} else {
			if len(names) > maxReportedCollections {
				names = names[:maxReportedCollections]
			}
			if names == nil {
				names = []string{}
			}
			report.Collections = names
			report.Database = "✅ Connected & Working"
		}
	case errors.Is(err, ports.ErrNotConfigured):
		report.Database = "⚠️  Available but not initialized"
	default:
		s.logger.Debug().Err(err).Msg("store ping failed")
		report.Database = "❌ Error: " + truncateError(err)
	}

	report.DatabaseURL = envPresence("DATABASE_URL")
	report.DatabaseName = envPresence("DATABASE_NAME")
	return report
}

func envPresence(key string) string {
	if os.Getenv(key) != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}

// truncateError renders err capped at 50 characters, counting runes so a
// multi-byte character is never split.
func truncateError(err error) string {
	msg := err.Error()
	runes := []rune(msg)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return msg
}
