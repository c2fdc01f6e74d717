// Package core defines the shared language of the podcast index web UI.
//
// This package contains:
//   - Domain entities (StatsSnapshot, EpisodeSummary)
//   - Display values (Count)
//   - Service interfaces (Source)
//
// pkg/core imports only the standard library and golang.org/x/text.
// All other packages depend on core, not the reverse.
package core
