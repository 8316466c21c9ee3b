// Package constants provides shared constants used throughout the goseed codebase.
// This includes timeouts, API paths, file permissions, and the names the
// remote service uses in its payloads.
package constants

import "time"

// Timeout constants define various timeout durations used in the client
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the service
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 5 * time.Minute
)

// API constants describe the remote service's URL layout
const (
	// ServiceName identifies the remote service in errors and logs
	ServiceName = "seed"

	// APIPrefix is the versioned path prefix of every resource endpoint
	APIPrefix = "/api/v3"

	// OrganizationQueryParam scopes every request to one organization
	OrganizationQueryParam = "organization_id"

	// UserAgent is sent with every request
	UserAgent = "goseed"
)

// Payload constants are values the service expects in request bodies
const (
	// ProfileTypeNormal is the profile type assigned to profiles created by the client
	ProfileTypeNormal = "Normal"

	// DateLayout is the calendar date layout used for cycle bounds
	DateLayout = "2006-01-02"
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
