// Package common contains shared constants and sentinel errors used across
// foodlog components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "

	// DateLayout is the calendar-date format used for meal dates.
	DateLayout = "2006-01-02"
)
