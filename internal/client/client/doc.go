// Package client is the HTTP client of the foodlog API used by the terminal
// front end.
//
// APIClient keeps the access and refresh tokens returned by Login and
// transparently refreshes an expired access token once per request. Server
// failures surface as *APIError, which matches the sentinel errors of the
// common package through errors.Is; transport failures wrap ErrUnavailable.
package client
