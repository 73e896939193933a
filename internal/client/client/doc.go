// Package client is the HTTP client for the taskhub API used by the CLI
// and the session bridge.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError, which matches
// common.ErrorUnauthorized for 400, 401 and 404 and common.ErrorInternal
// otherwise. Transport failures and timeouts match common.ErrUpstream.
package client
