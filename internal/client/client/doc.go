// Package client is the storefront API client.
//
// Client is the transport-agnostic contract used by the service layer;
// HTTPClient implements it over REST/JSON. Every call sends JSON headers
// and a fresh X-Request-ID, and fails fast: there are no retries.
//
// # Errors
//
//   - ErrUnavailable wraps transport failures (the backend could not be reached).
//   - *HTTPError carries the status and body of a non-2xx answer.
//   - *DecodeError is a 2xx answer that was not the expected JSON.
//   - *UploadError and *PresignError cover the two steps of a photo upload.
//   - *ValidationError, ErrNotLoggedIn and ErrActionPending are raised
//     locally, before any request is sent.
//
// The package also bootstraps the local sqlite database used for session
// persistence (InitDatabase, RunMigrations).
package client
