// Package api implements the HTTP client for the Spolify REST backend.
//
// The client owns the session cookie jar, so authentication state lives in the
// backend's session cookie; the local session marker (internal/store) is only
// a hint. All failures surface as [*Error]: transport problems carry status 0,
// API-reported problems carry the HTTP status plus the server's error message
// and raw details. A 401 from any endpoint additionally fires the client's
// unauthorized hook so the caller can drop its session marker.
//
// Requests are throttled with a token-bucket limiter so the per-song detail
// loop in order resolution stays polite toward the backend.
package api
