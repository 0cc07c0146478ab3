// Package client talks to the trip-planning backend.
//
// # Overview
//
// The package provides:
//  1. Caller, a resilient HTTP request client: one timeout over the whole
//     attempt sequence, bounded retries with linear backoff for network
//     failures and 5xx responses, JSON or text bodies, and debug logging
//     with credentials masked.
//  2. The Client contract and its REST implementation (RESTClient) for the
//     auth, profile, trips, stats, account and places endpoints.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are *APIError values whose kind matches one of the sentinels
// with errors.Is: ErrValidation, ErrNetwork, ErrTimeout, ErrServer,
// ErrClient, ErrAuth, ErrUnauthorized. A timeout also matches ErrNetwork.
// StatusOf extracts the HTTP status.
//
// Concurrency & Contexts
//
// Caller and RESTClient are safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
