// Package httputil provides the JSON plumbing shared by the HTTP API.
//
//   - [WriteJSON] and [WriteError] encode responses
//   - [StatusFor] maps a structured error code to an HTTP status
//   - [Observe] is chi middleware reporting every response to the
//     observability hooks
//
// Errors are written as
//
//	{"error": {"code": "CLAIM_NOT_FOUND", "message": "unknown claim \"x\""}}
package httputil
