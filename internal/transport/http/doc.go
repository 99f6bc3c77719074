// Package http implements the HTTP handlers for the CFEM dashboard API.
// It is a thin layer between transport and the dataset service: handlers
// parse and validate requests, delegate to the service, and translate
// service errors into RFC 7807 problem responses.
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → DatasetService → Session Store
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Handlers hold no dataset state of their own. All analytic results are
// computed on demand from the session store's immutable snapshot, so
// responses are consistent even while an upload replaces the dataset.
package http
