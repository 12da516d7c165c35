// Package http implements the HTTP transport layer of postdesk.
//
// It wires the chi router, the JSON API under /api, the embedded page shells
// and the middleware chain: trace ids, access logging, gzip and the session
// middleware that resolves a bearer token or the access_token cookie to a
// user before protected handlers run.
package http
