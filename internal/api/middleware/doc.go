// Package middleware holds the gin middleware in front of the API:
// CORS, per-IP rate limiting, panic recovery and request logging.
package middleware
