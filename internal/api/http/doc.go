// Package http holds the gin handlers for the code generation API.
//
// Pipeline errors are mapped to statuses by StatusFor and returned as
// {"detail": message}. The tutor endpoint is the exception: it always
// answers 200 and reports failures in its payload.
package http
