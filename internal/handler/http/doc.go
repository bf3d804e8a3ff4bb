// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API and the two HTML pages of the web client. Cross-cutting concerns such
// as token authentication, permission checks, request tracing, access
// logging, compression, rate limiting and anti-forgery checks are handled in
// this package before requests are delegated to the service layer.
package http
