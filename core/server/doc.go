// Package server holds the HTTP server configuration used by the serve command.
//
// The Config struct defines the listen port, the optional API key checked by the
// auth middleware and the lifetime of the cached reconcile plan served by the
// inspect feature.
package server
