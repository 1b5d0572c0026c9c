// Package middleware groups the HTTP middleware of the serve command.
//
//   - auth: API key validation (X-API-Key or Bearer token).
//   - rayid: assigns a request id, exposed to handlers through logger.WithRayID
//     and echoed in the X-Ray-ID response header.
//
// rayid must be registered first so every later log line carries the id.
package middleware
