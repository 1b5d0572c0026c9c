// Package report publishes reconcile plans.
//
// Log writes a plan summary through zap. Exporter uploads the plan as JSON to
// S3/MinIO under <prefix>/<run id>.json, reads it back with Fetch, and keeps
// the bucket bounded with Retain.
package report
