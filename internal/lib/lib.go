// Package lib groups integrations that sit outside the request layers:
// the asynq job queue (job) and the Resend mail client (email) that
// deliver student removal reports.
package lib
