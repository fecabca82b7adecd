// Package apperr declares the error kinds surfaced by the tracker pipeline.
package apperr

import "errors"

var (
	// ErrTransport covers network failures, non-2xx upstream statuses, and
	// malformed response bodies. Transport failures are never retried.
	ErrTransport = errors.New("market data transport or parse failure")

	// ErrNoData means the upstream answered with zero chart results.
	ErrNoData = errors.New("no data available in the upstream response")

	// ErrInsufficientData means fewer valid closing prices than the SMA window requires.
	ErrInsufficientData = errors.New("insufficient data to calculate SMA200")

	// ErrDelivery means the notification channel failed to deliver a report.
	// The computed result is still valid; the run as a whole is not.
	ErrDelivery = errors.New("report delivery failed")

	// ErrConfig marks invalid or missing startup configuration. Fatal before
	// any pipeline run is attempted.
	ErrConfig = errors.New("invalid configuration")
)
