// Package ui provides helpers for formatting human-readable console output.
//
// It renders the French publication instructions printed after a successful
// bootstrap and translates command lifecycle events into concise console log
// messages while detailed telemetry continues to flow through structured
// loggers.
package ui
