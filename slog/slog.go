// Package slog provides logging decorators for helpdesk interfaces.
package slog
