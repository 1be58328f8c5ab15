// Package logger provides a configurable slog.Logger factory and attribute
// helpers shared across the booking and notification packages.
//
// The factory applies production-safe defaults (JSON format, INFO level) that
// can be overridden through options:
//
//	log := logger.New(
//		logger.WithDevelopment("bookingkit"),
//		logger.WithAttr(slog.String("version", version)),
//	)
//
// The attribute helpers keep log keys consistent across packages, so a
// booking id always appears as "booking_id" no matter which component logged
// it.
package logger
