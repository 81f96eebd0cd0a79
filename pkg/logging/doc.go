// Package logging provides a thin configuration layer over log/slog.
// Components receive a *slog.Logger explicitly; nothing in listd uses the
// global default logger.
package logging
