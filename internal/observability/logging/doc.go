// Package logging configures the service's structured loggers.
//
// Everything is log/slog underneath. The helpers here exist so that one
// request ID follows an upload through the extractor, the map-reduce
// pipeline and the repository, and so that components can pull a scoped
// logger out of the context instead of threading one through every call.
//
//	logger := logging.NewLogger()
//	logger.Info("server started", slog.Int("port", cfg.Port))
//
//	// inside a handler
//	logger := logging.WithRequestID(r.Context(), h.Logger)
//	logger.Info("document received", slog.String("filename", name))
package logging
