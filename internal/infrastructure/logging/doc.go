// Package logging provides structured logging using uber/zap.
//
// Production mode writes JSON for log shippers; development mode writes
// colored console output. Pipeline stages log prompt and output sizes at
// info level and the full texts at debug level.
//
// Example Usage:
//
//	logger, err := logging.New(logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development))
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Completion failed", zap.Error(err))
package logging
