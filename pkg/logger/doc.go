// Package logger provides structured logging for imgcollect.
//
// It wraps zerolog behind a small Logger interface so that components can
// attach fields (run_id, provider, query, offset) without depending on
// zerolog directly. Console output goes to stderr; stdout carries only the
// collector's progress notices.
//
//	logger.Initialize(&cfg.Logging)
//	log := logger.WithFields(map[string]interface{}{
//	    "provider": "bing",
//	    "query":    "cats",
//	})
//	log.Info("Collection started")
//
// Tests use NewTestLogger, which captures messages in memory, or
// NewNopLogger, which discards them.
package logger
