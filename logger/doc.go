// Package logger provides structured logging for fluxkit using zerolog.
//
// It supports json and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.Get("samples")
//	log.Info("subscribe method --> sofia", logger.Fields("sample", "iterator"))
package logger
