package logging

import "go.uber.org/zap"

// NewLogger builds the process-wide zap logger. Gin's debug mode gets the
// development config so request-scoped fields stay readable.
func NewLogger(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
