package utils

import (
	"github.com/go-logr/logr"
	"github.com/mt-inside/go-usvc"

	"github.com/mt-inside/flow-check/internal/build"
)

// NewLogger logs to stderr, so that stdout carries nothing but the report.
func NewLogger(verbosity int) logr.Logger {
	return usvc.GetLogger(false, verbosity).WithName(build.Name)
}
