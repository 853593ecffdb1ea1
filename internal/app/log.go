package app

import (
	"github.com/powerman/structlog"
	"os"
	"path/filepath"
)

func init() {
	structlog.DefaultLogger.
		SetLogLevel(structlog.INF).
		SetPrefixKeys(
			structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
		).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(
			structlog.KeyStack,
		).
		SetSuffixKeys(structlog.KeySource).
		SetKeysFormat(map[string]string{
			structlog.KeyTime:   " %[2]s",
			structlog.KeySource: " %6[2]s",
			structlog.KeyUnit:   " %6[2]s",
		}).SetTimeFormat("15:04:05")
}

// setLogLevel may be called any number of times. Wrong level is not fatal,
// it will be reported and set to "debug".
func setLogLevel(level string) {
	structlog.DefaultLogger.SetLogLevel(structlog.ParseLevel(level))
}
