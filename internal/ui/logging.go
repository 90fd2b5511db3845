package ui

import (
	"log/slog"

	"github.com/pterm/pterm"
)

var debugEnabled = false

func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
	pterm.PrintDebugMessages = enabled
	if enabled {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	} else {
		pterm.DefaultLogger.Level = pterm.LogLevelInfo
	}
}

func IsDebugEnabled() bool {
	return debugEnabled
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}

// Logger returns a structured logger that renders through pterm,
// for packages that take a *slog.Logger instead of using ui directly.
func Logger() *slog.Logger {
	return slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
}
