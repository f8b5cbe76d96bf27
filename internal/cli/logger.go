package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a console logger. Verbose enables debug output; logPath
// redirects logs to a file instead of stderr.
func newLogger(stderr io.Writer, verbose bool, logPath string) (*zap.Logger, func(), error) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	sink := zapcore.AddSync(stderr)
	closer := func() {}
	if strings.TrimSpace(logPath) != "" {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		sink = zapcore.AddSync(file)
		closer = func() { _ = file.Close() }
		if !verbose {
			level = zapcore.InfoLevel
		}
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)
	logger := zap.New(core)
	return logger, func() {
		_ = logger.Sync()
		closer()
	}, nil
}

// benchLogSink keeps console logs off the terminal while the live table owns it.
// A --log file still receives them.
func benchLogSink(decision uiModeDecision, stderr io.Writer) io.Writer {
	if decision.useLive {
		return io.Discard
	}
	return stderr
}
