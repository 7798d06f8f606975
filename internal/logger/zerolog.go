package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements Logger on top of zerolog
type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level LogLevel) *ZerologAdapter {
	return &ZerologAdapter{
		logger: zerolog.New(writer).Level(level.zerologLevel()).With().Timestamp().Logger(),
	}
}

func NewConsoleLogger(level LogLevel) *ZerologAdapter {
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}, level)
}

// New picks JSON output on stderr or the human console writer
func New(level LogLevel, json bool) *ZerologAdapter {
	if json {
		return NewZerolog(os.Stderr, level)
	}
	return NewConsoleLogger(level)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	emit(z.logger.Debug(), component, fields, message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	emit(z.logger.Info(), component, fields, message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	emit(z.logger.Warn(), component, fields, message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	emit(z.logger.Error().Err(err), component, fields, "operation failed")
}

// emit tolerates nil events from disabled levels
func emit(event *zerolog.Event, component string, fields map[string]interface{}, message string) {
	event.Str("component", component).Fields(fields).Msg(message)
}
