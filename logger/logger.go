// Package logger provides structured, leveled logging for the search
// engine, wrapping zerolog behind the same package-level calling
// convention (logger.Info(format, args...), logger.Error(...)) this
// lineage's own logger package uses, so call sites read the same way
// whether the message is formatted with fmt verbs or built with fields.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006/01/02 15:04:05.000"}).
	With().Timestamp().Logger()

// SetLevel sets the minimum level that will be written. level is one of
// "trace", "debug", "info", "warn", "error"; an unrecognised value leaves
// the current level unchanged and returns an error.
func SetLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	base = base.Level(parsed)
	return nil
}

// Trace logs a trace-level message.
func Trace(format string, args ...interface{}) { base.Trace().Msgf(format, args...) }

// Debug logs a debug-level message.
func Debug(format string, args ...interface{}) { base.Debug().Msgf(format, args...) }

// Info logs an info-level message.
func Info(format string, args ...interface{}) { base.Info().Msgf(format, args...) }

// Warn logs a warning-level message.
func Warn(format string, args ...interface{}) { base.Warn().Msgf(format, args...) }

// Error logs an error-level message.
func Error(format string, args ...interface{}) { base.Error().Msgf(format, args...) }

// Fatal logs an error-level message and exits the process.
func Fatal(format string, args ...interface{}) { base.Fatal().Msgf(format, args...) }

// Context is a field builder returned by With, matching zerolog's own
// chained-field idiom for call sites that want structured fields instead
// of a format string.
type Context struct {
	event *zerolog.Event
}

// With starts a field builder at level. Call Msg to emit.
func With(level zerolog.Level) *Context {
	return &Context{event: base.WithLevel(level)}
}

// Int attaches an integer field.
func (c *Context) Int(key string, value int) *Context {
	c.event = c.event.Int(key, value)
	return c
}

// Str attaches a string field.
func (c *Context) Str(key, value string) *Context {
	c.event = c.event.Str(key, value)
	return c
}

// Msg emits msg with the accumulated fields.
func (c *Context) Msg(msg string) {
	c.event.Msg(msg)
}
