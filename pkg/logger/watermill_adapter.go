package logger

import (
	"sort"

	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// WatermillAdapter bridges the global zap logger to watermill.LoggerAdapter.
type WatermillAdapter struct {
	fields []zap.Field
}

func NewWatermillAdapter() *WatermillAdapter {
	return &WatermillAdapter{fields: []zap.Field{zap.String("component", "watermill")}}
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	Error(msg, append(a.with(fields), zap.Error(err))...)
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	Info(msg, a.with(fields)...)
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	Debug(msg, a.with(fields)...)
}

// Trace is logged at debug; zap has no lower level.
func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	Debug(msg, a.with(fields)...)
}

func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillAdapter{fields: a.with(fields)}
}

func (a *WatermillAdapter) with(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(a.fields)+len(fields))
	out = append(out, a.fields...)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

var _ watermill.LoggerAdapter = (*WatermillAdapter)(nil)
