package logutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Values groups a set of zap.Fields under a single "values" object field.
// Zero reflection, same speed as inline fields.
func Values(fields ...zap.Field) zap.Field {
	return zap.Object("values", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		for _, f := range fields {
			f.AddTo(enc)
		}
		return nil
	}))
}

// Seat tags a log entry with the seat id it concerns.
func Seat(id int) zap.Field { return zap.Int("seat_id", id) }

// Conn tags a log entry with a connection identity.
func Conn(id string) zap.Field { return zap.String("conn_id", id) }

// User tags a log entry with a display name.
func User(name string) zap.Field { return zap.String("username", name) }
