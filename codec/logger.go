package codec

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/vm-abi/errors"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the codec's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	nop := zap.NewNop()
	if logger.CompareAndSwap(nil, nop) {
		return nop
	}
	return logger.Load()
}

// SetLogger replaces the codec's logger. A nil logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l.Named("codec"))
}

func logResult(op string, err error, fields ...zap.Field) {
	l := Logger()
	if err != nil {
		if ce := l.Check(zap.DebugLevel, op+" failed"); ce != nil {
			ce.Write(append(fields, zap.String("kind", string(errors.KindOf(err))), zap.Error(err))...)
		}
		return
	}
	if ce := l.Check(zap.DebugLevel, op); ce != nil {
		ce.Write(fields...)
	}
}

// typeName defers DisplayName until a log entry is actually written.
type typeName struct{ t *Type }

func (n typeName) String() string { return n.t.DisplayName() }
