package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/crimewatch/backend/internal/pkg/constants"
)

var global = zap.Must(zap.NewProduction()).Sugar()

// Init replaces the default production logger, e.g. with a development
// one. Safe to skip; the package works out of the box.
func Init(l *zap.Logger) {
	global = l.Sugar()
}

func Sync() {
	_ = global.Sync()
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return global
	}
	if rid, ok := ctx.Value(constants.CtxKeyRequestID).(string); ok && rid != "" {
		return global.With("request_id", rid)
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Debugf(format, args...)
}

func Info(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Info(args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Error(args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Fatal(args...)
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Fatalf(format, args...)
}
