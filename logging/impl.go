package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used by every package of the controller. The C prefixed
// variants are also emitted below the logger's level when the context is in debug mode.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	CDebug(ctx context.Context, args ...interface{})
	CDebugf(ctx context.Context, template string, args ...interface{})
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})
	CInfo(ctx context.Context, args ...interface{})
	CInfof(ctx context.Context, template string, args ...interface{})
	CInfow(ctx context.Context, msg string, keysAndValues ...interface{})
	CWarn(ctx context.Context, args ...interface{})
	CWarnf(ctx context.Context, template string, args ...interface{})
	CWarnw(ctx context.Context, msg string, keysAndValues ...interface{})
	CError(ctx context.Context, args ...interface{})
	CErrorf(ctx context.Context, template string, args ...interface{})
	CErrorw(ctx context.Context, msg string, keysAndValues ...interface{})

	SetLevel(level Level)
	GetLevel() Level
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	Sync() error
}

type impl struct {
	name      string
	level     AtomicLevel
	inUTC     bool
	appenders []Appender
}

// non-context calls are never in debug mode.
var noDebug = context.Background()

func newImpl(name string, level Level, inUTC bool, appenders ...Appender) *impl {
	return &impl{
		name:      name,
		level:     NewAtomicLevelAt(level),
		inUTC:     inUTC,
		appenders: appenders,
	}
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

// Sublogger returns a logger named "<name>.<subname>" sharing the appenders. Its level starts at
// the parent's and is changed independently.
func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if imp.name != "" {
		name = imp.name + "." + subname
	}
	return newImpl(name, imp.level.Get(), imp.inUTC, imp.appenders...)
}

func (imp *impl) Sync() error {
	var err error
	for _, appender := range imp.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

func (imp *impl) enabled(ctx context.Context, level Level) bool {
	return level >= imp.level.Get() || IsDebugMode(ctx)
}

// The emit helpers must stay exactly one call away from the public methods; see callerSkip.

func (imp *impl) emit(ctx context.Context, level Level, args []interface{}) {
	if imp.enabled(ctx, level) {
		imp.write(imp.entry(ctx, level, fmt.Sprint(args...)), nil)
	}
}

func (imp *impl) emitf(ctx context.Context, level Level, template string, args []interface{}) {
	if imp.enabled(ctx, level) {
		imp.write(imp.entry(ctx, level, fmt.Sprintf(template, args...)), nil)
	}
}

func (imp *impl) emitw(ctx context.Context, level Level, msg string, keysAndValues []interface{}) {
	if imp.enabled(ctx, level) {
		imp.write(imp.entry(ctx, level, msg), toFields(keysAndValues))
	}
}

// callerSkip walks from getCaller past entry, the emit helper and the public method.
const callerSkip = 4

func (imp *impl) entry(ctx context.Context, level Level, msg string) zapcore.Entry {
	e := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now(),
		LoggerName: imp.name,
		Message:    msg,
		Caller:     getCaller(),
	}
	if imp.inUTC {
		e.Time = e.Time.UTC()
	}
	if key := DebugKey(ctx); key != "" {
		e.Message = fmt.Sprintf("[%s] %s", key, msg)
	}
	return e
}

func (imp *impl) write(entry zapcore.Entry, fields []zapcore.Field) {
	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// toFields pairs up alternating keys and values. A trailing key without a value is kept with an
// error in place of the value.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.String(key, "unpaired log key"))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func getCaller() zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(callerSkip)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}

func (imp *impl) Debug(args ...interface{}) { imp.emit(noDebug, DEBUG, args) }
func (imp *impl) Info(args ...interface{})  { imp.emit(noDebug, INFO, args) }
func (imp *impl) Warn(args ...interface{})  { imp.emit(noDebug, WARN, args) }
func (imp *impl) Error(args ...interface{}) { imp.emit(noDebug, ERROR, args) }

func (imp *impl) Debugf(template string, args ...interface{}) {
	imp.emitf(noDebug, DEBUG, template, args)
}

func (imp *impl) Infof(template string, args ...interface{}) {
	imp.emitf(noDebug, INFO, template, args)
}

func (imp *impl) Warnf(template string, args ...interface{}) {
	imp.emitf(noDebug, WARN, template, args)
}

func (imp *impl) Errorf(template string, args ...interface{}) {
	imp.emitf(noDebug, ERROR, template, args)
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.emitw(noDebug, DEBUG, msg, keysAndValues)
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.emitw(noDebug, INFO, msg, keysAndValues)
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.emitw(noDebug, WARN, msg, keysAndValues)
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.emitw(noDebug, ERROR, msg, keysAndValues)
}

func (imp *impl) CDebug(ctx context.Context, args ...interface{}) { imp.emit(ctx, DEBUG, args) }
func (imp *impl) CInfo(ctx context.Context, args ...interface{})  { imp.emit(ctx, INFO, args) }
func (imp *impl) CWarn(ctx context.Context, args ...interface{})  { imp.emit(ctx, WARN, args) }
func (imp *impl) CError(ctx context.Context, args ...interface{}) { imp.emit(ctx, ERROR, args) }

func (imp *impl) CDebugf(ctx context.Context, template string, args ...interface{}) {
	imp.emitf(ctx, DEBUG, template, args)
}

func (imp *impl) CInfof(ctx context.Context, template string, args ...interface{}) {
	imp.emitf(ctx, INFO, template, args)
}

func (imp *impl) CWarnf(ctx context.Context, template string, args ...interface{}) {
	imp.emitf(ctx, WARN, template, args)
}

func (imp *impl) CErrorf(ctx context.Context, template string, args ...interface{}) {
	imp.emitf(ctx, ERROR, template, args)
}

func (imp *impl) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	imp.emitw(ctx, DEBUG, msg, keysAndValues)
}

func (imp *impl) CInfow(ctx context.Context, msg string, keysAndValues ...interface{}) {
	imp.emitw(ctx, INFO, msg, keysAndValues)
}

func (imp *impl) CWarnw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	imp.emitw(ctx, WARN, msg, keysAndValues)
}

func (imp *impl) CErrorw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	imp.emitw(ctx, ERROR, msg, keysAndValues)
}
