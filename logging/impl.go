package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type impl struct {
	name  string
	level AtomicLevel
	inUTC bool

	appenders []Appender
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

func (imp *impl) Level() zapcore.Level {
	return imp.GetLevel().AsZap()
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}

	return &impl{
		name:      newName,
		level:     NewAtomicLevelAt(imp.level.Get()),
		inUTC:     imp.inUTC,
		appenders: imp.appenders,
	}
}

func (imp *impl) Sync() error {
	var errs []error
	for _, appender := range imp.appenders {
		if err := appender.Sync(); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

func (imp *impl) Desugar() *zap.Logger {
	return imp.AsZap().Desugar()
}

func (imp *impl) Named(name string) *zap.SugaredLogger {
	return imp.AsZap().Named(name)
}

func (imp *impl) With(args ...interface{}) *zap.SugaredLogger {
	return imp.AsZap().With(args...)
}

func (imp *impl) WithOptions(opts ...zap.Option) *zap.SugaredLogger {
	return imp.AsZap().WithOptions(opts...)
}

// AsZap returns a zap logger that writes through the same appenders and
// level as imp.
func (imp *impl) AsZap() *zap.SugaredLogger {
	return zap.New(&appenderCore{imp: imp}, zap.AddCaller()).Sugar().Named(imp.name)
}

// appenderCore is a zapcore.Core over the appenders of a logger.
type appenderCore struct {
	imp    *impl
	fields []zapcore.Field
}

func (c *appenderCore) Enabled(level zapcore.Level) bool {
	return level >= c.imp.GetLevel().AsZap()
}

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	withFields := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	withFields = append(withFields, c.fields...)
	withFields = append(withFields, fields...)
	return &appenderCore{imp: c.imp, fields: withFields}
}

func (c *appenderCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	all := append(append([]zapcore.Field{}, c.fields...), fields...)
	var errs []error
	for _, appender := range c.imp.appenders {
		if err := appender.Write(entry, all); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

func (c *appenderCore) Sync() error {
	return c.imp.Sync()
}

func (imp *impl) shouldLog(level Level) bool {
	return level >= imp.level.Get()
}

// emit hands an entry to every appender. Appender failures go to stderr,
// there is nowhere else to report them.
func (imp *impl) emit(level Level, msg string, fields []zapcore.Field) {
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now(),
		LoggerName: imp.name,
		Message:    msg,
		Caller:     getCaller(),
	}
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// toFields pairs up keys and values. Keys are expected to be strings, values are json
// serialized with only their public fields.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, len(keysAndValues)/2)
	for keyIdx := 0; keyIdx < len(keysAndValues); keyIdx += 2 {
		var key string
		if stringer, ok := keysAndValues[keyIdx].(fmt.Stringer); ok {
			key = stringer.String()
		} else {
			key = fmt.Sprintf("%v", keysAndValues[keyIdx])
		}

		if keyIdx+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(key, keysAndValues[keyIdx+1]))
		} else {
			// Surface the mistake in the output instead of dropping the key.
			fields = append(fields, zap.Any(key, errors.New("unpaired log key")))
		}
	}
	return fields
}

func (imp *impl) logArgs(level Level, args []interface{}) {
	if imp.shouldLog(level) {
		imp.emit(level, fmt.Sprint(args...), nil)
	}
}

func (imp *impl) logf(level Level, template string, args []interface{}) {
	if imp.shouldLog(level) {
		imp.emit(level, fmt.Sprintf(template, args...), nil)
	}
}

func (imp *impl) logw(level Level, msg string, keysAndValues []interface{}) {
	if imp.shouldLog(level) {
		imp.emit(level, msg, toFields(keysAndValues))
	}
}

func (imp *impl) Debug(args ...interface{}) { imp.logArgs(DEBUG, args) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.logf(DEBUG, template, args) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.logw(DEBUG, msg, keysAndValues)
}

func (imp *impl) Info(args ...interface{}) { imp.logArgs(INFO, args) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.logf(INFO, template, args) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.logw(INFO, msg, keysAndValues)
}

func (imp *impl) Warn(args ...interface{}) { imp.logArgs(WARN, args) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.logf(WARN, template, args) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.logw(WARN, msg, keysAndValues)
}

func (imp *impl) Error(args ...interface{}) { imp.logArgs(ERROR, args) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.logf(ERROR, template, args) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.logw(ERROR, msg, keysAndValues)
}

func (imp *impl) fatal(msg string, fields []zapcore.Field) {
	imp.emit(ERROR, msg, fields)
	os.Exit(1)
}

// These Fatal* methods log as errors then exit the process.
func (imp *impl) Fatal(args ...interface{}) { imp.fatal(fmt.Sprint(args...), nil) }

func (imp *impl) Fatalf(template string, args ...interface{}) {
	imp.fatal(fmt.Sprintf(template, args...), nil)
}

func (imp *impl) Fatalw(msg string, keysAndValues ...interface{}) {
	imp.fatal(msg, toFields(keysAndValues))
}

// getCaller finds the code that called a public logging method. The stack at
// this point is getCaller, emit, one of logArgs/logf/logw/fatal, the public
// method and then the caller.
func getCaller() zapcore.EntryCaller {
	var ok bool
	var entryCaller zapcore.EntryCaller
	const skipToLogCaller = 4
	entryCaller.PC, entryCaller.File, entryCaller.Line, ok = runtime.Caller(skipToLogCaller)
	if !ok {
		return entryCaller
	}
	entryCaller.Defined = true

	if runtimeFunc := runtime.FuncForPC(entryCaller.PC); runtimeFunc != nil {
		entryCaller.Function = runtimeFunc.Name()
	}
	return entryCaller
}
