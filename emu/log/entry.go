package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

// Entry is the printf-style counterpart of EntryZ. It checks the module mask
// before doing any formatting.
type Entry struct {
	mod Module
}

func (entry Entry) log() *logrus.Entry {
	var z EntryZ
	addContexts(&z)

	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = entry.mod.String()
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	return logrus.StandardLogger().WithFields(fields)
}

func (entry Entry) Debugf(format string, args ...any) {
	if entry.mod.Enabled(DebugLevel) {
		entry.log().Debugf(format, args...)
	}
}

func (entry Entry) Infof(format string, args ...any) {
	if entry.mod.Enabled(InfoLevel) {
		entry.log().Infof(format, args...)
	}
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.log().Warnf(format, args...)
	}
}

func (entry Entry) Errorf(format string, args ...any) {
	if entry.mod.Enabled(ErrorLevel) {
		entry.log().Errorf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	if entry.mod.Enabled(FatalLevel) {
		entry.log().Fatalf(format, args...)
	}
}
