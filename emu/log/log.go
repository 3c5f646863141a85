package log

import (
	"io"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

func init() {
	// Filtering is done per module, logrus must let everything through.
	logrus.SetLevel(logrus.DebugLevel)
}

// SetOutput sets the destination of all log messages.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// A Context adds fields to every log message, while it is registered.
type Context interface {
	AddLogContext(e *EntryZ)
}

var (
	ctxmu    sync.Mutex
	contexts []Context
)

func AddContext(ctx Context) {
	ctxmu.Lock()
	defer ctxmu.Unlock()
	contexts = append(contexts, ctx)
}

func RemoveContext(ctx Context) {
	ctxmu.Lock()
	defer ctxmu.Unlock()
	for i, c := range contexts {
		if c == ctx {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}

func addContexts(e *EntryZ) {
	ctxmu.Lock()
	defer ctxmu.Unlock()
	for _, c := range contexts {
		c.AddLogContext(e)
	}
}
