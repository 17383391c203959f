// Package glog routes clog messages to github.com/golang/glog.
//
// Importing the package for side effects is enough:
//
//	import _ "github.com/cayleygraph/ldt/clog/glog"
package glog

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/golang/glog"

	"github.com/cayleygraph/ldt/clog"
)

func init() {
	clog.SetLogger(Logger{})
}

// Logger forwards clog calls to glog, skipping the clog frames.
type Logger struct{}

func (Logger) Infof(format string, args ...interface{}) {
	glog.InfoDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Warningf(format string, args ...interface{}) {
	glog.WarningDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Errorf(format string, args ...interface{}) {
	glog.ErrorDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Fatalf(format string, args ...interface{}) {
	glog.FatalDepth(3, fmt.Sprintf(format, args...))
}

func (Logger) V(level int) bool {
	return bool(glog.V(glog.Level(level)))
}

// SetV changes the glog verbosity through its registered "v" flag.
func (Logger) SetV(level int) {
	f := flag.Lookup("v")
	if f == nil {
		glog.Warningf("changing log level is not supported; run command with '-v %d' flag", level)
		return
	}
	if err := f.Value.Set(strconv.Itoa(level)); err != nil {
		glog.Warningf("cannot set log level to %d: %v", level, err)
	}
}
