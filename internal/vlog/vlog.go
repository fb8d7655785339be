// Package vlog is vertex's minimal process-wide leveled logger. The
// teacher's server processes initialize a file/level logger once from
// CLI flags (cmd/server/main.go: log.InitFileLog(dir, module, level))
// and library code logs sparingly at lifecycle/failure points rather
// than per-operation; vlog keeps that shape without pulling in the
// teacher's full rotating file-log package, which this single-node,
// no-daemon-supervision scope has no use for.
package vlog

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level selects which severities are emitted.
type Level int32

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var current atomic.Int32

func init() { current.Store(int32(LevelInfo)) }

// SetLevel sets the process-wide log level, e.g. from the CLI's -v flag.
func SetLevel(l Level) { current.Store(int32(l)) }

var std = log.New(os.Stderr, "", log.LstdFlags)

func emit(l Level, prefix, format string, args ...interface{}) {
	if Level(current.Load()) < l {
		return
	}
	std.Output(3, prefix+" "+fmt.Sprintf(format, args...)) //nolint:errcheck
}

func Debugf(format string, args ...interface{}) { emit(LevelDebug, "[debug]", format, args...) }
func Infof(format string, args ...interface{})  { emit(LevelInfo, "[info]", format, args...) }
func Warnf(format string, args ...interface{})  { emit(LevelWarn, "[warn]", format, args...) }
func Errorf(format string, args ...interface{}) { emit(LevelError, "[error]", format, args...) }
