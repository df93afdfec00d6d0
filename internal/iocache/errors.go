package iocache

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngb/pkg/errcode"
)

// ErrNotOpen is wrapped by errors of a cache that was not opened.
var ErrNotOpen = errors.New("cache is not open")

func CacheOpenError(dir string, err error) error {
	msg := "Cannot open translation cache at <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open cache: %w", fn.Name(), err),
	}
}

func CacheNotOpenError() error {
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  "Translation cache is not open",
		Err:  ErrNotOpen,
	}
}

func CacheReadError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  "Cannot read from translation cache",
		Err:  fmt.Errorf("from %s: cannot read cache: %w", fn.Name(), err),
	}
}

func CacheWriteError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  "Cannot write to translation cache",
		Err:  fmt.Errorf("from %s: cannot write cache: %w", fn.Name(), err),
	}
}

func CacheCleanError(dir string, err error) error {
	msg := "Cannot clean translation cache at <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheCleanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot clean cache: %w", fn.Name(), err),
	}
}
