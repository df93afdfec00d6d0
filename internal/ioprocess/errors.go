package ioprocess

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngb/pkg/errcode"
)

func GenBankFormatError(path string, err error) error {
	msg := "File <em>%s</em> is not a valid GenBank file"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenBankFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn.Name(), path, err),
	}
}

func GenBankReadError(path string, err error) error {
	msg := "Cannot read GenBank data from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenBankReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

func TranslateError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TranslateError,
		Msg:  "Translation of coding features failed",
		Err:  fmt.Errorf("from %s: translation failed: %w", fn.Name(), err),
	}
}
