package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	FileNotFoundError

	// Logging errors
	CreateLogFileError

	// GenBank errors
	GenBankFormatError
	GenBankReadError

	// Translation errors
	TranslateError
	ReportFormatError

	// Cache errors
	CacheOpenError
	CacheCleanError
	CacheReadError
	CacheWriteError
)
