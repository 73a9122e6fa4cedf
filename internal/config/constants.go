// Package config holds small constants shared across the pipeline,
// grounded on the teacher's internal/config package.
package config

// SourceFileExt is the canonical Compiscript source file extension.
const SourceFileExt = ".csc"

// SourceFileExtensions lists every recognized extension (a project may be
// seeded from an older tree that used ".cs").
var SourceFileExtensions = []string{".csc", ".cs"}

// CtorMemberName is the sentinel member name under which a class
// constructor is stored, per spec.md §3 ("distinguished member under a
// fixed sentinel name").
const CtorMemberName = "__ctor__"

// PrintFuncName is the single built-in global function every program may
// call without declaring it.
const PrintFuncName = "print"

// CacheFileName is the default sqlite database file for internal/cache.
const CacheFileName = ".compiscript-cache.db"
