package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrEdgeEndpointMissing is returned when an edge references a module that is not in the graph.
	// It signals a broken orchestrator invariant and aborts the build.
	ErrEdgeEndpointMissing = zerr.New("edge endpoint missing from module graph")

	// ErrModuleNotFound is returned when a requested module is not in the graph.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrUnknownResolveKind is returned when decoding an unrecognized resolve kind.
	ErrUnknownResolveKind = zerr.New("unknown resolve kind")

	// ErrTaskPanicked is returned when a build task panics.
	ErrTaskPanicked = zerr.New("build task panicked")

	// ErrBuildFailed is returned when one or more modules failed to build.
	ErrBuildFailed = zerr.New("module graph build failed")

	// ErrBuildIncomplete is returned when errors were dropped because the error channel was full.
	ErrBuildIncomplete = zerr.New("build errors were dropped")

	// ErrEmptyLoadResult is returned when a loader succeeds without producing a result.
	ErrEmptyLoadResult = zerr.New("loader returned no content")

	// ErrModuleNotResolved is returned when the resolver finds nothing for a specifier.
	ErrModuleNotResolved = zerr.New("cannot resolve module")

	// ErrNoEntries is returned when the configuration declares no entry points.
	ErrNoEntries = zerr.New("no entries configured")

	// ErrInvalidPattern is returned when a configured regular expression does not compile.
	ErrInvalidPattern = zerr.New("invalid pattern")

	// ErrUnknownCacheBackend is returned for an unsupported persistent cache backend.
	ErrUnknownCacheBackend = zerr.New("unknown persistent cache backend")

	// ErrConfigNotFound is returned when no configuration file can be found.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the configuration file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrInvalidTransformRule is returned for a transform rule without a command.
	ErrInvalidTransformRule = zerr.New("invalid transform rule")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache entry")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache entry")

	// ErrStoreMarshalFailed is returned when a cache entry cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrStoreUnmarshalFailed is returned when a cache entry cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal cache entry")

	// ErrCacheStoreFailed is returned when the persistent cache store cannot be read or written.
	ErrCacheStoreFailed = zerr.New("persistent cache store failed")
)

// Stage names the part of the build in which an error occurred.
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageLoad      Stage = "load"
	StageTransform Stage = "transform"
	StageParse     Stage = "parse"
	StageProcess   Stage = "process"
	StageTask      Stage = "task"
)

// CompilationError is a per-module failure. It terminates only the branch that produced it.
type CompilationError struct {
	Stage    Stage
	ModuleID ModuleID
	Source   string
	Importer ModuleID
	Err      error
}

// NewCompilationError tags err with the stage and the request that failed.
func NewCompilationError(stage Stage, param *ResolveParam, id ModuleID, err error) *CompilationError {
	ce := &CompilationError{Stage: stage, ModuleID: id, Err: err}
	if param != nil {
		ce.Source = param.Source
		ce.Importer = param.Importer
	}
	return ce
}

func (e *CompilationError) Error() string {
	target := e.ModuleID.String()
	if target == "" {
		target = e.Source
	}
	if !e.Importer.IsZero() {
		return fmt.Sprintf("%s %q (imported by %q): %v", e.Stage, target, e.Importer.String(), e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Stage, target, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
