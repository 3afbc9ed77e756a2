package domain

// LoadParam is the input of the load stage.
type LoadParam struct {
	ModuleID     ModuleID
	ResolvedPath string
	Query        Query
	Meta         map[string]string
}

// LoadResult is the raw content produced by a loader.
type LoadResult struct {
	Content    string
	ModuleType ModuleType
	// SourceMap is optional and is pushed onto the module's source map chain.
	SourceMap string
}

// TransformParam is the input of the transform stage.
type TransformParam struct {
	ModuleID       ModuleID
	ResolvedPath   string
	Content        string
	ModuleType     ModuleType
	Query          Query
	Meta           map[string]string
	SourceMapChain []string
}

// TransformResult is the output of the transform stage.
type TransformResult struct {
	Content string
	// ModuleType overrides the loaded type when set.
	ModuleType     ModuleType
	SourceMapChain []string
}

// ParseParam is the input of the parse stage.
type ParseParam struct {
	ModuleID     ModuleID
	ResolvedPath string
	Query        Query
	ModuleType   ModuleType
	Content      string
}

// ProcessParam is the input of the post-parse processing hook. Processors mutate Meta in place.
type ProcessParam struct {
	ModuleID   ModuleID
	ModuleType ModuleType
	Content    string
	Meta       *ModuleMetaData
}
