package compiler_test

import (
	"context"
	"io"
	"path"
	"sync"
	"time"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

const projectRoot = "/app"

type fakeFile struct {
	content   string
	imports   []string
	delay     time.Duration
	loadErr   error
	loadPanic bool
}

// project is an in-memory source tree implementing every pipeline collaborator.
type project struct {
	mu        sync.Mutex
	files     map[string]*fakeFile
	mtimes    map[string]int64
	externals map[string]bool
	resolves  map[string]int
	loads     map[string]int
	parses    map[string]int
}

func newProject() *project {
	return &project{
		files:     make(map[string]*fakeFile),
		mtimes:    make(map[string]int64),
		externals: make(map[string]bool),
		resolves:  make(map[string]int),
		loads:     make(map[string]int),
		parses:    make(map[string]int),
	}
}

func (p *project) add(name string, imports ...string) *fakeFile {
	p.mu.Lock()
	defer p.mu.Unlock()
	f := &fakeFile{content: "// " + name, imports: imports}
	p.files[path.Join(projectRoot, name)] = f
	p.mtimes[path.Join(projectRoot, name)] = 1
	return f
}

func (p *project) touch(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mtimes[path.Join(projectRoot, name)]++
}

func (p *project) count(m map[string]int, key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return m[key]
}

func (p *project) plugins() ports.PluginSet {
	return ports.PluginSet{
		Resolver:    p,
		Loader:      p,
		Transformer: passthrough{},
		Parser:      p,
	}
}

func (p *project) Resolve(_ context.Context, param *domain.ResolveParam) (*domain.ResolveResult, error) {
	p.mu.Lock()
	p.resolves[param.Source]++
	external := p.externals[param.Source]
	full := path.Join(projectRoot, param.Source)
	f, ok := p.files[full]
	p.mu.Unlock()

	if external {
		return &domain.ResolveResult{ResolvedPath: param.Source, External: true}, nil
	}
	if !ok {
		return nil, zerr.With(domain.ErrModuleNotResolved, "source", param.Source)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return &domain.ResolveResult{ResolvedPath: full, SideEffects: true}, nil
}

func (p *project) Load(_ context.Context, param *domain.LoadParam) (*domain.LoadResult, error) {
	p.mu.Lock()
	p.loads[param.ModuleID.String()]++
	f := p.files[param.ResolvedPath]
	p.mu.Unlock()

	if f.loadPanic {
		panic("loader exploded")
	}
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return &domain.LoadResult{Content: f.content, ModuleType: domain.ModuleTypeFromPath(param.ResolvedPath)}, nil
}

func (p *project) Parse(_ context.Context, param *domain.ParseParam) (*domain.ModuleMetaData, error) {
	p.mu.Lock()
	p.parses[param.ModuleID.String()]++
	f := p.files[param.ResolvedPath]
	p.mu.Unlock()

	meta := &domain.ModuleMetaData{}
	for _, imp := range f.imports {
		meta.Imports = append(meta.Imports, domain.ImportRecord{Source: imp, Kind: domain.ResolveKindImport})
	}
	return meta, nil
}

func (p *project) ModTime(resolvedPath string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ts, ok := p.mtimes[resolvedPath]
	if !ok {
		return 0, zerr.With(zerr.New("no such file"), "path", resolvedPath)
	}
	return ts, nil
}

func (p *project) HashContent(content string) string {
	return "hash:" + content
}

type passthrough struct{}

func (passthrough) Transform(_ context.Context, param *domain.TransformParam) (*domain.TransformResult, error) {
	return &domain.TransformResult{Content: param.Content, SourceMapChain: param.SourceMapChain}, nil
}

// memoryStore is a ModuleCacheStore that survives across compilers in a test.
type memoryStore struct {
	mu      sync.Mutex
	entries map[domain.ModuleID]*domain.CachedModule
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[domain.ModuleID]*domain.CachedModule)}
}

func (s *memoryStore) LoadAll(context.Context) ([]*domain.CachedModule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.CachedModule, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (s *memoryStore) Save(_ context.Context, entries []*domain.CachedModule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.Module.ID] = e.Clone()
	}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id domain.ModuleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[domain.ModuleID]*domain.CachedModule)
	return nil
}

func (s *memoryStore) Close() error { return nil }

func (s *memoryStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[domain.ModuleIDFromString(id)]
	return ok
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(error)          {}

// recordingTelemetry counts vertices by outcome.
type recordingTelemetry struct {
	mu        sync.Mutex
	started   int
	cached    int
	failed    int
	completed int
}

func (r *recordingTelemetry) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	r.mu.Lock()
	r.started++
	r.mu.Unlock()
	v := &recordingVertex{t: r}
	return ports.ContextWithVertex(ctx, v), v
}

func (r *recordingTelemetry) Close() error { return nil }

type recordingVertex struct {
	t *recordingTelemetry
}

func (v *recordingVertex) Stdout() io.Writer           { return io.Discard }
func (v *recordingVertex) Stderr() io.Writer           { return io.Discard }
func (v *recordingVertex) Log(domain.LogLevel, string) {}

func (v *recordingVertex) Cached() {
	v.t.mu.Lock()
	defer v.t.mu.Unlock()
	v.t.cached++
}

func (v *recordingVertex) Complete(err error) {
	v.t.mu.Lock()
	defer v.t.mu.Unlock()
	if err != nil {
		v.t.failed++
		return
	}
	v.t.completed++
}
