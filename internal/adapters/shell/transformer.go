// Package shell provides a transformer that pipes module content through external commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

// Environment variables describing the module being transformed.
const (
	EnvModuleID     = "WEAVE_MODULE_ID"
	EnvResolvedPath = "WEAVE_RESOLVED_PATH"
	EnvModuleType   = "WEAVE_MODULE_TYPE"
)

var _ ports.Transformer = (*CommandTransformer)(nil)

// CommandTransformer implements ports.Transformer by running the first rule whose test matches
// the resolved path. Content is written to stdin and stdout becomes the new content.
type CommandTransformer struct {
	logger ports.Logger
	rules  []domain.TransformRule
	dir    string
}

// NewCommandTransformer creates a CommandTransformer running commands in dir.
func NewCommandTransformer(logger ports.Logger, rules []domain.TransformRule, dir string) *CommandTransformer {
	return &CommandTransformer{
		logger: logger,
		rules:  rules,
		dir:    dir,
	}
}

// Transform runs the matching command. Modules matched by no rule pass through unchanged.
func (t *CommandTransformer) Transform(ctx context.Context, param *domain.TransformParam) (*domain.TransformResult, error) {
	rule, ok := t.match(param.ResolvedPath)
	if !ok || len(rule.Command) == 0 {
		return nil, nil
	}

	name := rule.Command[0]
	args := rule.Command[1:]

	// Merge order, low to high: system, rule env, module description.
	cmdEnv := resolveEnvironment(os.Environ(), rule.Env, map[string]string{
		EnvModuleID:     param.ModuleID.String(),
		EnvResolvedPath: param.ResolvedPath,
		EnvModuleType:   string(param.ModuleType),
	})

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = t.dir
	cmd.Env = cmdEnv
	cmd.Stdin = strings.NewReader(param.Content)

	var stdout bytes.Buffer
	stderr := &logWriter{logger: t.logger, moduleID: param.ModuleID.String()}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stderr = io.MultiWriter(stderr, vertex.Stderr())
	}

	err := cmd.Run()
	stderr.Flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "transform command failed"), "exit_code", exitCode)
		return nil, zerr.With(err, "command", name)
	}

	return &domain.TransformResult{Content: stdout.String()}, nil
}

func (t *CommandTransformer) match(resolvedPath string) (domain.TransformRule, bool) {
	for _, rule := range t.rules {
		if rule.Test != nil && rule.Test.MatchString(resolvedPath) {
			return rule, true
		}
	}
	return domain.TransformRule{}, false
}

// logWriter forwards complete stderr lines to the logger.
type logWriter struct {
	logger   ports.Logger
	moduleID string
	buf      []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits a trailing partial line.
func (w *logWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" || w.logger == nil {
		return
	}
	w.logger.Warn(line, "module_id", w.moduleID)
}

// resolveEnvironment merges environment variables; later layers override earlier ones.
func resolveEnvironment(sysEnv []string, layers ...map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv))
	order := make([]string, 0, len(sysEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, layer := range layers {
		for k, v := range layer {
			if _, seen := envMap[k]; !seen {
				order = append(order, k)
			}
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
