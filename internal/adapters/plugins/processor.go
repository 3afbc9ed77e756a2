package plugins

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

var _ ports.ModuleProcessor = (*Processor)(nil)

var (
	exportDefault     = regexp.MustCompile(`(?m)(?:^|[;}\s])export\s+default\b`)
	exportDeclaration = regexp.MustCompile(`(?m)(?:^|[;}\s])export\s+(?:declare\s+)?(?:async\s+)?(?:function\s*\*?|class|const|let|var|enum|interface|type|abstract\s+class)\s+([\w$]+)`)
	exportList        = regexp.MustCompile(`(?m)(?:^|[;}\s])export\s+(?:type\s+)?\{([^}]*)\}`)
	exportNamespace   = regexp.MustCompile(`(?m)(?:^|[;}\s])export\s+\*\s+as\s+([\w$]+)\s+from\b`)
)

// Processor completes parsed metadata: it records script exports and drops imports that
// cannot be resolved to modules, such as data URIs, absolute URLs and fragment references.
type Processor struct{}

// NewProcessor creates a new Processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process mutates param.Meta in place.
func (p *Processor) Process(ctx context.Context, param *domain.ProcessParam) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if param.Meta == nil {
		return nil
	}

	param.Meta.Imports = slices.DeleteFunc(param.Meta.Imports, func(imp domain.ImportRecord) bool {
		return !isModuleReference(imp.Source)
	})

	if param.ModuleType.IsScript() {
		param.Meta.Exports = scanExports(stripComments(param.Content, true))
	}
	return nil
}

func scanExports(src string) []string {
	var names []string
	if exportDefault.MatchString(src) {
		names = append(names, "default")
	}
	for _, m := range exportDeclaration.FindAllStringSubmatch(src, -1) {
		names = append(names, m[1])
	}
	for _, m := range exportNamespace.FindAllStringSubmatch(src, -1) {
		names = append(names, m[1])
	}
	for _, m := range exportList.FindAllStringSubmatch(src, -1) {
		for item := range strings.SplitSeq(m[1], ",") {
			item = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(item), "type "))
			if item == "" {
				continue
			}
			if _, alias, ok := strings.Cut(item, " as "); ok {
				item = strings.TrimSpace(alias)
			}
			names = append(names, item)
		}
	}

	slices.Sort(names)
	return slices.Compact(names)
}

func isModuleReference(source string) bool {
	switch {
	case source == "",
		strings.HasPrefix(source, "#"),
		strings.HasPrefix(source, "data:"),
		strings.HasPrefix(source, "http://"),
		strings.HasPrefix(source, "https://"),
		strings.HasPrefix(source, "//"):
		return false
	default:
		return true
	}
}
