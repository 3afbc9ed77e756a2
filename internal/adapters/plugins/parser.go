package plugins

import (
	"context"
	"regexp"
	"sort"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

var _ ports.Parser = (*Parser)(nil)

// Each pattern captures the specifier in its last submatch.
var (
	jsStaticImport  = regexp.MustCompile(`(?m)(?:^|[;}\s])import\s+(type\s+)?(?:[\w$*{}\s,]+?\s+from\s+)?["']([^"'\n]+)["']`)
	jsExportFrom    = regexp.MustCompile(`(?m)(?:^|[;}\s])export\s+(type\s+)?(?:\*(?:\s+as\s+[\w$]+)?|\{[^}]*\})\s*from\s+["']([^"'\n]+)["']`)
	jsDynamicImport = regexp.MustCompile(`\bimport\s*\(\s*["'` + "`" + `]([^"'` + "`" + `\n]+)["'` + "`" + `]\s*\)`)
	jsRequire       = regexp.MustCompile(`(?:^|[^.\w$])require\s*\(\s*["']([^"'\n]+)["']\s*\)`)

	cssImport = regexp.MustCompile(`@import\s+(?:url\(\s*)?["']?([^"')\s;]+)["']?\s*\)?[^;]*;?`)
	cssURL    = regexp.MustCompile(`url\(\s*["']?([^"')]+?)["']?\s*\)`)

	htmlScript = regexp.MustCompile(`(?i)<script\b[^>]*?\bsrc\s*=\s*["']([^"']+)["']`)
	htmlLink   = regexp.MustCompile(`(?i)<link\b[^>]*?\bhref\s*=\s*["']([^"']+)["']`)
)

// Parser finds the imports of JavaScript, TypeScript, CSS and HTML modules with regular
// expressions over comment-stripped content. JSON and assets have no imports.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

type match struct {
	pos    int
	record domain.ImportRecord
}

// Parse returns the module's imports in source order.
func (p *Parser) Parse(ctx context.Context, param *domain.ParseParam) (*domain.ModuleMetaData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []match
	switch {
	case param.ModuleType.IsScript():
		matches = scanScript(stripComments(param.Content, true))
	case param.ModuleType == domain.ModuleTypeCSS:
		matches = scanCSS(stripComments(param.Content, false))
	case param.ModuleType == domain.ModuleTypeHTML:
		matches = scanHTML(stripHTMLComments(param.Content))
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	meta := &domain.ModuleMetaData{}
	seen := make(map[domain.ImportRecord]bool, len(matches))
	for _, m := range matches {
		if seen[m.record] {
			continue
		}
		seen[m.record] = true
		meta.Imports = append(meta.Imports, m.record)
	}
	return meta, nil
}

func scanScript(src string) []match {
	var out []match
	collect := func(re *regexp.Regexp, kind domain.ResolveKind, typeOnly bool) {
		for _, loc := range re.FindAllStringSubmatchIndex(src, -1) {
			// Type-only imports vanish at compile time.
			if typeOnly && loc[2] >= 0 {
				continue
			}
			n := len(loc)
			out = append(out, match{pos: loc[n-2], record: domain.ImportRecord{Source: src[loc[n-2]:loc[n-1]], Kind: kind}})
		}
	}
	collect(jsStaticImport, domain.ResolveKindImport, true)
	collect(jsExportFrom, domain.ResolveKindImport, true)
	collect(jsDynamicImport, domain.ResolveKindDynamicImport, false)
	collect(jsRequire, domain.ResolveKindRequire, false)
	return out
}

func scanCSS(src string) []match {
	var out []match
	var imports [][]int
	for _, loc := range cssImport.FindAllStringSubmatchIndex(src, -1) {
		imports = append(imports, loc)
		out = append(out, match{pos: loc[2], record: domain.ImportRecord{Source: src[loc[2]:loc[3]], Kind: domain.ResolveKindCSSAtImport}})
	}
	for _, loc := range cssURL.FindAllStringSubmatchIndex(src, -1) {
		if within(imports, loc[0]) {
			continue
		}
		out = append(out, match{pos: loc[2], record: domain.ImportRecord{Source: src[loc[2]:loc[3]], Kind: domain.ResolveKindCSSURL}})
	}
	return out
}

func scanHTML(src string) []match {
	var out []match
	for _, loc := range htmlScript.FindAllStringSubmatchIndex(src, -1) {
		out = append(out, match{pos: loc[2], record: domain.ImportRecord{Source: src[loc[2]:loc[3]], Kind: domain.ResolveKindScriptSrc}})
	}
	for _, loc := range htmlLink.FindAllStringSubmatchIndex(src, -1) {
		out = append(out, match{pos: loc[2], record: domain.ImportRecord{Source: src[loc[2]:loc[3]], Kind: domain.ResolveKindLinkHref}})
	}
	return out
}

func within(ranges [][]int, pos int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}
