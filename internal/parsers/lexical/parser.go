package lexical

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.CodeParser = (*Parser)(nil)

var (
	declPattern  = regexp.MustCompile(`(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\((.*?)\)`)
	arrowPattern = regexp.MustCompile(`(?:export\s+)?(const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\((.*?)\)\s*=>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// DefaultContainerDirs are the top-level directories skipped when naming features.
var DefaultContainerDirs = []string{"src", "app"}

// Config holds parser configuration.
type Config struct {
	// ContainerDirs are top-level directories that hold features rather
	// than being one (default: src, app).
	ContainerDirs []string
}

// Parser is a regex-based CodeParser for JavaScript and TypeScript.
type Parser struct {
	containers map[string]struct{}
}

// New creates a parser.
func New(cfg Config) *Parser {
	dirs := cfg.ContainerDirs
	if len(dirs) == 0 {
		dirs = DefaultContainerDirs
	}
	containers := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		containers[strings.Trim(d, "/")] = struct{}{}
	}
	return &Parser{containers: containers}
}

// ExtractFunctions returns declared functions followed by variable-bound
// arrow functions, each group in source order.
func (p *Parser) ExtractFunctions(text, filePath string) []domain.CodeFunction {
	functions := make([]domain.CodeFunction, 0)
	component := isComponentFile(filePath)

	for _, m := range declPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		params := text[m[4]:m[5]]
		functions = append(functions, domain.CodeFunction{
			ID:        domain.FunctionID(filePath, name),
			Name:      name,
			File:      filePath,
			Line:      lineAt(text, m[0]),
			Kind:      kindOf(name, component),
			Signature: "function " + name + "(" + collapse(params) + ")",
			Params:    parseParams(params),
		})
	}

	for _, m := range arrowPattern.FindAllStringSubmatchIndex(text, -1) {
		keyword := text[m[2]:m[3]]
		name := text[m[4]:m[5]]
		params := text[m[6]:m[7]]
		functions = append(functions, domain.CodeFunction{
			ID:        domain.FunctionID(filePath, name),
			Name:      name,
			File:      filePath,
			Line:      lineAt(text, m[0]),
			Kind:      kindOf(name, component),
			Signature: keyword + " " + name + " = (" + collapse(params) + ") =>",
			Params:    parseParams(params),
		})
	}

	return functions
}

// lineAt returns the 1-based line containing offset.
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

func collapse(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

func isComponentFile(filePath string) bool {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".tsx", ".jsx":
		return true
	default:
		return false
	}
}

func kindOf(name string, componentFile bool) domain.FunctionKind {
	if componentFile && name != "" && unicode.IsUpper(rune(name[0])) {
		return domain.KindComponent
	}
	return domain.KindFunction
}

// parseParams splits a parameter list on commas that are not nested in
// brackets, drops type annotations and discards empty tokens.
func parseParams(list string) []string {
	params := make([]string, 0)
	for _, token := range splitTopLevel(list) {
		if i := strings.IndexByte(token, ':'); i >= 0 {
			token = token[:i]
		}
		token = strings.TrimSpace(token)
		if token != "" {
			params = append(params, token)
		}
	}
	return params
}

func splitTopLevel(list string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			// "=>" inside a default value is not a closing bracket.
			if list[i] == '>' && i > 0 && list[i-1] == '=' {
				continue
			}
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, list[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, list[start:])
}

