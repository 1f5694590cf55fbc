package buildscript

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
)

// configurations are the Gradle dependency buckets whose string arguments are module notations.
var configurations = map[string]bool{
	"api":                        true,
	"implementation":             true,
	"compileOnly":                true,
	"compileOnlyApi":             true,
	"runtimeOnly":                true,
	"annotationProcessor":        true,
	"testImplementation":         true,
	"testCompileOnly":            true,
	"testRuntimeOnly":            true,
	"testFixturesApi":            true,
	"testFixturesImplementation": true,
	"classpath":                  true,
}

// IsConfiguration reports whether name is a dependency configuration the scanner understands.
func IsConfiguration(name string) bool {
	return configurations[name]
}

// ParseKotlinScript extracts module notations from a build.gradle.kts script.
func ParseKotlinScript(src []byte) ([]Dependency, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(kotlin.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Kotlin script: %w", err)
	}
	defer tree.Close()

	deps := collectDependencyCalls(tree.RootNode(), src)
	if len(deps) > 0 {
		return deps, nil
	}

	// The grammar does not cover every DSL shape; fall back to a line scan.
	return parseKotlinScriptWithRegex(src), nil
}

func collectDependencyCalls(root *sitter.Node, src []byte) []Dependency {
	var deps []Dependency

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		if node.Type() == "call_expression" {
			if callee := node.NamedChild(0); callee != nil && callee.Type() == "simple_identifier" {
				name := callee.Content(src)
				if IsConfiguration(name) {
					deps = append(deps, stringArguments(node, name, src)...)
					return
				}
			}
		}

		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(root)

	return deps
}

// stringArguments returns the module notations passed to one configuration call,
// including those wrapped in platform(...) or enforcedPlatform(...), and the
// module spelled out as group = "...", name = "...", version = "...".
func stringArguments(call *sitter.Node, configuration string, src []byte) []Dependency {
	var deps []Dependency
	named := make(map[string]string)

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Type() == "value_argument" {
			if name, value, ok := namedStringArgument(node, src); ok {
				named[name] = value
				return
			}
		}
		if node.Type() == "string_literal" {
			if dep, ok := dependencyFromLiteral(node.Content(src), configuration, int(node.StartPoint().Row)+1); ok {
				deps = append(deps, dep)
			}
			return
		}
		if node.Type() == "annotated_lambda" || node.Type() == "lambda_literal" {
			// exclude { } and because { } blocks do not declare modules
			return
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}

	for i := 1; i < int(call.NamedChildCount()); i++ {
		walk(call.NamedChild(i))
	}

	if dep, ok := dependencyFromNamed(named, configuration, int(call.StartPoint().Row)+1); ok {
		deps = append(deps, dep)
	}
	return deps
}

// namedStringArgument matches `name = "value"` arguments.
func namedStringArgument(arg *sitter.Node, src []byte) (string, string, bool) {
	count := int(arg.NamedChildCount())
	if count < 2 {
		return "", "", false
	}
	label, value := arg.NamedChild(0), arg.NamedChild(count-1)
	if label.Type() != "simple_identifier" || value.Type() != "string_literal" {
		return "", "", false
	}
	return label.Content(src), strings.Trim(value.Content(src), `"`), true
}

func dependencyFromNamed(named map[string]string, configuration string, line int) (Dependency, bool) {
	group, name := named["group"], named["name"]
	if group == "" || name == "" {
		return Dependency{}, false
	}
	notation := group + ":" + name
	if version := named["version"]; version != "" {
		notation += ":" + version
	}
	return dependencyFromLiteral(notation, configuration, line)
}

func dependencyFromLiteral(literal, configuration string, line int) (Dependency, bool) {
	text := strings.Trim(literal, `"`)
	if strings.ContainsAny(text, "${}") {
		return Dependency{}, false
	}
	c, version, err := ParseNotation(text)
	if err != nil {
		return Dependency{}, false
	}
	return Dependency{Configuration: configuration, Coordinate: c, Version: version, Line: line}, true
}

var (
	dependencyCallRegex = regexp.MustCompile(`\b(\w+)\s*\(\s*(?:(?:enforcedPlatform|platform)\s*\(\s*)?"([^"]+)"`)
	namedCallRegex      = regexp.MustCompile(`\b(\w+)\s*\(\s*(\w+\s*=\s*"[^"]*"(?:\s*,\s*\w+\s*=\s*"[^"]*")*)`)
	namedArgRegex       = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

func parseKotlinScriptWithRegex(src []byte) []Dependency {
	var deps []Dependency
	for i, line := range strings.Split(string(src), "\n") {
		for _, m := range dependencyCallRegex.FindAllStringSubmatch(line, -1) {
			if !IsConfiguration(m[1]) {
				continue
			}
			if dep, ok := dependencyFromLiteral(m[2], m[1], i+1); ok {
				deps = append(deps, dep)
			}
		}
		for _, m := range namedCallRegex.FindAllStringSubmatch(line, -1) {
			if !IsConfiguration(m[1]) {
				continue
			}
			named := make(map[string]string)
			for _, arg := range namedArgRegex.FindAllStringSubmatch(m[2], -1) {
				named[arg[1]] = arg[2]
			}
			if dep, ok := dependencyFromNamed(named, m[1], i+1); ok {
				deps = append(deps, dep)
			}
		}
	}
	return deps
}
