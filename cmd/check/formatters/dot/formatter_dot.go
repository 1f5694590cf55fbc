package dot

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/report"
)

var statusStyles = map[formatters.Status]string{
	formatters.StatusSelected:   `style=filled, fillcolor="#C8E6C9"`,
	formatters.StatusExcluded:   `style=dashed, color=gray50`,
	formatters.StatusUnresolved: `style=filled, fillcolor="#FFCDD2"`,
}

// Formatter renders the conflict graph as Graphviz DOT.
type Formatter struct{}

// Format converts the report's conflict graph to an undirected DOT graph.
func (f *Formatter) Format(r report.Report, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("graph conflicts {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}

	if r.Graph != nil {
		vertices, err := conflict.SortedVertices(r.Graph)
		if err != nil {
			return "", err
		}
		edges, err := conflict.SortedEdges(r.Graph)
		if err != nil {
			return "", err
		}

		statuses := formatters.ModuleStatuses(r)
		versions := formatters.ModuleVersions(r)

		if len(vertices) > 0 {
			sb.WriteString("\n")
		}
		for _, v := range vertices {
			label := v
			if vs := versions[v]; len(vs) > 0 {
				label += `\n` + strings.Join(vs, ", ")
			}
			attrs := fmt.Sprintf(`label="%s"`, label)
			if style, ok := statusStyles[statuses[v]]; ok {
				attrs += ", " + style
			}
			sb.WriteString(fmt.Sprintf("  %q [%s];\n", v, attrs))
		}

		if len(edges) > 0 {
			sb.WriteString("\n")
		}
		for _, e := range edges {
			sb.WriteString(fmt.Sprintf("  %q -- %q [label=%q];\n", e.From, e.To, e.Capability))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// GenerateURL creates a GraphvizOnline URL with the graph embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", url.PathEscape(output)), true
}
