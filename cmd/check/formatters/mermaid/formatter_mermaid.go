package mermaid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/report"
)

var classDefs = []struct {
	status formatters.Status
	style  string
}{
	{formatters.StatusSelected, "fill:#C8E6C9"},
	{formatters.StatusExcluded, "stroke-dasharray: 5 5"},
	{formatters.StatusUnresolved, "fill:#FFCDD2"},
}

// Formatter renders the conflict graph as a Mermaid.js flowchart.
type Formatter struct{}

// Format converts the report's conflict graph to Mermaid flowchart syntax.
func (f *Formatter) Format(r report.Report, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}
	sb.WriteString("flowchart LR\n")

	if r.Graph == nil {
		return sb.String(), nil
	}

	vertices, err := conflict.SortedVertices(r.Graph)
	if err != nil {
		return "", err
	}
	edges, err := conflict.SortedEdges(r.Graph)
	if err != nil {
		return "", err
	}

	// Mermaid node IDs can't have dots or colons
	nodeIDs := make(map[string]string, len(vertices))
	for i, v := range vertices {
		nodeIDs[v] = fmt.Sprintf("n%d", i)
	}

	versions := formatters.ModuleVersions(r)
	for _, v := range vertices {
		label := v
		if vs := versions[v]; len(vs) > 0 {
			label += "<br/>" + strings.Join(vs, ", ")
		}
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", nodeIDs[v], label))
	}
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %s ---|\"%s\"| %s\n", nodeIDs[e.From], e.Capability, nodeIDs[e.To]))
	}

	statuses := formatters.ModuleStatuses(r)
	for _, def := range classDefs {
		var members []string
		for _, v := range vertices {
			if statuses[v] == def.status {
				members = append(members, nodeIDs[v])
			}
		}
		if len(members) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  classDef %s %s\n", def.status, def.style))
		sb.WriteString(fmt.Sprintf("  class %s %s\n", strings.Join(members, ","), def.status))
	}

	return sb.String(), nil
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		// Fallback: just return the code URL-encoded
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
