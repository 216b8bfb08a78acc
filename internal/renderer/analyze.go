package renderer

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"gopkg.in/yaml.v3"
)

// noResourcesNotice is returned when an analyzed stream holds no documents.
const noResourcesNotice = "No resources found."

// analyzeResources renders a resource-analysis table for a manifest stream.
//
// One row pair per mapping document, in stream order: a summary row
// (kind with an api-info sub-label, name, namespace, a details toggle) and
// a hidden detail row holding the document re-serialized as YAML. The
// toggle works through CSS alone; the trailing script only upgrades the
// label text and survives instant page navigation. Non-mapping documents
// are skipped without consuming a row identifier.
func analyzeResources(docs []*yaml.Node) string {
	if len(docs) == 0 {
		return noResourcesNotice
	}

	var b strings.Builder

	b.WriteString("<style>\n" + tableCSS + "</style>\n")
	b.WriteString("\n<div class='kustodian-analysis resource-analysis'>\n<table class='resource-table'>\n")
	b.WriteString("<thead>\n<tr>\n<th>Kind</th>\n<th>Name</th>\n<th>Namespace</th>\n<th>Details</th>\n</tr>\n</thead>\n<tbody>\n")

	index := 1
	for _, doc := range docs {
		mapping := mappingOf(doc)
		if mapping == nil {
			continue
		}

		row, err := renderResourceRow(mapping, index)
		if err != nil {
			continue
		}
		b.WriteString(row)
		index++
	}

	b.WriteString("</tbody>\n</table>\n</div>\n")
	b.WriteString("\n<style>\n" + toggleCSS + "</style>\n")
	b.WriteString("<script>\n" + toggleJS + "</script>\n")

	return b.String()
}

func renderResourceRow(mapping *yaml.Node, index int) (string, error) {
	kind := scalarValue(childByKey(mapping, "kind"))
	name, namespace := nameAndNamespace(mapping)
	apiInfo := formatAPIInfo(scalarValue(childByKey(mapping, "apiVersion")))

	yamlContent, err := encodeDocument(mapping)
	if err != nil {
		return "", err
	}

	detailsID := fmt.Sprintf("resource-%d", index)

	return fmt.Sprintf(`<tr class='resource-row'>
  <td>%s<span class="resource-api-info">%s</span></td>
  <td title="%s">%s</td>
  <td title="%s">%s</td>
  <td><input type="checkbox" id="%s-check" class="k8s-yaml-checkbox" aria-label="Show YAML for %s %s" /><label for="%s-check" class="k8s-yaml-toggle">▼ YAML</label></td>
</tr>
<tr id="%s-row" class="k8s-yaml-row" data-yaml-id="%s">
  <td colspan="4">
    <div class="resource-details">

`+"```yaml\n%s```"+`

    </div>
  </td>
</tr>
`,
		html.EscapeString(kind), html.EscapeString(apiInfo),
		html.EscapeString(name), html.EscapeString(name),
		html.EscapeString(namespace), html.EscapeString(namespace),
		detailsID, html.EscapeString(kind), html.EscapeString(name), detailsID,
		detailsID, detailsID,
		yamlContent,
	), nil
}

// formatAPIInfo splits apiVersion into its sub-label form: "group/version"
// when a group is present, the bare version otherwise.
func formatAPIInfo(apiVersion string) string {
	group, version, found := strings.Cut(apiVersion, "/")
	if found && strings.TrimSpace(group) != "" {
		return group + "/" + version
	}
	if found {
		return version
	}
	return apiVersion
}

// nameAndNamespace pulls metadata.name and metadata.namespace. A missing
// namespace stays the empty string so the cell renders empty, not "None".
func nameAndNamespace(mapping *yaml.Node) (name, namespace string) {
	meta := childByKey(mapping, "metadata")
	if meta == nil || meta.Kind != yaml.MappingNode {
		return "", ""
	}
	return scalarValue(childByKey(meta, "name")), scalarValue(childByKey(meta, "namespace"))
}

func encodeDocument(node *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
