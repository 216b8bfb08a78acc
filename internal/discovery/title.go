package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// TitleFromReadme extracts the first level-1 heading from README content,
// skipping headings inside fenced code blocks. Returns "" when no title
// is found.
func TitleFromReadme(content string) string {
	inCodeBlock := false

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}

		if strings.HasPrefix(stripped, "# ") && len(stripped) > 2 {
			return strings.TrimSpace(stripped[2:])
		}
	}

	return ""
}

// DirTitle returns the display title for a kustomize directory: the README
// title when one exists, otherwise a prettified form of relPath
// ("apps/my_app" becomes "Apps > My App").
func DirTitle(dir, relPath string) string {
	if data, err := os.ReadFile(filepath.Join(dir, readmeName)); err == nil {
		if title := TitleFromReadme(string(data)); title != "" {
			return title
		}
	}
	return prettify(relPath)
}

func prettify(relPath string) string {
	s := strings.ReplaceAll(relPath, "/", " > ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return titleCase(s)
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
