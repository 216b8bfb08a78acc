package renderer

import "strings"

// openTag introduces a kustomize directive inside a fenced block.
const openTag = "```kustomize"

// closeTag terminates the directive body.
const closeTag = "```"

// Directive is one embedded kustomize block located in page text.
type Directive struct {
	// PathToken references the kustomize directory to build.
	PathToken string

	// Options holds the parsed bracket options (analyze=true etc).
	Options map[string]bool

	// OverrideBody is the trimmed inline YAML override, possibly empty.
	OverrideBody string

	// Start and End delimit the full matched span in the source text,
	// End exclusive. The replacement is spliced over this span.
	Start int
	End   int
}

// Analyze reports whether the analyze option was set.
func (d *Directive) Analyze() bool {
	return d.Options["analyze"]
}

// scanDirectives finds all non-overlapping directives in text, in order.
//
// This is a tokenizing scan rather than a regular expression so that bodies
// containing backticks cannot trigger backtracking blowups, and so the
// closing fence is always the first one after the body (non-greedy).
func scanDirectives(text string) []Directive {
	var directives []Directive
	pos := 0

	for {
		rel := strings.Index(text[pos:], openTag)
		if rel < 0 {
			return directives
		}
		start := pos + rel
		cur := start + len(openTag)

		// At least one space or tab must separate tag and path token.
		sep := cur
		for cur < len(text) && (text[cur] == ' ' || text[cur] == '\t') {
			cur++
		}
		if cur == sep {
			pos = start + len(openTag)
			continue
		}

		// Path token: everything up to '[', newline, or end of text.
		tokenStart := cur
		for cur < len(text) && text[cur] != '[' && text[cur] != '\n' {
			cur++
		}
		token := strings.TrimSpace(text[tokenStart:cur])
		if token == "" || cur == len(text) {
			pos = start + len(openTag)
			continue
		}

		// Optional bracketed option list.
		var optsRaw string
		if text[cur] == '[' {
			end := strings.IndexByte(text[cur:], ']')
			if end < 0 {
				pos = start + len(openTag)
				continue
			}
			optsRaw = text[cur+1 : cur+end]
			cur += end + 1
			for cur < len(text) && (text[cur] == ' ' || text[cur] == '\t') {
				cur++
			}
		}

		// The directive header ends at a newline.
		if cur == len(text) || text[cur] != '\n' {
			pos = start + len(openTag)
			continue
		}
		cur++

		// Body runs to the first closing fence.
		bodyEnd := strings.Index(text[cur:], closeTag)
		if bodyEnd < 0 {
			pos = start + len(openTag)
			continue
		}
		body := text[cur : cur+bodyEnd]
		end := cur + bodyEnd + len(closeTag)

		directives = append(directives, Directive{
			PathToken:    token,
			Options:      parseOptions(optsRaw),
			OverrideBody: strings.TrimSpace(body),
			Start:        start,
			End:          end,
		})
		pos = end
	}
}

// parseOptions parses a comma-separated option list. "key=value" compares
// the lower-cased value against "true"; a bare key means true.
func parseOptions(raw string) map[string]bool {
	options := make(map[string]bool)
	if strings.TrimSpace(raw) == "" {
		return options
	}

	for _, part := range strings.Split(raw, ",") {
		if key, value, found := strings.Cut(part, "="); found {
			options[strings.TrimSpace(key)] = strings.ToLower(strings.TrimSpace(value)) == "true"
		} else if key := strings.TrimSpace(part); key != "" {
			options[key] = true
		}
	}
	return options
}
