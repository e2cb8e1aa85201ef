// Package docstring extracts CLI help text from function doc comments.
// A doc comment's first non-empty line becomes the command summary; later
// lines that start with a parameter's name become that parameter's help.
package docstring

import "strings"

// Parse scans doc and returns its summary line plus a per-parameter help map.
// params lists the declared parameter names of the documented function.
//
// The summary is the first non-empty line, verbatim. For each parameter, the
// first later line whose content starts with the parameter name on a word
// boundary supplies its help text; separator punctuation between the name and
// the description (colons, dashes, whitespace) is stripped. Parameters with
// no matching line are simply absent from the map.
func Parse(doc string, params []string) (string, map[string]string) {
	help := make(map[string]string)
	if doc == "" {
		return "", help
	}

	lines := strings.Split(doc, "\n")
	summary := ""
	rest := lines
	for i, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			summary = t
			rest = lines[i+1:]
			break
		}
	}

	for _, l := range rest {
		// List markers are punctuation, not content.
		content := strings.TrimLeft(strings.TrimSpace(l), "-* \t")
		if content == "" {
			continue
		}
		for _, p := range params {
			if _, ok := help[p]; ok {
				continue // only the first matching line counts
			}
			if !wordMatch(content, p) {
				continue
			}
			help[p] = strings.Trim(content[len(p):], " \t:-")
			break
		}
	}
	return summary, help
}

// wordMatch reports whether s starts with name followed by a word boundary,
// so that "user" never claims a line documenting "user_id".
func wordMatch(s, name string) bool {
	if !strings.HasPrefix(s, name) {
		return false
	}
	if len(s) == len(name) {
		return true
	}
	c := s[len(name)]
	return !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}
