// Package langdetect guesses the language of a fenced code block body so
// untagged blocks can still carry a language class when rendered.
//
// Detection runs shebangs first, then a table of cheap content probes, and
// finally the go-enry classifier restricted to a short candidate list.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags returned by Detect.
const (
	Go         = "go"
	Python     = "python"
	JavaScript = "javascript"
	JSON       = "json"
	YAML       = "yaml"
	HTML       = "html"
	SQL        = "sql"
	Rust       = "rust"
	Dockerfile = "dockerfile"
	Bash       = "bash"

	// Unknown is returned when nothing matched with confidence.
	Unknown = "text"
)

// probe reports whether a code body looks like one language.
type probe struct {
	lang  string
	match func(body []byte) bool
}

// probes run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only probe table.
var probes = []probe{
	{Go, func(b []byte) bool { return bytes.HasPrefix(trimmed(b), []byte("package ")) }},
	{Python, looksLikePython},
	{HTML, looksLikeHTML},
	{JSON, looksLikeJSON},
	{Dockerfile, looksLikeDockerfile},
	{SQL, looksLikeSQL},
	{Rust, func(b []byte) bool { return containsAny(b, "fn main()", "println!", "let mut ") }},
	{JavaScript, func(b []byte) bool { return containsAny(b, "=>", "const ", "let ", "console.log") }},
	{YAML, looksLikeYAML},
}

// classifierCandidates bounds the go-enry classifier.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns a lowercase fence tag for body, or Unknown.
func Detect(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(body); safe {
		return tag(lang)
	}

	for _, p := range probes {
		if p.match(body) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(body, classifierCandidates); safe && lang != "" {
		return tag(lang)
	}

	return Unknown
}

// Guess is Detect for string bodies. ok is false when the result is Unknown.
func Guess(body string) (lang string, ok bool) {
	lang = Detect([]byte(body))
	return lang, lang != Unknown
}

// Canonical maps a user supplied fence tag such as "golang" or "sh" to
// the tag Detect would produce. Unrecognized tags are returned lowercased.
func Canonical(info string) string {
	info = strings.TrimSpace(info)
	if info == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(info); ok {
		return tag(lang)
	}
	return strings.ToLower(info)
}

func tag(lang string) string {
	if lang == "Shell" {
		return Bash
	}
	return strings.ToLower(lang)
}

func trimmed(b []byte) []byte {
	return bytes.TrimSpace(b)
}

func containsAny(b []byte, needles ...string) bool {
	for _, n := range needles {
		if bytes.Contains(b, []byte(n)) {
			return true
		}
	}
	return false
}

func looksLikePython(b []byte) bool {
	s := string(b)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	// Go uses "import (", Python never does.
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ") {
			return true
		}
	}
	return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
}

func looksLikeHTML(b []byte) bool {
	lower := bytes.ToLower(trimmed(b))
	return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
}

func looksLikeJSON(b []byte) bool {
	t := trimmed(b)
	return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) &&
		bytes.Contains(t, []byte(`"`))
}

func looksLikeDockerfile(b []byte) bool {
	return bytes.HasPrefix(trimmed(b), []byte("FROM ")) ||
		(containsAny(b, "\nFROM ") && containsAny(b, "\nRUN ")) ||
		(containsAny(b, "WORKDIR ") && containsAny(b, "COPY "))
}

func looksLikeSQL(b []byte) bool {
	upper := strings.ToUpper(strings.TrimSpace(string(b)))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// looksLikeYAML needs at least two "key: value" or root list lines that do
// not look like code.
func looksLikeYAML(b []byte) bool {
	count := 0
	for _, line := range bytes.Split(b, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!containsAny(line, "(", "{") && !bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}
