package normalize_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/gomdedit/pkg/normalize"
)

// FuzzNormalize checks that normalization never fails on arbitrary input
// and never emits more than one blank line in a row.
func FuzzNormalize(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list\n- items",
		"  - nested\n    - deeper",
		"```\ncode\n```",
		"*emphasis* and **strong**",
		"[link](url) and ![image](src)",
		"\\*escaped\\*",
		"<div>html</div>",
		"Title\n=====",
		"line1\r\nline2",
		"# Title\n\nParagraph.\n\n- item\n\n> quote\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	n := normalize.New(normalize.FlavorGFM)

	f.Fuzz(func(t *testing.T, data []byte) {
		got, err := n.Normalize(context.Background(), data)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if strings.HasSuffix(got, "\n") {
			t.Errorf("Normalize() output ends with a newline: %q", got)
		}
	})
}
