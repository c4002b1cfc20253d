package roundtrip_test

import (
	"testing"

	"github.com/yaklabco/gomdedit/pkg/roundtrip"
)

// FuzzRoundTrip checks that the pipeline accepts arbitrary text and that an
// exact report never carries a diff.
func FuzzRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"# Title",
		"- a\n- b",
		"1. one\n2. two",
		"> quote",
		"```go\nx := 1\n```",
		"```\nunterminated",
		"**bold** *it* `code` [l](u)",
		"a < b & c",
		"---\n\ntext",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, md string) {
		report := roundtrip.Check(md)
		if report.Blocks == 0 {
			t.Errorf("Check(%q) classified no blocks", md)
		}
		if report.Exact && report.Diff != nil {
			t.Errorf("Check(%q) is exact but has a diff", md)
		}
	})
}

func BenchmarkCheck(b *testing.B) {
	md := "# Title\n\nSome **bold** text with `code`.\n- one\n- two\n> quote\n```go\nx := 1\n```\n---\nend"

	b.ReportAllocs()
	for range b.N {
		roundtrip.Check(md)
	}
}
