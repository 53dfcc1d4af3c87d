package parser

import "testing"

func TestNpmParserExtractsDependencies(t *testing.T) {
	content := []byte(`{
  "name": "app",
  "dependencies": {
    "lodash": "4.17.20"
  },
  "devDependencies": {
    "jest": "^29.0.0"
  }
}
`)
	p := NpmParser{}
	got, err := p.Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	assertSpanIntegrity(t, content, got)

	if got[0].Name != "lodash" || got[0].VersionSpec != "4.17.20" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Name != "jest" || got[1].VersionSpec != "^29.0.0" {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestNpmParserSkipsNonRegistrySpecs(t *testing.T) {
	content := []byte(`{
  "dependencies": {
    "local-thing": "file:../local-thing",
    "from-git": "git+https://example.com/repo.git",
    "workspace-thing": "workspace:*",
    "real": "1.2.3"
  }
}
`)
	got, err := NpmParser{}.Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 1 || got[0].Name != "real" {
		t.Fatalf("got %+v, want only \"real\"", got)
	}
}

func TestNpmParserEmptyManifest(t *testing.T) {
	got, err := NpmParser{}.Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

// assertSpanIntegrity checks that every emitted span slices back out to
// exactly VersionSpec.
func assertSpanIntegrity(t *testing.T, content []byte, infos []PackageInfo) {
	t.Helper()
	for _, info := range infos {
		if info.Span.StartByte < 0 || info.Span.EndByte > len(content) || info.Span.StartByte > info.Span.EndByte {
			t.Errorf("%s: span out of bounds %+v", info.Name, info.Span)
			continue
		}
		got := string(content[info.Span.StartByte:info.Span.EndByte])
		if got != info.VersionSpec {
			t.Errorf("%s: span text %q, want %q", info.Name, got, info.VersionSpec)
		}
	}
}
