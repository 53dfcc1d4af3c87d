package parser

import "testing"

func TestPnpmWorkspaceParserFlatCatalog(t *testing.T) {
	content := []byte("catalog:\n  react: 18.2.0\n  lodash: 4.17.20\n")
	got, err := PnpmWorkspaceParser{}.Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	if got[0].Name != "react" || got[0].VersionSpec != "18.2.0" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	assertSpanIntegrity(t, content, got)
}

func TestPnpmWorkspaceParserNamedCatalogs(t *testing.T) {
	content := []byte("catalogs:\n  react18:\n    react: 18.2.0\n")
	got, err := PnpmWorkspaceParser{}.Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 1 || got[0].Name != "react" || got[0].VersionSpec != "18.2.0" {
		t.Fatalf("got %+v", got)
	}
	assertSpanIntegrity(t, content, got)
}

func TestPnpmWorkspaceParserNoCatalog(t *testing.T) {
	content := []byte("packages:\n  - 'packages/*'\n")
	got, err := PnpmWorkspaceParser{}.Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}
