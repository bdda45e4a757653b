package deck

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabulary(t *testing.T) {
	vocab := DefaultVocabulary()

	if len(vocab.Strategies) == 0 {
		t.Fatal("no default strategies")
	}
	if vocab.strategy("Aristocrats") == nil {
		t.Error("Aristocrats strategy missing")
	}
	if vocab.strategy("Nonexistent") != nil {
		t.Error("unknown strategy should return nil")
	}
	if len(vocab.Staples) == 0 {
		t.Error("no default staples")
	}
}

func TestLoadVocabulary_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.toml")

	vocab := DefaultVocabulary()
	vocab.Blacklist = append(vocab.Blacklist, "test card")
	if err := vocab.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary failed: %v", err)
	}

	found := false
	for _, b := range loaded.Blacklist {
		if b == "test card" {
			found = true
			break
		}
	}
	if !found {
		t.Error("saved blacklist entry lost on reload")
	}
	if len(loaded.Strategies) != len(vocab.Strategies) {
		t.Errorf("strategies = %d, want %d", len(loaded.Strategies), len(vocab.Strategies))
	}
}

func TestLoadVocabulary_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.toml")
	partial := []byte("blacklist = [\"only entry\"]\n")
	if err := os.WriteFile(path, partial, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary failed: %v", err)
	}

	if len(loaded.Blacklist) != 1 || loaded.Blacklist[0] != "only entry" {
		t.Errorf("blacklist = %v, want [only entry]", loaded.Blacklist)
	}
	// Unspecified tables keep the defaults.
	if len(loaded.Strategies) == 0 {
		t.Error("partial file wiped default strategies")
	}
}

func TestLoadVocabulary_MissingFile(t *testing.T) {
	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
