package knowledge_test

import (
	"testing"

	"github.com/jonesrussell/formsight/internal/knowledge"
)

func TestNew_ParsesEmbeddedData(t *testing.T) {
	base, err := knowledge.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	types := base.EntityTypes()
	if len(types) == 0 {
		t.Fatal("EntityTypes() returned no entries")
	}

	var foundLLC bool
	for _, et := range types {
		if et.Abbreviation == "LLC" {
			foundLLC = true
			if len(et.Aliases) == 0 {
				t.Error("LLC entity type has no aliases")
			}
		}
	}
	if !foundLLC {
		t.Error("EntityTypes() missing LLC")
	}
}

func TestFormsByState(t *testing.T) {
	base, err := knowledge.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name      string
		code      string
		wantFound bool
	}{
		{name: "known state", code: "DC", wantFound: true},
		{name: "lowercase code", code: "ca", wantFound: true},
		{name: "padded code", code: " NY ", wantFound: true},
		{name: "state without records", code: "WY", wantFound: false},
		{name: "nonsense code", code: "ZZ", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forms, found := base.FormsByState(tt.code)
			if found != tt.wantFound {
				t.Fatalf("FormsByState(%q) found = %v, want %v", tt.code, found, tt.wantFound)
			}
			if found && len(forms) == 0 {
				t.Errorf("FormsByState(%q) returned no forms", tt.code)
			}
		})
	}
}

func TestStates_SortedCodes(t *testing.T) {
	base, err := knowledge.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	codes := base.States()
	if len(codes) < 2 {
		t.Fatalf("States() returned %d codes, want several", len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("States() not sorted: %q before %q", codes[i-1], codes[i])
		}
	}
}
