package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSONFormat, false},
		{"j", JSONFormat, false},
		{"yaml", YAMLFormat, false},
		{"yml", YAMLFormat, false},
		{"toml", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadFormat) {
					t.Fatalf("expected ErrBadFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestFromPath(t *testing.T) {
	if f := FromPath("a/b/config.YAML"); f != YAMLFormat {
		t.Errorf("got %s", f)
	}
	if f := FromPath("doc.json"); f != JSONFormat {
		t.Errorf("got %s", f)
	}
	if f := FromPath("noext"); f != JSONFormat {
		t.Errorf("got %s", f)
	}
}
