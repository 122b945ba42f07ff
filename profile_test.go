package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultProfile(t *testing.T) {
	p, err := LoadDefaultProfile()
	if err != nil {
		t.Fatalf("LoadDefaultProfile failed: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Default profile should validate: %v", err)
	}

	registry := NewFactorRegistry()
	impacts, err := registry.ResolveImpacts(p.Answers)
	if err != nil {
		t.Fatalf("Default profile answers should resolve: %v", err)
	}
	if total := Aggregate(impacts); total != 0 {
		t.Errorf("Default profile should be neutral, total ACM %d", total)
	}
	for id, option := range registry.DefaultAnswers() {
		if p.Answers[id] != option {
			t.Errorf("%s: default profile has %q, registry default is %q", id, p.Answers[id], option)
		}
	}
}

func TestProfileSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")

	registry := NewFactorRegistry()
	original := &Profile{Age: 52, Gender: Female, Answers: registry.BestAnswers()}

	if err := SaveProfile(original, path); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Lifespan Forecast profile") {
		t.Error("Saved profile should start with the header comment")
	}

	loaded, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if loaded.Age != 52 || loaded.Gender != Female {
		t.Errorf("Loaded %d/%s, expected 52/female", loaded.Age, loaded.Gender)
	}
	if len(loaded.Answers) != len(original.Answers) {
		t.Fatalf("Loaded %d answers, expected %d", len(loaded.Answers), len(original.Answers))
	}
	for k, v := range original.Answers {
		if loaded.Answers[k] != v {
			t.Errorf("%s: loaded %q, expected %q", k, loaded.Answers[k], v)
		}
	}
}

func TestLoadProfileErrors(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist for a missing file, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("age: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(bad); err == nil {
		t.Error("Expected parse error for malformed YAML")
	}
}

func TestProfileValidate(t *testing.T) {
	answers := map[string]string{}

	tests := []struct {
		name       string
		profile    Profile
		wantFields []string
	}{
		{"valid", Profile{Age: 40, Gender: Male, Answers: answers}, nil},
		{"minimum age", Profile{Age: 1, Gender: Female, Answers: answers}, nil},
		{"maximum age", Profile{Age: 120, Gender: Female, Answers: answers}, nil},
		{"age too high", Profile{Age: 121, Gender: Female, Answers: answers}, []string{"age"}},
		{"negative age", Profile{Age: -3, Gender: Female, Answers: answers}, []string{"age"}},
		{"missing gender", Profile{Age: 40, Answers: answers}, []string{"gender"}},
		{"everything missing", Profile{}, []string{"age", "gender", "answers"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}

			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Expected ValidationErrors, got %T: %v", err, err)
			}
			if len(errs) != len(tc.wantFields) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tc.wantFields), len(errs), errs)
			}
			for i, field := range tc.wantFields {
				if errs[i].Field != field {
					t.Errorf("Error %d field = %q, expected %q", i, errs[i].Field, field)
				}
				if !strings.Contains(errs[i].Message, field) {
					t.Errorf("Message %q should name the field", errs[i].Message)
				}
			}
		})
	}
}

func TestProfileClone(t *testing.T) {
	p := &Profile{Age: 30, Gender: Male, Answers: map[string]string{"tea": "daily"}}
	c := p.Clone()
	c.Answers["tea"] = "never"
	c.Age = 31

	if p.Answers["tea"] != "daily" || p.Age != 30 {
		t.Error("Clone should not share state with the original")
	}
}

func TestParseGender(t *testing.T) {
	for _, s := range []string{"male", "female"} {
		g, err := ParseGender(s)
		if err != nil || string(g) != s {
			t.Errorf("ParseGender(%q) = %q, %v", s, g, err)
		}
	}
	if _, err := ParseGender("Male"); err == nil {
		t.Error("ParseGender should be case sensitive")
	}
	if _, ok := AsValidationError(func() error { _, err := ParseGender(""); return err }()); !ok {
		t.Error("ParseGender should return a ValidationError")
	}
}
