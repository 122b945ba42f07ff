package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// validateAge checks if age is within the supported range (1-120)
func validateAge(age int) error {
	if age < 1 || age > 120 {
		return ValidationError{Field: "age", Message: fmt.Sprintf("Age must be between 1 and 120 (got %d)", age)}
	}
	return nil
}

// InteractiveProfileBuilder walks the user through the questionnaire on the console
type InteractiveProfileBuilder struct {
	reader         *bufio.Reader
	out            io.Writer
	registry       *FactorRegistry
	profile        *Profile
	defaultProfile *Profile
}

// NewInteractiveProfileBuilder creates a builder reading from stdin
func NewInteractiveProfileBuilder(registry *FactorRegistry) *InteractiveProfileBuilder {
	return newInteractiveProfileBuilder(registry, os.Stdin, os.Stdout)
}

func newInteractiveProfileBuilder(registry *FactorRegistry, in io.Reader, out io.Writer) *InteractiveProfileBuilder {
	builder := &InteractiveProfileBuilder{
		reader:   bufio.NewReader(in),
		out:      out,
		registry: registry,
		profile:  &Profile{Answers: make(map[string]string)},
	}

	// Defaults come from the embedded default profile
	if p, err := LoadDefaultProfile(); err == nil {
		builder.defaultProfile = p
	}

	return builder
}

// getDefault returns the default answer for a factor
func (b *InteractiveProfileBuilder) getDefault(f *Factor) string {
	if b.defaultProfile != nil {
		if v, ok := b.defaultProfile.Answers[string(f.ID)]; ok {
			if _, valid := f.Option(v); valid {
				return v
			}
		}
	}
	return f.DefaultOptionID
}

func (b *InteractiveProfileBuilder) readLine() string {
	input, _ := b.reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// promptAge asks for the current age with validation
func (b *InteractiveProfileBuilder) promptAge(prompt string, defaultVal int) int {
	for {
		fmt.Fprintf(b.out, "%s [%d]: ", prompt, defaultVal)
		input := b.readLine()
		if input == "" {
			return defaultVal
		}
		val, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(b.out, "  ✗ Invalid number. Please enter a whole number\n")
			continue
		}
		if err := validateAge(val); err != nil {
			fmt.Fprintf(b.out, "  ✗ %s\n", err.Error())
			continue
		}
		return val
	}
}

// promptGender accepts male/female, m/f or 男/女
func (b *InteractiveProfileBuilder) promptGender(prompt string, defaultVal Gender) Gender {
	for {
		fmt.Fprintf(b.out, "%s (male/female) [%s]: ", prompt, defaultVal)
		input := strings.ToLower(b.readLine())
		switch input {
		case "":
			return defaultVal
		case "m", "male", "男", "男性":
			return Male
		case "f", "female", "女", "女性":
			return Female
		}
		fmt.Fprintf(b.out, "  ✗ Please enter male or female\n")
	}
}

// promptOption lists a factor's options and accepts either the number or the option ID
func (b *InteractiveProfileBuilder) promptOption(f *Factor, defaultID string) string {
	fmt.Fprintf(b.out, "  %s / %s\n", f.Name, f.NameEN)
	defaultIdx := 0
	for i, o := range f.Options {
		if o.ID == defaultID {
			defaultIdx = i + 1
		}
		fmt.Fprintf(b.out, "    %d) %-14s %s (%s%%)\n", i+1, o.ID, o.Label, FormatSigned(o.Value))
	}

	for {
		fmt.Fprintf(b.out, "  Choice [%d]: ", defaultIdx)
		input := b.readLine()
		if input == "" {
			return defaultID
		}
		if n, err := strconv.Atoi(input); err == nil {
			if n >= 1 && n <= len(f.Options) {
				return f.Options[n-1].ID
			}
		} else if _, ok := f.Option(input); ok {
			return input
		}
		fmt.Fprintf(b.out, "  ✗ Enter 1-%d or one of %v\n", len(f.Options), f.OptionIDs())
	}
}

// BuildProfile runs the whole questionnaire
func (b *InteractiveProfileBuilder) BuildProfile() *Profile {
	fmt.Fprintln(b.out)
	fmt.Fprintln(b.out, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(b.out, "║                      LIFESPAN QUESTIONNAIRE 寿命问卷                          ║")
	fmt.Fprintln(b.out, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(b.out)
	fmt.Fprintln(b.out, "Press Enter to accept the default shown in brackets.")
	fmt.Fprintln(b.out)

	defaultAge, defaultGender := 30, Male
	if b.defaultProfile != nil {
		defaultAge, defaultGender = b.defaultProfile.Age, b.defaultProfile.Gender
	}

	fmt.Fprintln(b.out, "─── About you ───")
	b.profile.Age = b.promptAge("  Age", defaultAge)
	b.profile.Gender = b.promptGender("  Gender", defaultGender)

	var lastCategory CategoryTag = -1
	for _, f := range b.registry.GetAll() {
		if f.Category != lastCategory {
			fmt.Fprintln(b.out)
			fmt.Fprintf(b.out, "─── %s / %s ───\n", f.Category.Name(), f.Category.EnglishName())
			lastCategory = f.Category
		}
		b.profile.Answers[string(f.ID)] = b.promptOption(f, b.getDefault(f))
	}
	fmt.Fprintln(b.out)

	return b.profile
}

// SaveProfile saves the collected profile to a YAML file
func (b *InteractiveProfileBuilder) SaveProfile(filename string) error {
	return SaveProfile(b.profile, filename)
}
