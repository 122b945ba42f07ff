package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default-profile.yaml
var defaultProfileYAML string

// Profile is one questionnaire submission
type Profile struct {
	Age     int               `yaml:"age" json:"age" validate:"required,min=1,max=120"`
	Gender  Gender            `yaml:"gender" json:"gender" validate:"required,oneof=male female"`
	Answers map[string]string `yaml:"answers" json:"answers" validate:"required"` // factor ID -> option ID
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their serialized name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks age and gender. Answers are checked against the factor
// table when they are resolved.
func (p *Profile) Validate() error {
	err := profileValidator.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	result := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, ValidationError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return result
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// Clone returns a deep copy so callers can change answers safely
func (p *Profile) Clone() *Profile {
	c := *p
	c.Answers = make(map[string]string, len(p.Answers))
	for k, v := range p.Answers {
		c.Answers[k] = v
	}
	return &c
}

// LoadProfile reads a profile from a YAML file
func LoadProfile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return &p, nil
}

// LoadDefaultProfile returns the embedded profile with every answer at its zero-impact option
func LoadDefaultProfile() (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal([]byte(defaultProfileYAML), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile writes a profile as YAML with a short header
func SaveProfile(p *Profile, filename string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	header := []byte(`# Lifespan Forecast profile
# Generated interactively - feel free to edit manually
#
# age:     current age in years (1-120)
# gender:  male | female
# answers: one option per lifestyle factor; see default-profile.yaml for all
#          factors and the allowed options
#
#   ./lifespanForecast -profile profile.yaml          Console report
#   ./lifespanForecast -profile profile.yaml -html    HTML report
#   ./lifespanForecast -web                           Browser form

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}
