package documents

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plan.yaml
var defaultPlanYAML []byte

type Section struct {
	Heading string   `yaml:"heading"`
	Lines   []string `yaml:"lines"`
}

// Plan is the fixed content of the paid fitness and nutrition plan.
type Plan struct {
	Title       string    `yaml:"title"`
	DefaultName string    `yaml:"default_name"`
	FileName    string    `yaml:"file_name"`
	Caption     string    `yaml:"caption"`
	Sections    []Section `yaml:"sections"`
}

func DefaultPlan() (Plan, error) {
	return ParsePlan(defaultPlanYAML)
}

func ParsePlan(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	if p.Title == "" || p.FileName == "" {
		return Plan{}, fmt.Errorf("parse plan: title and file_name are required")
	}
	if len(p.Sections) == 0 {
		return Plan{}, fmt.Errorf("parse plan: at least one section is required")
	}
	return p, nil
}

// TitleFor interpolates the recipient name, falling back to the default name.
func (p Plan) TitleFor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = p.DefaultName
	}
	return fmt.Sprintf(p.Title, name)
}

func (s Section) Text() string {
	return strings.Join(append([]string{s.Heading}, s.Lines...), "\n")
}
