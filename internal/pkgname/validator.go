package pkgname

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed rules.yaml
var rulesYAML []byte

// Severity classifies a rule violation.
type Severity string

const (
	// SeverityError marks a name that is invalid for any package.
	SeverityError Severity = "error"
	// SeverityWarning marks a name that old packages may keep but new ones may not use.
	SeverityWarning Severity = "warning"
)

// Issue is a single rule violation.
type Issue struct {
	Rule     string
	Severity Severity
	Message  string
	Detail   string // schema-level explanation, for debug output
}

// Result contains the outcome of validating one name.
type Result struct {
	Name                string
	ValidForNewPackages bool
	ValidForOldPackages bool
	Errors              []Issue
	Warnings            []Issue
}

// Messages returns every error followed by every warning, as display strings.
func (r *Result) Messages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, i := range r.Errors {
		out = append(out, i.Message)
	}
	for _, i := range r.Warnings {
		out = append(out, i.Message)
	}
	return out
}

type ruleSpec struct {
	ID       string         `yaml:"id"`
	Severity Severity       `yaml:"severity"`
	Message  string         `yaml:"message"`
	Schema   map[string]any `yaml:"schema"`
}

type rule struct {
	ruleSpec
	schema *jsonschema.Schema
}

var (
	compiledRules []rule
	compileOnce   sync.Once
	compileErr    error
	printer       = message.NewPrinter(language.English)
)

// getRules parses rules.yaml and compiles every rule schema once.
func getRules() ([]rule, error) {
	compileOnce.Do(func() {
		compiledRules, compileErr = compileRules(rulesYAML)
	})
	return compiledRules, compileErr
}

func compileRules(data []byte) ([]rule, error) {
	var doc struct {
		Rules []ruleSpec `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	c := jsonschema.NewCompiler()
	rules := make([]rule, 0, len(doc.Rules))
	for _, spec := range doc.Rules {
		if spec.Severity != SeverityError && spec.Severity != SeverityWarning {
			return nil, fmt.Errorf("rule %s: unknown severity %q", spec.ID, spec.Severity)
		}

		// Round-trip through JSON so the compiler sees JSON-native types.
		raw, err := json.Marshal(spec.Schema)
		if err != nil {
			return nil, fmt.Errorf("rule %s: converting schema to JSON: %w", spec.ID, err)
		}
		schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("rule %s: unmarshaling schema JSON: %w", spec.ID, err)
		}

		loc := "pkgname-" + spec.ID + ".json"
		if err := c.AddResource(loc, schemaDoc); err != nil {
			return nil, fmt.Errorf("rule %s: adding schema resource: %w", spec.ID, err)
		}
		sch, err := c.Compile(loc)
		if err != nil {
			return nil, fmt.Errorf("rule %s: compiling schema: %w", spec.ID, err)
		}
		rules = append(rules, rule{ruleSpec: spec, schema: sch})
	}
	return rules, nil
}

// Validate checks name against every rule. The error return is reserved for
// rule compilation failures; violations are reported in the Result.
func Validate(name string) (*Result, error) {
	rules, err := getRules()
	if err != nil {
		return nil, fmt.Errorf("loading name rules: %w", err)
	}
	return evaluate(rules, name)
}

func evaluate(rules []rule, name string) (*Result, error) {
	res := &Result{Name: name}
	for _, r := range rules {
		err := r.schema.Validate(name)
		if err == nil {
			continue
		}
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("rule %s: unexpected validation error: %w", r.ID, err)
		}

		issue := Issue{
			Rule:     r.ID,
			Severity: r.Severity,
			Message:  strings.ReplaceAll(r.Message, "{{name}}", name),
			Detail:   leafDetail(ve),
		}
		if r.Severity == SeverityError {
			res.Errors = append(res.Errors, issue)
		} else {
			res.Warnings = append(res.Warnings, issue)
		}
	}

	res.ValidForOldPackages = len(res.Errors) == 0
	res.ValidForNewPackages = len(res.Errors) == 0 && len(res.Warnings) == 0
	return res, nil
}

// leafDetail returns the localized message of the first leaf in the error tree.
func leafDetail(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.ErrorKind == nil {
		return ve.Error()
	}
	return ve.ErrorKind.LocalizedString(printer)
}
