package manifest

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

//go:embed schema/starter.schema.json
var schemaBytes []byte

const schemaURL = "starter.schema.json"

var (
	loadSchema = sync.OnceValues(compileSchema)
	printer    = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one failed schema keyword.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/env/0"; empty for the document
	Keyword string // e.g. "required", "pattern"
	Message string
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	return c.Compile(schemaURL)
}

// Validate checks raw starter.yaml bytes against the embedded schema. The
// error return is for YAML or schema failures; schema violations are
// reported in the result.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	// The validator wants JSON-native values (json.Number, map[string]any).
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating: %w", err)
	}
	return &ValidationResult{Issues: leafIssues(ve, nil)}, nil
}

// leafIssues flattens the error tree into its leaves.
func leafIssues(ve *jsonschema.ValidationError, out []ValidationIssue) []ValidationIssue {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			out = leafIssues(c, out)
		}
		return out
	}

	issue := ValidationIssue{Message: ve.Error()}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
		issue.Message = ve.ErrorKind.LocalizedString(printer)
	}
	return append(out, issue)
}
