// Package content loads course catalogs from JSON content packs.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/quizdeck/internal/catalog"
)

// CurrentVersion is the pack format version written by Encode.
const CurrentVersion = "v1.0.0"

// supportedMajor is the pack format major version this build reads.
const supportedMajor = "v1"

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://quizdeck/content-pack.json"

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Pack is a versioned set of courses.
type Pack struct {
	Version string           `json:"version"`
	Title   string           `json:"title,omitempty"`
	Courses []catalog.Course `json:"courses"`
}

// SchemaError reports a pack document that does not match the pack schema.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("content pack schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// VersionError reports a pack written for an incompatible format version.
type VersionError struct {
	Version string
}

func (e *VersionError) Error() string {
	if !semver.IsValid(e.Version) {
		return fmt.Sprintf("content pack version %q is not a valid semantic version", e.Version)
	}
	return fmt.Sprintf("content pack version %s is not supported (want %s.x.y)", e.Version, supportedMajor)
}

// Parse validates data against the pack schema and format version and
// decodes it.
func Parse(data []byte) (*Pack, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse content pack: %w", err)
	}

	schema, err := packSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &SchemaError{Err: err}
	}

	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("decode content pack: %w", err)
	}
	if err := CheckVersion(pack.Version); err != nil {
		return nil, err
	}
	return &pack, nil
}

// Load reads and parses the pack at path.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	pack, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pack, nil
}

// LoadCatalog reads the pack at path and builds a validated catalog from it.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	pack, err := Load(path)
	if err != nil {
		return nil, err
	}
	cat, err := pack.Catalog()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Catalog builds a validated catalog from the pack's courses.
func (p *Pack) Catalog() (*catalog.Catalog, error) {
	return catalog.New(p.Courses)
}

// CheckVersion reports whether v is a pack format version this build reads.
func CheckVersion(v string) error {
	if !semver.IsValid(v) || semver.Major(v) != supportedMajor {
		return &VersionError{Version: v}
	}
	return nil
}

// Encode writes courses as an indented pack document at CurrentVersion.
func Encode(title string, courses []catalog.Course) ([]byte, error) {
	pack := Pack{Version: CurrentVersion, Title: title, Courses: courses}
	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode content pack: %w", err)
	}
	return append(data, '\n'), nil
}

// Problems flattens a Parse or Catalog error into one line per problem.
func Problems(err error) []string {
	if err == nil {
		return nil
	}
	var schemaErr *SchemaError
	var verr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && errors.As(schemaErr.Err, &verr) {
		var out []string
		collectLeaves(verr, &out)
		if len(out) > 0 {
			return out
		}
	}
	var lines []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func collectLeaves(verr *jsonschema.ValidationError, out *[]string) {
	if len(verr.Causes) == 0 {
		lines := strings.Split(strings.TrimSpace(verr.Error()), "\n")
		*out = append(*out, strings.TrimPrefix(strings.TrimSpace(lines[len(lines)-1]), "- "))
		return
	}
	for _, c := range verr.Causes {
		collectLeaves(c, out)
	}
}

func packSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add pack schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile pack schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}
