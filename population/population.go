// SPDX-License-Identifier: MIT

// Package population loads the agent population a consistency run scores.
//
// A population document is YAML:
//
//	agents:
//	  - name: alice
//	    id: 9b2e0f5c-3c1e-4a53-8c55-2d1c1f0d6a10   # optional
//	    beliefs: ["first/sub1", "second/sub3[1,2]"]
//	    plans: ["goal/explore"]
//
// Documents are checked against an embedded JSON schema before they are
// decoded, then materialized into *agent.Agent values.
package population

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/katalvlaran/consistency/agent"
	"github.com/katalvlaran/consistency/filter"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "population.schema.json"

//go:embed population.schema.json
var schemaJSON []byte

var (
	// ErrInvalidDocument indicates a document that fails schema validation.
	ErrInvalidDocument = errors.New("population: invalid document")

	// ErrDuplicateAgent indicates two agents sharing a name.
	ErrDuplicateAgent = errors.New("population: duplicate agent name")
)

// Document is a decoded population file.
type Document struct {
	Agents []AgentSpec `yaml:"agents" json:"agents"`
}

// AgentSpec describes one agent. Literals use the canonical path[args] form.
type AgentSpec struct {
	Name    string   `yaml:"name" json:"name"`
	ID      string   `yaml:"id,omitempty" json:"id,omitempty"`
	Beliefs []string `yaml:"beliefs,omitempty" json:"beliefs,omitempty"`
	Plans   []string `yaml:"plans,omitempty" json:"plans,omitempty"`
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return schema, nil
})

// Load reads and parses the population file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("population: read file: %w", err)
	}

	return Parse(data)
}

// Parse validates YAML population bytes against the schema and decodes them.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("population: parse yaml: %w", err)
	}
	if err := validateAgainstSchema(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("population: decode: %w", err)
	}

	return &doc, nil
}

// validateAgainstSchema round-trips the YAML tree through JSON so the
// validator sees JSON types only.
func validateAgainstSchema(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return err
	}

	return schema.Validate(payload)
}

// Materialize builds one agent per AgentSpec, in document order.
//
// Errors:
//   - ErrDuplicateAgent when two specs share a name.
//   - filter.ErrMalformedLiteral for unparsable literals.
//   - uuid parse errors for malformed ids.
func (d *Document) Materialize() ([]*agent.Agent, error) {
	seen := make(map[string]struct{}, len(d.Agents))
	out := make([]*agent.Agent, 0, len(d.Agents))
	for _, spec := range d.Agents {
		if _, dup := seen[spec.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAgent, spec.Name)
		}
		seen[spec.Name] = struct{}{}

		a, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("population: agent %q: %w", spec.Name, err)
		}
		out = append(out, a)
	}

	return out, nil
}

func (s AgentSpec) build() (*agent.Agent, error) {
	beliefs, err := parseLiterals(s.Beliefs)
	if err != nil {
		return nil, err
	}
	plans, err := parseLiterals(s.Plans)
	if err != nil {
		return nil, err
	}
	opts := []agent.Option{agent.WithBeliefs(beliefs...), agent.WithPlans(plans...)}
	if s.ID != "" {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return nil, err
		}
		opts = append(opts, agent.WithID(id))
	}

	return agent.New(s.Name, opts...)
}

func parseLiterals(in []string) ([]filter.Literal, error) {
	out := make([]filter.Literal, 0, len(in))
	for _, s := range in {
		l, err := filter.ParseLiteral(s)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, nil
}
