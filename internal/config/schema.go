package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "tunnels.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func tunnelsSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(tunnelsSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("config: cannot load schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("config: cannot compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Parse decodes a YAML document, validates it against the embedded schema
// and checks cross-field constraints.
func Parse(data []byte) (TunnelsConfig, error) {
	var cfg TunnelsConfig

	// The validator works on JSON-typed values, so the YAML tree is
	// normalized through encoding/json first.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("config: cannot parse yaml: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return cfg, fmt.Errorf("config: cannot normalize document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return cfg, fmt.Errorf("config: cannot normalize document: %w", err)
	}

	s, err := tunnelsSchema()
	if err != nil {
		return cfg, err
	}
	if err := s.Validate(normalized); err != nil {
		return cfg, fmt.Errorf("config: invalid document: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
