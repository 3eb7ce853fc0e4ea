package document

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

var (
	schemaOnce       sync.Once
	documentSchema   *gojsonschema.Schema
	fragmentSchema   *gojsonschema.Schema
	backgroundSchema *gojsonschema.Schema
	schemaErr        error
)

func loadSchemas() error {
	schemaOnce.Do(func() {
		documentSchema, schemaErr = compileSchema("schema/document.schema.json")
		if schemaErr != nil {
			return
		}
		fragmentSchema, schemaErr = compileSchema("schema/fragment.schema.json")
		if schemaErr != nil {
			return
		}
		backgroundSchema, schemaErr = compileSchema("schema/background.schema.json")
	})
	return schemaErr
}

func compileSchema(name string) (*gojsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return s, nil
}

// validate returns nil or a single error joining every schema violation
func validate(schema *gojsonschema.Schema, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}
