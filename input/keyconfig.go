package input

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// unbind is the action value that removes a binding
const unbind = "none"

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Each section holds action = "keys" or action = ["keys", "description"]
// Returns error on unknown sections, unknown action names, invalid key names or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := NewKeyTable()
	for name, sectionData := range raw {
		def, ok := findSection(name)
		if !ok {
			return nil, fmt.Errorf("unknown keymap section [%s]", name)
		}
		sectionMap, ok := sectionData.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section [%s]: expected table, got %T", name, sectionData)
		}
		if err := parseSection(kt, def.section, def.prefix, sectionMap); err != nil {
			return nil, err
		}
	}
	return kt, nil
}

// LoadKeyConfigFile reads a keymap file, a missing file yields an empty override table
func LoadKeyConfigFile(path string) (*KeyTable, error) {
	if path == "" {
		return NewKeyTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewKeyTable(), nil
		}
		return nil, fmt.Errorf("read keymap %s: %w", path, err)
	}
	kt, err := LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kt, nil
}

func findSection(name string) (sectionDef, bool) {
	for _, d := range sectionDefs {
		if string(d.section) == name {
			return d, true
		}
	}
	return sectionDefs[0], false
}

// parseSection parses one TOML section of action name → key bindings
func parseSection(kt *KeyTable, section Section, prefix string, data map[string]any) error {
	for actionName, val := range data {
		keys, desc, err := bindingValue(val)
		if err != nil {
			return fmt.Errorf("[%s] %s: %w", section, actionName, err)
		}

		name, a, err := resolveAction(actionName, prefix)
		if err != nil {
			return fmt.Errorf("[%s] %w", section, err)
		}

		b := Binding{
			Action:      name,
			Section:     section,
			Intent:      a.intent,
			Description: a.label,
			Show:        section == SectionDefault,
			override:    true,
		}
		if desc != "" {
			b.Description = desc
		}
		if strings.EqualFold(strings.TrimSpace(keys), unbind) {
			b.Intent = Intent{}
		} else {
			b.Keys, err = parseKeyList(keys)
			if err != nil {
				return fmt.Errorf("[%s] %s: %w", section, actionName, err)
			}
		}
		kt.bindings[name] = b
	}
	kt.reindex()
	return nil
}

// bindingValue accepts "keys" or ["keys", "description"]
func bindingValue(val any) (keys, desc string, err error) {
	switch v := val.(type) {
	case string:
		return v, "", nil
	case []any:
		if len(v) == 0 || len(v) > 2 {
			return "", "", fmt.Errorf("expected [keys, description], got %d items", len(v))
		}
		keys, ok := v[0].(string)
		if !ok {
			return "", "", fmt.Errorf("keys must be a string, got %T", v[0])
		}
		if len(v) == 2 {
			if desc, ok = v[1].(string); !ok {
				return "", "", fmt.Errorf("description must be a string, got %T", v[1])
			}
		}
		return keys, desc, nil
	default:
		return "", "", fmt.Errorf("value must be string or array, got %T", val)
	}
}

// resolveAction converts an action name to its canonical form and action
// Inside prefixed sections the short form ("up_5" in [moving_drawables]) is accepted
func resolveAction(name, prefix string) (string, action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == unbind {
		return "", action{}, fmt.Errorf("%q is not an action name", name)
	}
	if a, ok := lookupAction(name); ok {
		return name, a, nil
	}
	if prefix != "" {
		if a, ok := lookupAction(prefix + name); ok {
			return prefix + name, a, nil
		}
	}
	return "", action{}, fmt.Errorf("unknown action: %q", name)
}

// MergeKeyTable returns a new KeyTable with base bindings replaced by override bindings
// An override bound to "none" removes the action
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	for name, b := range override.bindings {
		if b.Intent.Type == IntentNone {
			delete(result.bindings, name)
			continue
		}
		if prev, ok := result.bindings[name]; ok {
			b.Show = prev.Show
		}
		b.Keys = append([]KeySpec(nil), b.Keys...)
		b.override = true
		result.bindings[name] = b
	}
	result.reindex()
	return result
}
