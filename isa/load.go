package isa

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a class mnemonic such as "IS".
func (c *Class) UnmarshalYAML(value *yaml.Node) (err error) {
	var name string
	err = value.Decode(&name)
	if err != nil {
		return
	}
	*c, err = ParseClass(name)
	return
}

// MarshalYAML writes the class mnemonic.
func (c Class) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Load reads a YAML instruction table. Sections missing from the
// document are taken from Default().
func Load(r io.Reader) (table *Table, err error) {
	var doc Table
	err = yaml.NewDecoder(r).Decode(&doc)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return
	}

	table = Default()
	if doc.Opcodes != nil {
		table.Opcodes = upperKeys(doc.Opcodes)
	}
	if doc.Registers != nil {
		table.Registers = upperKeys(doc.Registers)
	}
	if doc.Conditions != nil {
		table.Conditions = upperKeys(doc.Conditions)
	}

	err = table.Validate()
	if err != nil {
		table = nil
	}

	return
}

// LoadFile reads a YAML instruction table from a file.
func LoadFile(path string) (*Table, error) {
	inf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instruction table: %w", err)
	}
	defer inf.Close()

	table, err := Load(inf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", path, err)
	}
	return table, nil
}

// Validate checks that every directive has translator semantics and that
// imperative codes are unique.
func (t *Table) Validate() error {
	if len(t.Opcodes) == 0 {
		return ErrTableEmpty
	}

	seen := map[int]string{}
	for _, name := range slices.Sorted(maps.Keys(t.Opcodes)) {
		op := t.Opcodes[name]
		switch op.Class {
		case CLASS_DIRECTIVE, CLASS_DECLARATIVE:
			class, ok := directives[name]
			if !ok || class != op.Class {
				return ErrDirectiveInvalid(name)
			}
		case CLASS_IMPERATIVE:
			other, ok := seen[op.Code]
			if ok {
				return ErrCodeDuplicate{Name: name, Other: other, Code: op.Code}
			}
			seen[op.Code] = name
		default:
			return ErrClassInvalid(op.Class.String())
		}
	}

	return nil
}

func upperKeys[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[strings.ToUpper(k)] = v
	}
	return out
}
