package schema

import (
	"fmt"
	"slices"
	"sort"

	"github.com/gridflow/bmra/errors"
)

// AcceptedFields returns the field codes accepted for the message shape.
// The returned slice is a copy.
func AcceptedFields(t MessageType, subtype string) ([]string, error) {
	fields, ok := accepted[Key{t, subtype}]
	if !ok {
		return nil, fmt.Errorf("%w: no schema for %s.%s", errors.SchemaLookup, t, subtype)
	}
	return slices.Clone(fields), nil
}

func IsSubtype(t MessageType, subtype string) bool {
	_, ok := accepted[Key{t, subtype}]
	return ok
}

func Accepts(t MessageType, subtype string, code string) bool {
	return slices.Contains(accepted[Key{t, subtype}], code)
}

// Subtypes returns the known subtypes of a message type in lexical order.
func Subtypes(t MessageType) []string {
	var subtypes []string
	for key := range accepted {
		if key.Type == t {
			subtypes = append(subtypes, key.Subtype)
		}
	}
	sort.Strings(subtypes)
	return subtypes
}

func CasterFor(code string) (Caster, error) {
	caster, ok := casters[code]
	if !ok {
		return Caster{}, fmt.Errorf("%w: no caster registered for field %q", errors.SchemaConfiguration, code)
	}
	return caster, nil
}

func Cast(code string, raw string) (any, error) {
	caster, err := CasterFor(code)
	if err != nil {
		return nil, err
	}
	value, err := caster.Cast(raw)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", code, err)
	}
	return value, nil
}

// Validate checks that every field code used by a message shape has a caster.
func Validate() error {
	for key, fields := range accepted {
		for _, code := range fields {
			if _, err := CasterFor(code); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}
