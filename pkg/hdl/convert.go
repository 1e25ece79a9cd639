package hdl

import (
	"errors"
	"fmt"
	"maps"
)

// TypePolicy decides what happens when a type expression cannot be flattened.
type TypePolicy int

const (
	// TypePolicyDegrade substitutes an empty type and keeps the parameter.
	TypePolicyDegrade TypePolicy = iota
	// TypePolicyStrict fails the whole entity.
	TypePolicyStrict
)

// DegradeFunc is told about each parameter whose type was dropped under
// [TypePolicyDegrade].
type DegradeFunc func(entity, param string, err error)

// ConvertOptions configures [Convert].
type ConvertOptions struct {
	Policy    TypePolicy
	OnDegrade DegradeFunc
}

// Convert turns a parsed entity into a Component: types are flattened and
// canonicalized, directions normalized. Generics are always mode "in".
//
// Under TypePolicyStrict an unsupported type expression is returned wrapped
// with the entity and parameter name; errors.As recovers the
// *UnsupportedTypeExpressionError.
func Convert(ent Entity, opts ConvertOptions) (Component, error) {
	comp := Component{
		Name:     ent.Name,
		Ports:    make([]Parameter, 0, len(ent.Ports)),
		Generics: make([]Parameter, 0, len(ent.Generics)),
	}
	if len(ent.Sections) > 0 {
		comp.Sections = maps.Clone(ent.Sections)
	}

	typeString := func(param string, e Expr) (string, error) {
		s, err := Flatten(e)
		if err == nil {
			return Canonicalize(s), nil
		}
		var ute *UnsupportedTypeExpressionError
		if opts.Policy == TypePolicyStrict || !errors.As(err, &ute) {
			return "", fmt.Errorf("entity %s: %s: %w", ent.Name, param, err)
		}
		if opts.OnDegrade != nil {
			opts.OnDegrade(ent.Name, param, err)
		}
		return "", nil
	}

	for _, g := range ent.Generics {
		t, err := typeString(g.Name, g.Type)
		if err != nil {
			return Component{}, err
		}
		comp.Generics = append(comp.Generics, Parameter{
			Name:         g.Name,
			Mode:         ModeIn,
			DataType:     t,
			DefaultValue: g.Default,
		})
	}

	for _, p := range ent.Ports {
		mode, err := NormalizeMode(p.Direction)
		if err != nil {
			return Component{}, fmt.Errorf("entity %s: port %s: %w", ent.Name, p.Name, err)
		}
		t, err := typeString(p.Name, p.Type)
		if err != nil {
			return Component{}, err
		}
		comp.Ports = append(comp.Ports, Parameter{
			Name:         p.Name,
			Mode:         mode,
			DataType:     t,
			DefaultValue: p.Default,
		})
	}

	return comp, nil
}
