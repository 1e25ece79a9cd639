package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
)

// ReadJSON decodes components from r and normalizes them.
//
// ReadJSON returns an INVALID_INPUT error if:
//   - The JSON is malformed or has unknown fields
//   - A component or parameter has no name
//   - A mode is not a recognized direction
//   - A section index lies outside the port list
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]hdl.Component, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var data document
	if err := dec.Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode components")
	}

	comps := make([]hdl.Component, 0, len(data.Components))
	for i, c := range data.Components {
		if c.Name == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "component %d: missing name", i)
		}
		ports, err := normalize(c.Name, c.Ports)
		if err != nil {
			return nil, err
		}
		generics, err := normalize(c.Name, c.Generics)
		if err != nil {
			return nil, err
		}
		for idx := range c.Sections {
			if idx < 0 || idx >= len(ports) {
				return nil, errs.New(errs.ErrCodeInvalidInput,
					"component %s: section at port %d, but it has %d ports", c.Name, idx, len(ports))
			}
		}

		comp := hdl.Component{Name: c.Name, Ports: ports, Generics: generics}
		if len(c.Sections) > 0 {
			comp.Sections = c.Sections
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

// normalize validates names, canonicalizes modes and types.
func normalize(component string, params []hdl.Parameter) ([]hdl.Parameter, error) {
	if len(params) == 0 {
		return nil, nil
	}
	out := make([]hdl.Parameter, len(params))
	for i, p := range params {
		if p.Name == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "component %s: parameter %d: missing name", component, i)
		}
		mode := hdl.ModeIn
		if p.Mode != "" {
			m, err := hdl.NormalizeMode(string(p.Mode))
			if err != nil {
				return nil, fmt.Errorf("component %s: %s: %w", component, p.Name, err)
			}
			mode = m
		}
		out[i] = hdl.Parameter{
			Name:         p.Name,
			Mode:         mode,
			DataType:     hdl.Canonicalize(p.DataType),
			DefaultValue: p.DefaultValue,
		}
	}
	return out, nil
}

// ImportJSON reads the components stored in the file at path.
func ImportJSON(path string) ([]hdl.Component, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	comps, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return comps, nil
}
