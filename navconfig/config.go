// Package navconfig loads route trees from YAML route tables.
//
// A table lists nodes in match order. A node is a stateful shell when it has
// branches, a shell when it names a shell builder, and a leaf route
// otherwise:
//
//	routes:
//	  - path: /
//	    page: home
//	  - path: /family/:fid
//	    name: family
//	    page: family
//	    routes:
//	      - path: person/:pid
//	        page: person
//	  - path: /old
//	    redirectTo: /family/f1
//	  - shell: tabs
//	    branches:
//	      - routes:
//	          - path: /inbox
//	            page: inbox
//
// Page and shell names are resolved to builders through a Registry.
package navconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/navstack/nav"
)

// File is a parsed route table.
type File struct {
	Routes []Node `yaml:"routes" validate:"required,min=1,dive"`
}

// Node is one entry of a route table.
type Node struct {
	Path               string   `yaml:"path,omitempty" validate:"omitempty,template"`
	Name               string   `yaml:"name,omitempty"`
	Page               string   `yaml:"page,omitempty"`
	RedirectTo         string   `yaml:"redirectTo,omitempty" validate:"omitempty,startswith=/"`
	ParentNavigatorKey string   `yaml:"parentNavigatorKey,omitempty"`
	Shell              string   `yaml:"shell,omitempty"`
	NavigatorKey       string   `yaml:"navigatorKey,omitempty"`
	Branches           []Branch `yaml:"branches,omitempty" validate:"omitempty,dive"`
	Routes             []Node   `yaml:"routes,omitempty" validate:"omitempty,dive"`
}

// Branch is one branch of a stateful shell node.
type Branch struct {
	NavigatorKey    string `yaml:"navigatorKey,omitempty"`
	InitialLocation string `yaml:"initialLocation,omitempty" validate:"omitempty,startswith=/"`
	Routes          []Node `yaml:"routes" validate:"required,min=1,dive"`
}

// IsStatefulShell reports whether the node describes a stateful shell.
func (n Node) IsStatefulShell() bool {
	return len(n.Branches) > 0
}

// IsShell reports whether the node describes a plain shell.
func (n Node) IsShell() bool {
	return !n.IsStatefulShell() && n.Shell != ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("template", func(fl validator.FieldLevel) bool {
		_, err := nav.Compile(fl.Field().String())
		return err == nil
	})
	v.RegisterStructValidation(validateNode, Node{})

	return v
}

// validateNode checks the fields allowed for each kind of node.
func validateNode(sl validator.StructLevel) {
	n := sl.Current().Interface().(Node)

	if n.IsStatefulShell() || n.IsShell() {
		if n.Path != "" {
			sl.ReportError(n.Path, "Path", "path", "excluded_for_shell", "")
		}
		if n.Page != "" || n.RedirectTo != "" {
			sl.ReportError(n.Page, "Page", "page", "excluded_for_shell", "")
		}
		if n.IsStatefulShell() && len(n.Routes) > 0 {
			sl.ReportError(n.Routes, "Routes", "routes", "excluded_with_branches", "")
		}
		if n.IsShell() && len(n.Routes) == 0 {
			sl.ReportError(n.Routes, "Routes", "routes", "required_for_shell", "")
		}
		return
	}

	if n.Path == "" {
		sl.ReportError(n.Path, "Path", "path", "required", "")
	}
	if (n.Page == "") == (n.RedirectTo == "") {
		sl.ReportError(n.Page, "Page", "page", "page_xor_redirect", "")
	}
	if n.NavigatorKey != "" {
		sl.ReportError(n.NavigatorKey, "NavigatorKey", "navigatorKey", "excluded_for_route", "")
	}
}

// Parse decodes and validates a route table. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads and validates a route table from r.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("navconfig: empty route table")
		}
		return nil, fmt.Errorf("navconfig: decode: %w", err)
	}

	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("navconfig: invalid route table: %w", err)
	}

	return &f, nil
}

// Load reads a route table from a file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("navconfig: %w", err)
	}
	return Parse(data)
}

// Marshal encodes a route table as YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
