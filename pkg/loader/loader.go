// Package loader builds the initial checklist tree, either from the built-in
// definition or from a YAML, JSON or outline file.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/checktree/pkg/debug"
	"github.com/vanderheijden86/checktree/pkg/model"
)

// Format identifies a definition file syntax.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatOutline Format = "outline"
)

// DefinitionError reports a problem with a tree definition.
type DefinitionError struct {
	Source string // file name, or "<builtin>"
	Line   int    // 1-based, 0 when unknown
	Msg    string
}

func (e *DefinitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

// definition is the on-disk node shape. Children is a pointer so that an
// explicit empty list ("children: []") still marks a parent.
type definition struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Checked     bool          `json:"checked,omitempty" yaml:"checked,omitempty"`
	Children    *[]definition `json:"children,omitempty" yaml:"children,omitempty"`
}

// document is the object form of a definition file. A bare top-level list is
// accepted as well.
type document struct {
	Title string       `json:"title,omitempty" yaml:"title,omitempty"`
	Items []definition `json:"items" yaml:"items"`
}

// Default returns the built-in checklist.
func Default() model.Tree {
	backend := model.Parent("backend", false,
		model.Leaf("auth", true),
		model.Leaf("billing", false),
		model.Leaf("notifications", false),
	)
	backend.Description = "Server-side services"
	backend.Children[0].Description = "Login, sessions and tokens"
	backend.Children[1].Description = "Invoices and payment providers"
	backend.Children[2].Description = "Email and push delivery"

	frontend := model.Parent("frontend", true,
		model.Leaf("dashboard", false),
		model.Leaf("settings", false),
	)
	frontend.Description = "Web client"
	frontend.Children[0].Description = "Landing view after login"
	frontend.Children[1].Description = "Account and preference pages"

	return model.Tree{backend, frontend}
}

// FormatFor picks a format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".txt", ".outline", ".tree":
		return FormatOutline, nil
	default:
		return "", fmt.Errorf("unsupported definition file %q (want .yaml, .yml, .json, .txt or .outline)", path)
	}
}

// Load reads and validates a definition file. The title is the one declared
// in the file, or empty when there is none.
func Load(path string) (model.Tree, string, error) {
	defer debug.LogEnterExit("loader.Load " + path)()

	format, err := FormatFor(path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening definition: %w", err)
	}
	defer f.Close()

	return Parse(f, format, filepath.Base(path))
}

// Parse decodes a definition in the given format. source names the input in
// error messages. Outline files carry no title.
func Parse(r io.Reader, format Format, source string) (model.Tree, string, error) {
	var (
		tree  model.Tree
		title string
		err   error
	)
	switch format {
	case FormatYAML:
		tree, title, err = parseYAML(r, source)
	case FormatJSON:
		tree, title, err = parseJSON(r, source)
	case FormatOutline:
		tree, err = parseOutline(r, source)
	default:
		return nil, "", fmt.Errorf("unknown definition format %q", format)
	}
	if err != nil {
		return nil, "", err
	}

	if err := tree.Validate(); err != nil {
		return nil, "", &DefinitionError{Source: source, Msg: err.Error()}
	}
	debug.Log("loaded %d nodes from %s", tree.Count(), source)
	return tree, strings.TrimSpace(title), nil
}

func parseYAML(r io.Reader, source string) (model.Tree, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", source, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, "", &DefinitionError{Source: source, Msg: err.Error()}
	}
	if len(root.Content) == 0 {
		return model.Tree{}, "", nil
	}

	var doc document
	if root.Content[0].Kind == yaml.SequenceNode {
		err = root.Content[0].Decode(&doc.Items)
	} else {
		err = root.Content[0].Decode(&doc)
	}
	if err != nil {
		return nil, "", &DefinitionError{Source: source, Msg: err.Error()}
	}
	return convert(doc.Items), doc.Title, nil
}

func parseJSON(r io.Reader, source string) (model.Tree, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", source, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return model.Tree{}, "", nil
	}

	var doc document
	if data[0] == '[' {
		err = json.Unmarshal(data, &doc.Items)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, "", &DefinitionError{Source: source, Msg: err.Error()}
	}
	return convert(doc.Items), doc.Title, nil
}

func convert(defs []definition) model.Tree {
	tree := make(model.Tree, 0, len(defs))
	for _, d := range defs {
		tree = append(tree, convertNode(d))
	}
	return tree
}

func convertNode(d definition) *model.Node {
	n := &model.Node{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Checked:     d.Checked,
	}
	if d.Children != nil {
		n.Children = make([]*model.Node, 0, len(*d.Children))
		for _, c := range *d.Children {
			n.Children = append(n.Children, convertNode(c))
		}
	}
	return n
}
