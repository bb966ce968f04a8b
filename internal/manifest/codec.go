package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl"
	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a manifest syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// BaseName is the manifest file name without extension.
const BaseName = "depot"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// codec converts between a Project and one concrete syntax.
type codec interface {
	decode(data []byte, p *Project) error
	encode(p *Project) ([]byte, error)
}

var codecs = map[Format]codec{
	FormatYAML: yamlCodec{},
	FormatJSON: jsonCodec{},
	FormatTOML: tomlCodec{},
	FormatHCL:  hclCodec{},
}

// candidates lists manifest file names in lookup order.
var candidates = []string{
	BaseName + ".yaml",
	BaseName + ".yml",
	BaseName + ".json",
	BaseName + ".toml",
	BaseName + ".hcl",
}

// ParseFormat parses a format name, defaulting to YAML.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml", "":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	case FormatHCL:
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unknown manifest format: %q (must be yaml, json, toml, or hcl)", s)
	}
}

// FormatOf returns the format implied by a manifest path's extension.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("manifest %s has no extension", path)
	}
	return ParseFormat(ext)
}

// FileName returns the manifest file name for a format.
func FileName(f Format) string {
	return BaseName + "." + string(f)
}

// Parse decodes and validates manifest content in the given format.
func Parse(data []byte, f Format) (*Project, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("unsupported manifest format %q", f)
	}
	var p Project
	if err := c.decode(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s manifest: %w", f, err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal validates and encodes a project in the given format.
func Marshal(p *Project, f Format) ([]byte, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("unsupported manifest format %q", f)
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	data, err := c.encode(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s manifest: %w", f, err)
	}
	return data, nil
}

type yamlCodec struct{}

func (yamlCodec) decode(data []byte, p *Project) error { return yaml.Unmarshal(data, p) }
func (yamlCodec) encode(p *Project) ([]byte, error)    { return yaml.Marshal(p) }

type jsonCodec struct{}

func (jsonCodec) decode(data []byte, p *Project) error { return json.Unmarshal(data, p) }

func (jsonCodec) encode(p *Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type tomlCodec struct{}

func (tomlCodec) decode(data []byte, p *Project) error { return toml.Unmarshal(data, p) }

func (tomlCodec) encode(p *Project) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).Order(toml.OrderPreserve)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type hclCodec struct{}

func (hclCodec) decode(data []byte, p *Project) error { return hcl.Unmarshal(data, p) }
func (hclCodec) encode(p *Project) ([]byte, error)    { return encodeHCL(p) }
