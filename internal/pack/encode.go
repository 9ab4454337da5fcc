package pack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/radar-rrm/scenario-generator/pkg/models"
)

// Format selects the serialization of a pack
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a format name to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be json or yaml)", s)
	}
}

// EncodeOptions controls Encode
type EncodeOptions struct {
	Format Format
	// Pretty indents JSON output. YAML is always indented.
	Pretty bool
}

// Encode writes p to w as one document
func Encode(w io.Writer, p *models.ScenarioPack, opts EncodeOptions) error {
	switch opts.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		if opts.Pretty {
			data = pretty.Pretty(data)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

// Decode reads a JSON pack document from r
func Decode(r io.Reader) (*models.ScenarioPack, error) {
	var p models.ScenarioPack
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	return &p, nil
}

// DecodeYAML reads a YAML pack document from r
func DecodeYAML(r io.Reader) (*models.ScenarioPack, error) {
	var p models.ScenarioPack
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	return &p, nil
}

// DecodeAny reads a pack in either format, picking JSON when the document
// starts with '{'.
func DecodeAny(data []byte) (*models.ScenarioPack, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode pack: empty document")
	}
	if trimmed[0] == '{' {
		return Decode(bytes.NewReader(trimmed))
	}
	return DecodeYAML(bytes.NewReader(trimmed))
}
