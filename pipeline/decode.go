package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeParametersLiteral reads a ParametersLiteral in the given format:
// "json", "yaml" (or "yml") or "toml". Unknown fields are rejected.
func DecodeParametersLiteral(r io.Reader, format string) (pl ParametersLiteral, err error) {

	switch strings.ToLower(format) {
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&pl)
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&pl)
	case "toml":
		var meta toml.MetaData
		if meta, err = toml.NewDecoder(r).Decode(&pl); err == nil {
			if undecoded := meta.Undecoded(); len(undecoded) != 0 {
				err = fmt.Errorf("unknown fields %v", undecoded)
			}
		}
	default:
		return ParametersLiteral{}, fmt.Errorf("cannot DecodeParametersLiteral: unknown format %q", format)
	}

	if err != nil {
		return ParametersLiteral{}, fmt.Errorf("cannot DecodeParametersLiteral: %w", err)
	}

	return
}

// EncodeParametersLiteral writes the literal as indented JSON.
func EncodeParametersLiteral(w io.Writer, pl ParametersLiteral) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pl); err != nil {
		return fmt.Errorf("cannot EncodeParametersLiteral: %w", err)
	}
	return nil
}
