// Package eraconfig reads era config files: the external list of era records
// that extends the built-in eras without a code change.
//
// The format is YAML (JSON is accepted as YAML):
//
//	eras:
//	  - {value: 1, name: Meiji, abbr: M, since: 1868-01-01}
//	  - {value: 5, name: Reiwa, abbr: R, since: 2019-05-01}
package eraconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// DefaultYAML is the era config written by "wareki init". It reconfirms the
// built-in eras and adds Reiwa.
//
//go:embed eras.yaml
var DefaultYAML []byte

// record is one era as written in the file. Dates stay strings so that
// errors can name the offending text.
type record struct {
	Value *int   `yaml:"value"`
	Name  string `yaml:"name"`
	Abbr  string `yaml:"abbr"`
	Since string `yaml:"since"`
}

// Eras is a pointer so that a document without the key is told apart from
// an empty list.
type file struct {
	Eras *[]record `yaml:"eras"`
}

// Load reads and parses the era config file at path.
func Load(path string) ([]types.Era, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading era config: %w", err)
	}
	eras, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return eras, nil
}

// Parse decodes era records in file order. A missing eras key, unknown
// keys, missing fields and malformed dates return ErrInvalidEraConfig.
// Ordering and contiguity are checked later, when the era table is built.
func Parse(data []byte) ([]types.Era, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", types.ErrInvalidEraConfig)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidEraConfig, err)
	}
	if f.Eras == nil {
		return nil, fmt.Errorf("%w: eras is required", types.ErrInvalidEraConfig)
	}

	eras := make([]types.Era, 0, len(*f.Eras))
	for i, r := range *f.Eras {
		era, err := r.toEra()
		if err != nil {
			return nil, fmt.Errorf("era #%d: %w", i+1, err)
		}
		eras = append(eras, era)
	}
	return eras, nil
}

func (r record) toEra() (types.Era, error) {
	switch {
	case r.Value == nil:
		return types.Era{}, fmt.Errorf("%w: value is required", types.ErrInvalidEraConfig)
	case r.Name == "":
		return types.Era{}, fmt.Errorf("%w: name is required", types.ErrInvalidEraConfig)
	case r.Abbr == "":
		return types.Era{}, fmt.Errorf("%w: abbr is required", types.ErrInvalidEraConfig)
	case r.Since == "":
		return types.Era{}, fmt.Errorf("%w: since is required", types.ErrInvalidEraConfig)
	}
	since, err := types.ParseDate(r.Since)
	if err != nil {
		return types.Era{}, fmt.Errorf("%w: since %q: %v", types.ErrInvalidEraConfig, r.Since, err)
	}
	return types.Era{Value: *r.Value, Name: r.Name, Abbr: r.Abbr, Since: since}, nil
}

// Marshal encodes eras in the file format.
func Marshal(eras []types.Era) ([]byte, error) {
	recs := make([]record, len(eras))
	for i, e := range eras {
		v := e.Value
		recs[i] = record{Value: &v, Name: e.Name, Abbr: e.Abbr, Since: e.Since.String()}
	}
	f := file{Eras: &recs}
	return yaml.Marshal(&f)
}

// WriteDefaultIfMissing writes DefaultYAML to path unless the file exists.
func WriteDefaultIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat era config: %w", err)
	}
	return os.WriteFile(path, DefaultYAML, 0o644)
}
