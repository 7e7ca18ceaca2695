package params

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// FromYaml decodes a parameter preset. Decoding starts from Defaults(),
// so a preset only needs to list the values it changes.
func FromYaml(b []byte) (Set, error) {
	s := Defaults()
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, errors.Wrap(err, "decode parameter preset")
	}
	return s, nil
}

// AsYaml encodes the full parameter set as a preset document.
func (s Set) AsYaml() ([]byte, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encode parameter preset")
	}
	return b, nil
}
