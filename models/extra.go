package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

// extraFields holds JSON members of a document which the model does not declare
type extraFields map[string]json.RawMessage

// decodeWithExtra decodes b into known, a pointer to a struct, and returns the
// members of b which none of known's fields map to.
func decodeWithExtra(b []byte, known interface{}) (extraFields, error) {
	if err := json.Unmarshal(b, known); err != nil {
		return nil, err
	}

	all := extraFields{}
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}

	for _, name := range jsonNames(reflect.TypeOf(known).Elem()) {
		delete(all, name)
	}

	if len(all) == 0 {
		return nil, nil
	}

	return all, nil
}

// encodeWithExtra encodes known and adds the extra members which known does not
// already contain
func encodeWithExtra(known interface{}, extra extraFields) ([]byte, error) {
	knownBytes, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}

	if len(extra) == 0 {
		return knownBytes, nil
	}

	all := extraFields{}
	if err := json.Unmarshal(knownBytes, &all); err != nil {
		return nil, err
	}

	for name, value := range extra {
		if _, ok := all[name]; !ok {
			all[name] = value
		}
	}

	return json.Marshal(all)
}

// jsonNames returns the JSON member names of a struct type's exported fields
func jsonNames(t reflect.Type) []string {
	names := []string{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if len(field.PkgPath) > 0 {
			continue
		}

		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "-" {
			continue
		}
		if len(name) == 0 {
			name = field.Name
		}

		names = append(names, name)
	}

	return names
}
