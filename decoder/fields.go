package decoder

import (
	"bytes"
	"encoding/json"

	"github.com/mohae/deepcopy"
)

// Fields is an insertion ordered, read-only set of typed field values keyed by
// field code.
type Fields struct {
	keys   []string
	values map[string]any
}

func newFields() *Fields {
	return &Fields{values: map[string]any{}}
}

func (f *Fields) set(code string, value any) {
	if _, ok := f.values[code]; !ok {
		f.keys = append(f.keys, code)
	}
	f.values[code] = value
}

func (f Fields) Get(code string) (any, bool) {
	v, ok := f.values[code]
	return v, ok
}

func (f Fields) Has(code string) bool {
	_, ok := f.values[code]
	return ok
}

// Keys returns the field codes in the order they appeared on the wire.
func (f Fields) Keys() []string {
	return append([]string(nil), f.keys...)
}

func (f Fields) Len() int {
	return len(f.keys)
}

// Map returns a deep copy of the values.
func (f Fields) Map() map[string]any {
	if f.values == nil {
		return map[string]any{}
	}
	return deepcopy.Copy(f.values).(map[string]any)
}

func (f Fields) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
