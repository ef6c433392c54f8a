package decoder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/schema"
)

// ParseDatapoints splits the tail of a message body following a repeated group
// count field into count groups of equal size. Group boundaries are positional:
// the first len(tokens)/count tokens form the first group, and so on.
func ParseDatapoints(body string, count int, t schema.MessageType, subtype string) ([]Fields, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative group count %d in %q", errors.MalformedRepeatedGroup, count, body)
	}
	if count == 0 {
		return []Fields{}, nil
	}

	var tokens []string
	if body != "" {
		tokens = strings.Split(body, ",")
	}
	if len(tokens) == 0 || len(tokens)%count != 0 {
		return nil, fmt.Errorf("%w: %d tokens cannot form %d groups in %q", errors.MalformedRepeatedGroup, len(tokens), count, body)
	}

	size := len(tokens) / count
	groups := make([]Fields, 0, count)
	for chunk := range slices.Chunk(tokens, size) {
		group, err := parseGroup(chunk, t, subtype, body)
		if err != nil {
			return nil, err
		}
		if len(groups) > 0 && !sameKeys(groups[0], *group) {
			return nil, fmt.Errorf("%w: group %d has fields %v, expected %v in %q", errors.MalformedRepeatedGroup, len(groups)+1, group.Keys(), groups[0].Keys(), body)
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

func parseGroup(tokens []string, t schema.MessageType, subtype string, body string) (*Fields, error) {
	group := newFields()
	for _, token := range tokens {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return nil, fmt.Errorf("%w: token %q is not a key=value pair in %q", errors.MalformedRepeatedGroup, token, body)
		}
		key = strings.TrimSpace(key)
		if !schema.Accepts(t, subtype, key) {
			return nil, fmt.Errorf("%w: %s is not accepted for %s.%s in datapoints %q", errors.UnknownField, key, t, subtype, body)
		}
		if group.Has(key) {
			return nil, fmt.Errorf("%w: field %s repeats within one group in %q", errors.MalformedRepeatedGroup, key, body)
		}
		v, err := schema.Cast(key, value)
		if err != nil {
			return nil, err
		}
		group.set(key, v)
	}
	return group, nil
}

func sameKeys(a, b Fields) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, key := range a.keys {
		if !b.Has(key) {
			return false
		}
	}
	return true
}
