package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gridflow/bmra/errors"
)

type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindDate
	KindDateTime
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Caster converts the raw text of one field into its typed value.
// TruthToken is only meaningful for KindBool: the value equal to it is true,
// everything else is false.
type Caster struct {
	Kind       Kind
	TruthToken string
}

var (
	Int      = Caster{Kind: KindInt}
	Float    = Caster{Kind: KindFloat}
	Date     = Caster{Kind: KindDate}
	DateTime = Caster{Kind: KindDateTime}
	String   = Caster{Kind: KindString}
)

func Bool(truthToken string) Caster {
	return Caster{Kind: KindBool, TruthToken: truthToken}
}

// Cast returns an int, float64, bool, time.Time or string depending on the kind.
func (c Caster) Cast(raw string) (any, error) {
	value := strings.TrimSpace(raw)
	switch c.Kind {
	case KindInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", errors.InvalidValue, raw)
		}
		return i, nil
	case KindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errors.InvalidValue, raw)
		}
		return f, nil
	case KindBool:
		return value == c.TruthToken, nil
	case KindDate:
		parts, err := timeParts(value, 3, 3)
		if err != nil {
			return nil, err
		}
		t, err := newTime(append(parts, 0, 0, 0), raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindDateTime:
		tokens := strings.Split(value, ":")
		// A trailing zone label is dropped. The feed always reports in UTC.
		if _, err := strconv.Atoi(tokens[len(tokens)-1]); err != nil {
			tokens = tokens[:len(tokens)-1]
		}
		if len(tokens) != 6 {
			return nil, fmt.Errorf("%w: %q is not a timestamp", errors.InvalidValue, raw)
		}
		parts, err := timeParts(strings.Join(tokens, ":"), 6, 6)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a timestamp", errors.InvalidValue, raw)
		}
		t, err := newTime(parts, raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindString:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: unsupported caster kind %v", errors.SchemaConfiguration, c.Kind)
	}
}

// ParseTimestamp parses colon delimited date-time components without a zone
// label, as found at the start of every message header.
func ParseTimestamp(value string) (time.Time, error) {
	parts, err := timeParts(strings.TrimRight(strings.TrimSpace(value), ":"), 6, 6)
	if err != nil {
		return time.Time{}, err
	}
	return newTime(parts, value)
}

// newTime builds a UTC time from year, month, day, hour, minute and second.
// Out of range components are rejected rather than normalized.
func newTime(parts []int, raw string) (time.Time, error) {
	t := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.UTC)
	if t.Year() != parts[0] || int(t.Month()) != parts[1] || t.Day() != parts[2] ||
		t.Hour() != parts[3] || t.Minute() != parts[4] || t.Second() != parts[5] {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", errors.InvalidValue, raw)
	}
	return t, nil
}

// timeParts reads between min and max leading integer components of a colon
// delimited value. Components past max are ignored.
func timeParts(value string, min, max int) ([]int, error) {
	tokens := strings.Split(value, ":")
	if len(tokens) < min || value == "" {
		return nil, fmt.Errorf("%w: %q has fewer than %d date components", errors.InvalidValue, value, min)
	}
	if len(tokens) > max {
		tokens = tokens[:max]
	}

	parts := make([]int, 0, len(tokens))
	for _, token := range tokens {
		i, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a date component", errors.InvalidValue, token)
		}
		parts = append(parts, i)
	}
	return parts, nil
}
