package ingest

import (
	"strings"
	"time"

	"github.com/fatih/structs"

	"github.com/gridflow/bmra/errors"
)

// Summary accounts for every message of one file. Each message is counted in
// exactly one outcome besides Seen.
type Summary struct {
	Name        string        `structs:"name"`
	Seen        int           `structs:"seen"`
	Inserted    int           `structs:"inserted"`
	Replaced    int           `structs:"replaced"`
	Duplicate   int           `structs:"duplicate"`
	Skipped     int           `structs:"skipped"`
	Unprocessed int           `structs:"unprocessed"`
	Failed      int           `structs:"failed"`
	NewUnits    int           `structs:"newUnits"`
	Started     time.Time     `structs:"started,omitnested"`
	Duration    time.Duration `structs:"duration"`

	// Failures holds at most the configured number of failed messages.
	Failures []Failure `structs:"-"`
}

type Failure struct {
	Raw string
	Err error
}

func (f Failure) Class() errors.Class {
	return errors.ClassOf(f.Err)
}

func (s *Summary) Balanced() bool {
	return s.Seen == s.Inserted+s.Replaced+s.Duplicate+s.Skipped+s.Unprocessed+s.Failed
}

// Field is a named summary value, in declaration order.
type Field struct {
	Name  string
	Value any
}

func (s *Summary) Fields() []Field {
	var fields []Field
	for _, f := range structs.Fields(s) {
		name, _, _ := strings.Cut(f.Tag("structs"), ",")
		fields = append(fields, Field{Name: name, Value: f.Value()})
	}
	return fields
}

// LogFields returns the summary as zap key value pairs.
func (s *Summary) LogFields() []any {
	var kv []any
	for _, f := range s.Fields() {
		kv = append(kv, f.Name, f.Value)
	}
	return kv
}

// Total adds up the counts of several summaries.
func Total(summaries []*Summary) *Summary {
	total := &Summary{Name: "total"}
	for _, s := range summaries {
		if s == nil {
			continue
		}
		if total.Started.IsZero() || s.Started.Before(total.Started) {
			total.Started = s.Started
		}
		total.Seen += s.Seen
		total.Inserted += s.Inserted
		total.Replaced += s.Replaced
		total.Duplicate += s.Duplicate
		total.Skipped += s.Skipped
		total.Unprocessed += s.Unprocessed
		total.Failed += s.Failed
		total.NewUnits += s.NewUnits
		total.Duration += s.Duration
	}
	return total
}
