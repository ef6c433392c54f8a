// Package decoder turns raw BMRA messages into typed, schema validated
// messages.
//
// A raw message has a header and a body:
//
//	2017:03:29:00:32:07:GMT: subject=BMRA.BM.T_DRAXX-1.FPN, message={SD=2017:03:29:00:00:00:GMT,SP=5,NP=2,...}
//
// The header is everything before the first comma. The body is the comma
// separated KEY=VALUE list between the first '{' and the last '}'.
package decoder

import (
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/schema"
)

const (
	subjectPrefix = "subject="

	// systemWarningField carries free text which may contain commas. It is
	// always the last field of a message.
	systemWarningField = "SW"
)

var (
	ErrCorrupt     = fmt.Errorf("%w: header is on the deny-list", errors.Corrupt)
	ErrIgnoredType = fmt.Errorf("%w", errors.IgnoredType)
)

// countFields introduce a repeated datapoint group. Everything after them in
// the body belongs to the group.
var countFields = mapset.NewThreadUnsafeSet("NP", "NR")

type Option func(*Decoder)

// WithCorruptHeaders adds header lines to the deny-list of the decoder.
func WithCorruptHeaders(headers ...string) Option {
	return func(d *Decoder) {
		for _, h := range headers {
			d.corrupt.Add(strings.TrimSpace(h))
		}
	}
}

// WithIgnoredTypes adds message type segments which are skipped.
func WithIgnoredTypes(types ...string) Option {
	return func(d *Decoder) {
		d.ignored.Append(types...)
	}
}

// Decoder is safe for concurrent use once constructed.
type Decoder struct {
	corrupt mapset.Set[string]
	ignored mapset.Set[string]
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		corrupt: corruptHeaders.Clone(),
		ignored: ignoredTypes.Clone(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Header is the metadata part of a raw message.
type Header struct {
	Raw          string
	ReceivedTime time.Time
	Subject      string
}

// SplitHeader returns the trimmed header segment of a raw message.
func SplitHeader(raw string) (string, error) {
	header, _, ok := strings.Cut(raw, ",")
	if !ok {
		return "", fmt.Errorf("%w: no header delimiter in %q", errors.MalformedMessage, raw)
	}
	return strings.TrimSpace(header), nil
}

// ParseHeader extracts the receipt time and the dotted subject path.
func ParseHeader(raw string) (*Header, error) {
	header, err := SplitHeader(raw)
	if err != nil {
		return nil, err
	}
	return parseHeader(header, raw)
}

func parseHeader(header string, raw string) (*Header, error) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty header in %q", errors.MalformedMessage, raw)
	}
	received, err := schema.ParseTimestamp(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad receipt time in %q: %w", errors.MalformedMessage, raw, err)
	}

	var subject string
	for _, field := range fields[1:] {
		if s, ok := strings.CutPrefix(field, subjectPrefix); ok {
			subject = s
			break
		}
	}
	if subject == "" {
		return nil, fmt.Errorf("%w: no subject in %q", errors.MalformedSubject, raw)
	}

	return &Header{
		Raw:          header,
		ReceivedTime: received,
		Subject:      subject,
	}, nil
}

// Decode decodes a single raw message. Messages that are intentionally not
// decoded return an error of class skip (ErrCorrupt, ErrIgnoredType).
func (d *Decoder) Decode(raw string) (*Message, error) {
	raw = strings.TrimSpace(raw)

	headerLine, err := SplitHeader(raw)
	if err != nil {
		return nil, err
	}
	if d.corrupt.Contains(headerLine) {
		return nil, ErrCorrupt
	}

	header, err := parseHeader(headerLine, raw)
	if err != nil {
		return nil, err
	}

	msg := &Message{ReceivedTime: header.ReceivedTime}
	if err := d.resolveSubject(msg, header.Subject, raw); err != nil {
		return nil, err
	}

	open := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if open < 0 || end < open {
		return nil, fmt.Errorf("%w: no message body in %q", errors.MalformedMessage, raw)
	}

	if err := d.scanBody(msg, raw[open+1:end], raw); err != nil {
		return nil, err
	}
	return msg, nil
}

func (d *Decoder) resolveSubject(msg *Message, subject string, raw string) error {
	segments := strings.Split(subject, ".")
	if len(segments) < 2 {
		return fmt.Errorf("%w: %q has fewer than 2 segments", errors.MalformedSubject, subject)
	}
	if d.ignored.Contains(segments[1]) {
		return ErrIgnoredType
	}

	t, ok := schema.ParseMessageType(segments[1])
	if !ok {
		return fmt.Errorf("%w: unknown message type %q in %q", errors.UnknownSubtype, segments[1], raw)
	}
	msg.Type = t

	if t.PerUnit() {
		if len(segments) < 4 {
			return fmt.Errorf("%w: %s subject %q needs a unit and a subtype", errors.MalformedSubject, t, subject)
		}
		msg.UnitID = segments[2]
		msg.Subtype = segments[3]
	} else {
		if len(segments) < 3 {
			return fmt.Errorf("%w: %s subject %q has no subtype", errors.MalformedSubject, t, subject)
		}
		switch {
		case schema.IsSubtype(t, segments[2]):
			msg.Subtype = segments[2]
		case len(segments) > 3 && schema.IsSubtype(t, segments[3]):
			msg.UnitID = segments[2]
			msg.Subtype = segments[3]
		default:
			return fmt.Errorf("%w: no known %s subtype in %q", errors.UnknownSubtype, t, subject)
		}
	}

	if !schema.IsSubtype(msg.Type, msg.Subtype) {
		return fmt.Errorf("%w: %s.%s in %q", errors.UnknownSubtype, msg.Type, msg.Subtype, raw)
	}
	return nil
}

func (d *Decoder) scanBody(msg *Message, body string, raw string) error {
	fields := newFields()
	defer func() { msg.Fields = *fields }()

	if strings.TrimSpace(body) == "" {
		return nil
	}

	offset := 0
	for _, token := range strings.Split(body, ",") {
		next := offset + len(token) + 1

		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return fmt.Errorf("%w: token %q is not a key=value pair in %q", errors.MalformedMessage, token, raw)
		}
		key = strings.TrimSpace(key)

		switch {
		case key == systemWarningField && schema.Accepts(msg.Type, msg.Subtype, key):
			v, err := schema.Cast(key, body[offset+strings.IndexByte(token, '=')+1:])
			if err != nil {
				return err
			}
			fields.set(key, v)
			return nil

		case countFields.Contains(key):
			count, err := schema.Cast(key, value)
			if err != nil {
				return fmt.Errorf("%w in %q", err, raw)
			}
			var rest string
			if next < len(body) {
				rest = body[next:]
			}
			points, err := ParseDatapoints(rest, count.(int), msg.Type, msg.Subtype)
			if err != nil {
				return fmt.Errorf("%w: in message %q", err, raw)
			}
			msg.Datapoints = points
			return nil

		case schema.Accepts(msg.Type, msg.Subtype, key):
			v, err := schema.Cast(key, value)
			if err != nil {
				return fmt.Errorf("%w in %q", err, raw)
			}
			fields.set(key, v)

		default:
			return fmt.Errorf("%w: %s is not accepted for %s.%s in message %q", errors.UnknownField, key, msg.Type, msg.Subtype, raw)
		}

		offset = next
	}
	return nil
}
