// Package records converts decoded messages into typed documents and persists
// them keyed by their natural key.
package records

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gridflow/bmra/decoder"
	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/schema"
)

// ErrUnprocessed is returned for messages which decode correctly but have no
// record family.
var ErrUnprocessed = fmt.Errorf("no record family for message")

type Outcome int

const (
	Inserted Outcome = iota
	Duplicate
	Replaced
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Duplicate:
		return "duplicate"
	case Replaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Policy decides what happens when a record with the same natural key exists.
type Policy int

const (
	// FirstWriteWins keeps the stored record and reports a duplicate.
	FirstWriteWins Policy = iota
	// LastWriteWins replaces the stored record.
	LastWriteWins
)

type Record interface {
	Collection() string
	NaturalKey() bson.D
	Policy() Policy
}

// document is implemented by every typed document of this package.
type document interface {
	NaturalKey() bson.D
}

// family describes how messages of one or more subtypes become records.
// levelCode is the datapoint field holding the level of a profile, if any.
type family struct {
	collection  string
	policy      Policy
	required    []string
	levelCode   string
	prototype   document
	newDocument func(env Envelope, values map[string]any, levels []LevelPoint) (document, error)
}

type record struct {
	document
	family *family
}

func (r record) Collection() string {
	return r.family.collection
}

func (r record) Policy() Policy {
	return r.family.policy
}

// MarshalBSON stores the typed document, not the wrapper.
func (r record) MarshalBSON() ([]byte, error) {
	return bson.Marshal(r.document)
}

// Document returns the typed document of a record built by FromMessage.
func Document(r Record) any {
	if rec, ok := r.(record); ok {
		return rec.document
	}
	return r
}

var (
	physicalNotifications = &family{
		collection: "physical_notifications",
		required:   []string{"SD", "SP"},
		prototype:  PhysicalNotification{},
		newDocument: func(env Envelope, values map[string]any, levels []LevelPoint) (document, error) {
			return build(PhysicalNotification{Envelope: env, Levels: levels}, values)
		},
	}
	bidOfferAcceptances = &family{
		collection: "bid_offer_acceptances",
		required:   []string{"NK", "TA"},
		levelCode:  "VA",
		prototype:  BidOfferAcceptance{},
		newDocument: func(env Envelope, values map[string]any, levels []LevelPoint) (document, error) {
			return build(BidOfferAcceptance{Envelope: env, Levels: levels}, values)
		},
	}
	bidOffers = &family{
		collection: "bid_offer_data",
		required:   []string{"SD", "SP", "NN", "OP", "BP"},
		levelCode:  "VB",
		prototype:  BidOffer{},
		newDocument: func(env Envelope, values map[string]any, levels []LevelPoint) (document, error) {
			return build(BidOffer{Envelope: env, Levels: levels}, values)
		},
	}
	acceptanceVolumes = &family{
		collection: "acceptance_volumes",
		required:   []string{"SD", "SP", "NK", "NN"},
		prototype:  AcceptanceVolume{},
		newDocument: func(env Envelope, values map[string]any, _ []LevelPoint) (document, error) {
			return build(AcceptanceVolume{Envelope: env}, values)
		},
	}
	systemPrices = &family{
		collection: "system_prices",
		required:   []string{"SD", "SP", "PB", "PS"},
		prototype:  SystemPrice{},
		newDocument: func(env Envelope, values map[string]any, _ []LevelPoint) (document, error) {
			return build(SystemPrice{Envelope: env}, values)
		},
	}
	netBalancingAdjustments = &family{
		collection: "net_balancing_adjustments",
		policy:     LastWriteWins,
		required:   []string{"SD", "SP"},
		prototype:  NetBalancingAdjustment{},
		newDocument: func(env Envelope, values map[string]any, _ []LevelPoint) (document, error) {
			return build(NetBalancingAdjustment{Envelope: env}, values)
		},
	}
	marketIndex = &family{
		collection: "market_index",
		required:   []string{"SD", "SP", "MI"},
		prototype:  MarketIndex{},
		newDocument: func(env Envelope, values map[string]any, _ []LevelPoint) (document, error) {
			return build(MarketIndex{Envelope: env}, values)
		},
	}
	totalBidOffer = &family{
		collection: "total_bid_offer",
		required:   []string{"SD", "SP", "OT", "BT"},
		prototype:  TotalBidOffer{},
		newDocument: func(env Envelope, values map[string]any, _ []LevelPoint) (document, error) {
			return build(TotalBidOffer{Envelope: env}, values)
		},
	}
	fuelGeneration = &family{
		collection: "fuel_generation",
		required:   []string{"TS", "FT", "FG"},
		prototype:  FuelGeneration{},
		newDocument: func(env Envelope, values map[string]any, _ []LevelPoint) (document, error) {
			return build(FuelGeneration{Envelope: env}, values)
		},
	}
	systemWarnings = &family{
		collection: "system_warnings",
		required:   []string{"TP", "SW"},
		prototype:  SystemWarning{},
		newDocument: func(env Envelope, values map[string]any, _ []LevelPoint) (document, error) {
			return build(SystemWarning{Envelope: env}, values)
		},
	}
)

var families = map[schema.Key]*family{
	{Type: schema.BM, Subtype: "FPN"}:          withLevel(physicalNotifications, "VP"),
	{Type: schema.BM, Subtype: "QPN"}:          withLevel(physicalNotifications, "VP"),
	{Type: schema.BM, Subtype: "MEL"}:          withLevel(physicalNotifications, "VE"),
	{Type: schema.BM, Subtype: "MIL"}:          withLevel(physicalNotifications, "VF"),
	{Type: schema.BM, Subtype: "BOALF"}:        bidOfferAcceptances,
	{Type: schema.BM, Subtype: "BOD"}:          bidOffers,
	{Type: schema.BP, Subtype: "BOAV"}:         acceptanceVolumes,
	{Type: schema.System, Subtype: "DISEBSP"}:  systemPrices,
	{Type: schema.System, Subtype: "NETBSAD"}:  netBalancingAdjustments,
	{Type: schema.System, Subtype: "MID"}:      marketIndex,
	{Type: schema.System, Subtype: "TBOD"}:     totalBidOffer,
	{Type: schema.System, Subtype: "FUELINST"}: fuelGeneration,
	{Type: schema.System, Subtype: "SYSWARN"}:  systemWarnings,
}

var processed = mapset.NewThreadUnsafeSetFromMapKeys(families)

// withLevel returns a copy of a profile family reading levels from code.
func withLevel(f *family, code string) *family {
	c := *f
	c.levelCode = code
	return &c
}

// IsProcessed reports whether messages of the given shape are turned into records.
func IsProcessed(key schema.Key) bool {
	return processed.Contains(key)
}

// Collections returns the name of every collection records are written to.
func Collections() []string {
	names := mapset.NewThreadUnsafeSet[string]()
	for _, f := range families {
		names.Add(f.collection)
	}
	sorted := names.ToSlice()
	slices.Sort(sorted)
	return sorted
}

// FromMessage builds the record for a decoded message. Messages without a
// record family return ErrUnprocessed.
func FromMessage(msg *decoder.Message) (Record, error) {
	f, ok := families[msg.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnprocessed, msg.Key())
	}

	var missing []string
	for _, code := range f.required {
		if !msg.Fields.Has(code) {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s lacks %v", errors.MissingField, msg.Key(), missing)
	}

	env := Envelope{
		UnitId:       msg.UnitID,
		Type:         string(msg.Type),
		Subtype:      msg.Subtype,
		ReceivedTime: msg.ReceivedTime,
	}

	var levels []LevelPoint
	if f.levelCode != "" {
		var err error
		if levels, err = levelPoints(msg.Datapoints, f.levelCode); err != nil {
			return nil, fmt.Errorf("%w: %s datapoints: %w", errors.InvalidValue, msg.Key(), err)
		}
	}

	doc, err := f.newDocument(env, msg.Fields.Map(), levels)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.InvalidValue, msg.Key(), err)
	}
	return record{document: doc, family: f}, nil
}

func levelPoints(points []decoder.Fields, levelCode string) ([]LevelPoint, error) {
	levels := make([]LevelPoint, 0, len(points))
	for _, point := range points {
		values := point.Map()
		if v, ok := values[levelCode]; ok {
			values["V"] = v
			delete(values, levelCode)
		}
		level := LevelPoint{}
		if err := decodeValues(values, &level); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func build[T document](doc T, values map[string]any) (document, error) {
	if err := decodeValues(values, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeValues(values map[string]any, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  result,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}
