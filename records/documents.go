package records

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Envelope holds the attributes every record takes from the message header
// and subject rather than from the body.
type Envelope struct {
	UnitId       string    `mapstructure:"-" bson:"unitId,omitempty"`
	Type         string    `mapstructure:"-" bson:"type"`
	Subtype      string    `mapstructure:"-" bson:"subtype"`
	ReceivedTime time.Time `mapstructure:"-" bson:"receivedTime"`
}

// LevelPoint is one point of a level profile. The level code differs per
// subtype (VP, VE, VF, VA, VB) and is normalized to V before decoding.
type LevelPoint struct {
	Time  time.Time `mapstructure:"TS" bson:"time"`
	Level float64   `mapstructure:"V" bson:"level"`
}

// PhysicalNotification is a FPN, QPN, MEL or MIL profile for one unit and
// settlement period.
type PhysicalNotification struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	SettlementDate   time.Time    `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod int          `mapstructure:"SP" bson:"settlementPeriod"`
	Levels           []LevelPoint `mapstructure:"-" bson:"levels"`
}

func (p PhysicalNotification) NaturalKey() bson.D {
	return bson.D{
		{Key: "unitId", Value: p.UnitId},
		{Key: "subtype", Value: p.Subtype},
		{Key: "settlementDate", Value: p.SettlementDate},
		{Key: "settlementPeriod", Value: p.SettlementPeriod},
	}
}

// BidOfferAcceptance is a BOALF instruction. StorFlag and RrFlag are nil when
// the message did not carry them.
type BidOfferAcceptance struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	AcceptanceNumber int          `mapstructure:"NK" bson:"acceptanceNumber"`
	AcceptanceTime   time.Time    `mapstructure:"TA" bson:"acceptanceTime"`
	SoFlag           bool         `mapstructure:"SO" bson:"soFlag"`
	StorFlag         *bool        `mapstructure:"PF" bson:"storFlag,omitempty"`
	DeemedFlag       bool         `mapstructure:"AD" bson:"deemedFlag"`
	RrFlag           *bool        `mapstructure:"RR" bson:"rrFlag,omitempty"`
	Levels           []LevelPoint `mapstructure:"-" bson:"levels"`
}

func (b BidOfferAcceptance) NaturalKey() bson.D {
	return bson.D{
		{Key: "unitId", Value: b.UnitId},
		{Key: "acceptanceNumber", Value: b.AcceptanceNumber},
	}
}

type BidOffer struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	SettlementDate   time.Time    `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod int          `mapstructure:"SP" bson:"settlementPeriod"`
	PairNumber       int          `mapstructure:"NN" bson:"pairNumber"`
	OfferPrice       float64      `mapstructure:"OP" bson:"offerPrice"`
	BidPrice         float64      `mapstructure:"BP" bson:"bidPrice"`
	Levels           []LevelPoint `mapstructure:"-" bson:"levels"`
}

func (b BidOffer) NaturalKey() bson.D {
	return bson.D{
		{Key: "unitId", Value: b.UnitId},
		{Key: "settlementDate", Value: b.SettlementDate},
		{Key: "settlementPeriod", Value: b.SettlementPeriod},
		{Key: "pairNumber", Value: b.PairNumber},
	}
}

type AcceptanceVolume struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	SettlementDate   time.Time `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod int       `mapstructure:"SP" bson:"settlementPeriod"`
	AcceptanceNumber int       `mapstructure:"NK" bson:"acceptanceNumber"`
	PairNumber       int       `mapstructure:"NN" bson:"pairNumber"`
	OfferVolume      float64   `mapstructure:"OV" bson:"offerVolume"`
	BidVolume        float64   `mapstructure:"BV" bson:"bidVolume"`
	ShortAcceptance  bool      `mapstructure:"SA" bson:"shortAcceptance"`
}

func (a AcceptanceVolume) NaturalKey() bson.D {
	return bson.D{
		{Key: "unitId", Value: a.UnitId},
		{Key: "settlementDate", Value: a.SettlementDate},
		{Key: "settlementPeriod", Value: a.SettlementPeriod},
		{Key: "acceptanceNumber", Value: a.AcceptanceNumber},
		{Key: "pairNumber", Value: a.PairNumber},
	}
}

// SystemPrice is a DISEBSP settlement price record.
type SystemPrice struct {
	Envelope                `mapstructure:"-" bson:",inline"`
	SettlementDate          time.Time `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod        int       `mapstructure:"SP" bson:"settlementPeriod"`
	BuyPrice                float64   `mapstructure:"PB" bson:"buyPrice"`
	SellPrice               float64   `mapstructure:"PS" bson:"sellPrice"`
	PriceDerivationCode     *string   `mapstructure:"PD" bson:"priceDerivationCode,omitempty"`
	ReserveScarcityPrice    *float64  `mapstructure:"RSP" bson:"reserveScarcityPrice,omitempty"`
	ReplacementPrice        *float64  `mapstructure:"RP" bson:"replacementPrice,omitempty"`
	ReplacementPriceVolume  *float64  `mapstructure:"RV" bson:"replacementPriceVolume,omitempty"`
	AdjustmentDefaulted     *bool     `mapstructure:"BD" bson:"adjustmentDefaulted,omitempty"`
	NetImbalanceVolume      *float64  `mapstructure:"NI" bson:"netImbalanceVolume,omitempty"`
	SellPriceAdjustment     *float64  `mapstructure:"AO" bson:"sellPriceAdjustment,omitempty"`
	BuyPriceAdjustment      *float64  `mapstructure:"AB" bson:"buyPriceAdjustment,omitempty"`
	TotalSystemAdjustmentT1 *float64  `mapstructure:"T1" bson:"totalSystemAdjustmentT1,omitempty"`
	TotalSystemAdjustmentT2 *float64  `mapstructure:"T2" bson:"totalSystemAdjustmentT2,omitempty"`
	TotalTaggedAcceptances  *float64  `mapstructure:"PP" bson:"totalTaggedAcceptances,omitempty"`
	TotalTaggedCost         *float64  `mapstructure:"PC" bson:"totalTaggedCost,omitempty"`
}

func (s SystemPrice) NaturalKey() bson.D {
	return settlementKey(s.SettlementDate, s.SettlementPeriod)
}

// NetBalancingAdjustment is a NETBSAD record. Later publications for the same
// period replace earlier ones.
type NetBalancingAdjustment struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	SettlementDate   time.Time `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod int       `mapstructure:"SP" bson:"settlementPeriod"`
	A3               *float64  `mapstructure:"A3" bson:"a3,omitempty"`
	A4               *float64  `mapstructure:"A4" bson:"a4,omitempty"`
	A7               *float64  `mapstructure:"A7" bson:"a7,omitempty"`
	A8               *float64  `mapstructure:"A8" bson:"a8,omitempty"`
	A9               *float64  `mapstructure:"A9" bson:"a9,omitempty"`
	A10              *float64  `mapstructure:"A10" bson:"a10,omitempty"`
	A11              *float64  `mapstructure:"A11" bson:"a11,omitempty"`
	A12              *float64  `mapstructure:"A12" bson:"a12,omitempty"`
}

func (n NetBalancingAdjustment) NaturalKey() bson.D {
	return settlementKey(n.SettlementDate, n.SettlementPeriod)
}

type MarketIndex struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	SettlementDate   time.Time `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod int       `mapstructure:"SP" bson:"settlementPeriod"`
	Provider         string    `mapstructure:"MI" bson:"provider"`
	Price            *float64  `mapstructure:"M1" bson:"price,omitempty"`
	Volume           *float64  `mapstructure:"M2" bson:"volume,omitempty"`
}

func (m MarketIndex) NaturalKey() bson.D {
	return append(settlementKey(m.SettlementDate, m.SettlementPeriod), bson.E{Key: "provider", Value: m.Provider})
}

type TotalBidOffer struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	SettlementDate   time.Time `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod int       `mapstructure:"SP" bson:"settlementPeriod"`
	TotalOffer       float64   `mapstructure:"OT" bson:"totalOffer"`
	TotalBid         float64   `mapstructure:"BT" bson:"totalBid"`
}

func (t TotalBidOffer) NaturalKey() bson.D {
	return settlementKey(t.SettlementDate, t.SettlementPeriod)
}

// FuelGeneration is an instantaneous FUELINST reading for one fuel type.
type FuelGeneration struct {
	Envelope         `mapstructure:"-" bson:",inline"`
	PublishedTime    time.Time `mapstructure:"TP" bson:"publishedTime"`
	SettlementDate   time.Time `mapstructure:"SD" bson:"settlementDate"`
	SettlementPeriod int       `mapstructure:"SP" bson:"settlementPeriod"`
	Time             time.Time `mapstructure:"TS" bson:"time"`
	FuelType         string    `mapstructure:"FT" bson:"fuelType"`
	Generation       int       `mapstructure:"FG" bson:"generation"`
}

func (f FuelGeneration) NaturalKey() bson.D {
	return bson.D{
		{Key: "time", Value: f.Time},
		{Key: "fuelType", Value: f.FuelType},
	}
}

type SystemWarning struct {
	Envelope      `mapstructure:"-" bson:",inline"`
	PublishedTime time.Time `mapstructure:"TP" bson:"publishedTime"`
	Warning       string    `mapstructure:"SW" bson:"warning"`
}

func (s SystemWarning) NaturalKey() bson.D {
	return bson.D{
		{Key: "publishedTime", Value: s.PublishedTime},
		{Key: "warning", Value: s.Warning},
	}
}

func settlementKey(date time.Time, period int) bson.D {
	return bson.D{
		{Key: "settlementDate", Value: date},
		{Key: "settlementPeriod", Value: period},
	}
}
