package records_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gridflow/bmra/decoder"
	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/records"
	"github.com/gridflow/bmra/schema"
)

func decode(raw string) *decoder.Message {
	msg, err := decoder.NewDecoder().Decode(raw)
	Expect(err).ToNot(HaveOccurred())
	return msg
}

var _ = Describe("FromMessage", func() {
	It("builds a physical notification with its levels", func() {
		record, err := records.FromMessage(decode("2017:03:29:00:32:07:GMT: subject=BMRA.BM.T_DRAXX-1.MEL, message={SD=2017:03:29:00:00:00:GMT,SP=5,NP=2,TS=2017:03:29:01:00:00:GMT,VE=645.0,TS=2017:03:29:01:30:00:GMT,VE=650.0}"))
		Expect(err).ToNot(HaveOccurred())
		Expect(record.Collection()).To(Equal("physical_notifications"))
		Expect(record.Policy()).To(Equal(records.FirstWriteWins))

		doc, ok := records.Document(record).(records.PhysicalNotification)
		Expect(ok).To(BeTrue())
		Expect(doc.UnitId).To(Equal("T_DRAXX-1"))
		Expect(doc.Subtype).To(Equal("MEL"))
		Expect(doc.ReceivedTime).To(Equal(time.Date(2017, 3, 29, 0, 32, 7, 0, time.UTC)))
		Expect(doc.SettlementDate).To(Equal(time.Date(2017, 3, 29, 0, 0, 0, 0, time.UTC)))
		Expect(doc.SettlementPeriod).To(Equal(5))
		Expect(doc.Levels).To(Equal([]records.LevelPoint{
			{Time: time.Date(2017, 3, 29, 1, 0, 0, 0, time.UTC), Level: 645.0},
			{Time: time.Date(2017, 3, 29, 1, 30, 0, 0, time.UTC), Level: 650.0},
		}))

		Expect(record.NaturalKey()).To(Equal(bson.D{
			{Key: "unitId", Value: "T_DRAXX-1"},
			{Key: "subtype", Value: "MEL"},
			{Key: "settlementDate", Value: time.Date(2017, 3, 29, 0, 0, 0, 0, time.UTC)},
			{Key: "settlementPeriod", Value: 5},
		}))
	})

	It("leaves absent acceptance flags unset", func() {
		record, err := records.FromMessage(decode("2016:01:21:15:20:00:GMT: subject=BMRA.BM.T_DIDC1.BOALF, message={NK=42,SO=T,TA=2016:01:21:15:19:00:GMT,AD=F,RR=T,NP=1,TS=2016:01:21:15:30:00:GMT,VA=120.0}"))
		Expect(err).ToNot(HaveOccurred())

		doc := records.Document(record).(records.BidOfferAcceptance)
		Expect(doc.AcceptanceNumber).To(Equal(42))
		Expect(doc.SoFlag).To(BeTrue())
		Expect(doc.StorFlag).To(BeNil())
		Expect(doc.RrFlag).To(PointTo(BeTrue()))
		Expect(doc.Levels).To(HaveLen(1))
		Expect(doc.Levels[0].Level).To(Equal(120.0))
		Expect(record.NaturalKey()).To(Equal(bson.D{
			{Key: "unitId", Value: "T_DIDC1"},
			{Key: "acceptanceNumber", Value: 42},
		}))
	})

	It("replaces balancing adjustments", func() {
		record, err := records.FromMessage(decode("2017:04:21:00:05:12:GMT: subject=BMRA.SYSTEM.NETBSAD, message={SD=2017:04:21:00:00:00:GMT,SP=2,A3=1.5,A9=-2.0}"))
		Expect(err).ToNot(HaveOccurred())
		Expect(record.Policy()).To(Equal(records.LastWriteWins))

		doc := records.Document(record).(records.NetBalancingAdjustment)
		Expect(doc.A3).To(PointTo(Equal(1.5)))
		Expect(doc.A9).To(PointTo(Equal(-2.0)))
		Expect(doc.A4).To(BeNil())
	})

	It("keys market index data by provider", func() {
		record, err := records.FromMessage(decode("2017:04:21:00:05:12:GMT: subject=BMRA.SYSTEM.APXMIDP.MID, message={SD=2017:04:21:00:00:00:GMT,SP=2,MI=APXMIDP,M1=41.5,M2=100.0}"))
		Expect(err).ToNot(HaveOccurred())
		Expect(record.NaturalKey()).To(ContainElement(bson.E{Key: "provider", Value: "APXMIDP"}))
	})

	It("keys fuel generation by time and fuel type", func() {
		record, err := records.FromMessage(decode("2017:04:21:00:05:12:GMT: subject=BMRA.SYSTEM.FUELINST, message={TP=2017:04:21:00:05:00:GMT,SD=2017:04:21:00:00:00:GMT,SP=2,TS=2017:04:21:00:05:00:GMT,FT=CCGT,FG=15000}"))
		Expect(err).ToNot(HaveOccurred())
		Expect(record.NaturalKey()).To(Equal(bson.D{
			{Key: "time", Value: time.Date(2017, 4, 21, 0, 5, 0, 0, time.UTC)},
			{Key: "fuelType", Value: "CCGT"},
		}))
	})

	It("reports messages without a record family as unprocessed", func() {
		msg := decode("2017:04:21:00:05:12:GMT: subject=BMRA.BM.T_DRAXX-1.QAS, message={SD=2017:04:21:00:00:00:GMT,SP=2,SV=10.0}")
		Expect(records.IsProcessed(msg.Key())).To(BeFalse())

		_, err := records.FromMessage(msg)
		Expect(err).To(MatchError(records.ErrUnprocessed))
	})

	It("fails when a required field is missing", func() {
		_, err := records.FromMessage(decode("2017:04:21:00:05:12:GMT: subject=BMRA.SYSTEM.TBOD, message={SD=2017:04:21:00:00:00:GMT,SP=2,OT=49472.0}"))
		Expect(err).To(MatchError(errors.MissingField))
		Expect(errors.ClassOf(err)).To(Equal(errors.ClassMessage))
	})

	It("processes the stored families", func() {
		Expect(records.IsProcessed(schema.Key{Type: schema.BM, Subtype: "FPN"})).To(BeTrue())
		Expect(records.IsProcessed(schema.Key{Type: schema.System, Subtype: "FREQ"})).To(BeFalse())
		Expect(records.Collections()).To(ContainElements("physical_notifications", "net_balancing_adjustments", "system_warnings"))
	})
})
