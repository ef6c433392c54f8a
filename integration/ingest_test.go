package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gridflow/bmra/ingest"
	"github.com/gridflow/bmra/records"
	"github.com/gridflow/bmra/test"
)

var _ = Describe("Ingest", Ordered, func() {
	var fixture []byte

	BeforeAll(func() {
		var err error
		fixture, err = test.LoadFixture("test/fixtures/2017-04-21.txt")
		Expect(err).ToNot(HaveOccurred())
	})

	It("loads a day of the feed", func() {
		summary, err := processor.Process(context.Background(), "2017-04-21.txt", bytes.NewReader(fixture))
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Seen).To(Equal(10))
		Expect(summary.Inserted).To(Equal(3))
		Expect(summary.Duplicate).To(Equal(1))
		Expect(summary.Replaced).To(Equal(0))
		Expect(summary.Unprocessed).To(Equal(1))
		Expect(summary.Skipped).To(Equal(2))
		Expect(summary.Failed).To(Equal(3))
		Expect(summary.Failures).To(HaveLen(3))
		Expect(summary.NewUnits).To(Equal(2))
		Expect(summary.Balanced()).To(BeTrue())
	})

	It("keeps the first physical notification", func() {
		var notifications []records.PhysicalNotification
		cursor, err := database.Collection("physical_notifications").Find(context.Background(), bson.M{"unitId": "T_DRAXX-1"})
		Expect(err).ToNot(HaveOccurred())
		Expect(cursor.All(context.Background(), &notifications)).To(Succeed())

		Expect(notifications).To(HaveLen(1))
		Expect(notifications[0].Subtype).To(Equal("FPN"))
		Expect(notifications[0].SettlementPeriod).To(Equal(5))
		Expect(notifications[0].Levels).To(HaveLen(2))
		Expect(notifications[0].Levels[0].Level).To(Equal(645.0))
	})

	It("stores the system warning text verbatim", func() {
		var warning records.SystemWarning
		err := database.Collection("system_warnings").FindOne(context.Background(), bson.M{}).Decode(&warning)
		Expect(err).ToNot(HaveOccurred())
		Expect(warning.Warning).To(Equal("NATIONAL GRID NOTIFICATION of excess, low frequency"))
	})

	It("registers the units of the file", func() {
		unit, err := registry.Get(context.Background(), "T_DRAXX-2")
		Expect(err).ToNot(HaveOccurred())
		Expect(unit.Id).To(Equal("T_DRAXX-2"))
		Expect(unit.CreatedTime).ToNot(BeZero())
	})

	It("is idempotent when the same day is loaded again from an archive", func() {
		path := filepath.Join(GinkgoT().TempDir(), "2017-04-21.txt.gz")
		f, err := os.Create(path)
		Expect(err).ToNot(HaveOccurred())
		w := gzip.NewWriter(f)
		_, err = w.Write(fixture)
		Expect(err).ToNot(HaveOccurred())
		Expect(w.Close()).To(Succeed())
		Expect(f.Close()).To(Succeed())

		summaries, err := processor.ProcessFiles(context.Background(), []string{path}, 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(summaries).To(HaveLen(1))

		summary := summaries[0]
		Expect(summary.Name).To(Equal("2017-04-21.txt.gz"))
		Expect(summary.Inserted).To(Equal(0))
		Expect(summary.Duplicate).To(Equal(3))
		Expect(summary.Replaced).To(Equal(1))
		Expect(summary.NewUnits).To(Equal(0))
		Expect(ingest.Total(summaries).Balanced()).To(BeTrue())

		count, err := database.Collection("net_balancing_adjustments").CountDocuments(context.Background(), bson.M{})
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(int64(1)))
	})
})
