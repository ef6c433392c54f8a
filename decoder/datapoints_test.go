package decoder_test

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gridflow/bmra/decoder"
	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/schema"
	"github.com/gridflow/bmra/test"
)

var _ = Describe("ParseDatapoints", func() {
	It("returns an empty list for a zero count", func() {
		points, err := decoder.ParseDatapoints("", 0, schema.BM, "FPN")
		Expect(err).ToNot(HaveOccurred())
		Expect(points).ToNot(BeNil())
		Expect(points).To(BeEmpty())
	})

	It("partitions the tokens positionally", func() {
		count := test.Faker.IntBetween(1, 20)
		tokens := make([]string, 0, count*2)
		for i := 0; i < count; i++ {
			tokens = append(tokens, fmt.Sprintf("TS=2017:03:29:%02d:00:00:GMT", i), fmt.Sprintf("VP=%d.5", i))
		}

		points, err := decoder.ParseDatapoints(strings.Join(tokens, ","), count, schema.BM, "FPN")
		Expect(err).ToNot(HaveOccurred())
		Expect(points).To(HaveLen(count))
		for i, point := range points {
			Expect(point.Keys()).To(Equal([]string{"TS", "VP"}))
			v, _ := point.Get("VP")
			Expect(v).To(Equal(float64(i) + 0.5))
		}
	})

	DescribeTable("rejects a token count that is not a multiple of the count",
		func(body string, count int) {
			_, err := decoder.ParseDatapoints(body, count, schema.BM, "FPN")
			Expect(err).To(MatchError(errors.MalformedRepeatedGroup))
		},
		Entry("one short", "TS=2017:03:29:01:00:00:GMT,VP=1.0,TS=2017:03:29:01:30:00:GMT", 2),
		Entry("one extra", "TS=2017:03:29:01:00:00:GMT,VP=1.0,VP=2.0", 2),
		Entry("no tokens", "", 1),
		Entry("negative count", "TS=2017:03:29:01:00:00:GMT,VP=1.0", -1),
	)

	It("rejects groups with different fields", func() {
		_, err := decoder.ParseDatapoints("TS=2017:03:29:01:00:00:GMT,VP=1.0,VP=2.0,TS=2017:03:29:01:30:00:GMT", 2, schema.BM, "FPN")
		Expect(err).ToNot(HaveOccurred())

		_, err = decoder.ParseDatapoints("TS=2017:03:29:01:00:00:GMT,VP=1.0,SD=2017:03:29:00:00:00:GMT,VP=2.0", 2, schema.BM, "FPN")
		Expect(err).To(MatchError(errors.MalformedRepeatedGroup))
	})

	It("rejects a repeated field within a group", func() {
		_, err := decoder.ParseDatapoints("TS=2017:03:29:01:00:00:GMT,TS=2017:03:29:01:30:00:GMT", 1, schema.BM, "FPN")
		Expect(err).To(MatchError(errors.MalformedRepeatedGroup))
	})

	It("rejects a token without a value", func() {
		_, err := decoder.ParseDatapoints("TS=2017:03:29:01:00:00:GMT,VP", 1, schema.BM, "FPN")
		Expect(err).To(MatchError(errors.MalformedRepeatedGroup))
	})

	It("rejects unknown fields", func() {
		_, err := decoder.ParseDatapoints("TS=2017:03:29:01:00:00:GMT,VB=1.0", 1, schema.BM, "FPN")
		Expect(err).To(MatchError(errors.UnknownField))
	})
})
