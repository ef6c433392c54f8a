package test

import (
	"fmt"
	"strings"
	"time"

	"github.com/gridflow/bmra/test"
)

// RandomFPN returns a raw FPN message for the unit with the given number of
// level points.
func RandomFPN(unitId string, settlementDate time.Time, period int, points int) string {
	received := settlementDate.Add(time.Duration(period) * 30 * time.Minute)
	body := []string{
		"SD=" + test.FormatTimestamp(settlementDate),
		fmt.Sprintf("SP=%d", period),
		fmt.Sprintf("NP=%d", points),
	}
	for i := 0; i < points; i++ {
		body = append(body,
			"TS="+test.FormatTimestamp(received.Add(time.Duration(i)*time.Minute)),
			fmt.Sprintf("VP=%.1f", test.Faker.Float64(1, 0, 1000)),
		)
	}
	return fmt.Sprintf("%s: subject=BMRA.BM.%s.FPN, message={%s}", test.FormatTimestamp(received), unitId, strings.Join(body, ","))
}

// RandomNETBSAD returns a raw NETBSAD message with a random A3 adjustment.
func RandomNETBSAD(settlementDate time.Time, period int) string {
	received := settlementDate.Add(time.Duration(period) * 30 * time.Minute)
	return fmt.Sprintf("%s: subject=BMRA.SYSTEM.NETBSAD, message={SD=%s,SP=%d,A3=%.2f}",
		test.FormatTimestamp(received), test.FormatTimestamp(settlementDate), period, test.Faker.Float64(2, 0, 1000))
}

// RandomQAS returns a raw QAS message. QAS is decoded but not stored.
func RandomQAS(unitId string, settlementDate time.Time, period int) string {
	received := settlementDate.Add(time.Duration(period) * 30 * time.Minute)
	return fmt.Sprintf("%s: subject=BMRA.BM.%s.QAS, message={SD=%s,SP=%d,SV=%.1f}",
		test.FormatTimestamp(received), unitId, test.FormatTimestamp(settlementDate), period, test.Faker.Float64(1, 0, 100))
}
