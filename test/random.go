package test

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"github.com/onsi/ginkgo/v2"
)

var (
	Faker  = faker.NewWithSeed(Source)
	Rand   = rand.New(Source)
	Source = rand.NewSource(ginkgo.GinkgoRandomSeed())
)

// RandomUnitID returns a BM unit identifier such as T_ABCDE042-3.
func RandomUnitID() string {
	return fmt.Sprintf("T_%s%s-%d", strings.ToUpper(Faker.Lorem().Word()), Faker.Numerify("###"), Faker.IntBetween(1, 9))
}

// RandomSettlementDate returns a UTC midnight in the past few years.
func RandomSettlementDate() time.Time {
	t := Faker.Time().TimeBetween(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatTimestamp renders a time in the colon separated wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006:01:02:15:04:05") + ":GMT"
}
