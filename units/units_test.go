package units_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/gridflow/bmra/config"
	"github.com/gridflow/bmra/errors"
	dbTest "github.com/gridflow/bmra/store/test"
	"github.com/gridflow/bmra/test"
	"github.com/gridflow/bmra/units"
)

var _ = Describe("Units Registry", func() {
	var registry units.Registry

	newRegistry := func() units.Registry {
		r, err := units.NewRegistry(dbTest.GetTestDatabase(), &config.Config{UnitCacheSize: 16}, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		return r
	}

	BeforeEach(func() {
		registry = newRegistry()
	})

	It("creates a unit on first sight only", func() {
		unitId := test.RandomUnitID()

		created, err := registry.EnsureExists(context.Background(), unitId)
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeTrue())

		created, err = registry.EnsureExists(context.Background(), unitId)
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeFalse())

		unit, err := registry.Get(context.Background(), unitId)
		Expect(err).ToNot(HaveOccurred())
		Expect(unit.Id).To(Equal(unitId))
		Expect(unit.CreatedTime).ToNot(BeZero())
	})

	It("does not create a unit known to the database", func() {
		unitId := test.RandomUnitID()
		Expect(registry.EnsureExists(context.Background(), unitId)).To(BeTrue())

		created, err := newRegistry().EnsureExists(context.Background(), unitId)
		Expect(err).ToNot(HaveOccurred())
		Expect(created).To(BeFalse())
	})

	It("requires a unit id", func() {
		_, err := registry.EnsureExists(context.Background(), "")
		Expect(err).To(HaveOccurred())
	})

	It("returns not found for an unknown unit", func() {
		_, err := registry.Get(context.Background(), test.RandomUnitID()+"-UNKNOWN")
		Expect(err).To(MatchError(errors.NotFound))
	})

	It("rejects an invalid cache size", func() {
		_, err := units.NewRegistry(dbTest.GetTestDatabase(), &config.Config{UnitCacheSize: 0}, zap.NewNop().Sugar())
		Expect(err).To(HaveOccurred())
	})
})
