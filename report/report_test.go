package report_test

import (
	"fmt"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tealeg/xlsx/v3"

	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/ingest"
	"github.com/gridflow/bmra/report"
)

var _ = Describe("Report", func() {
	var summaries []*ingest.Summary
	var createdTime time.Time

	BeforeEach(func() {
		createdTime = time.Date(2017, 4, 22, 6, 0, 0, 0, time.UTC)
		summaries = []*ingest.Summary{
			{
				Name:     "2017-04-21.txt",
				Seen:     4,
				Inserted: 2,
				Skipped:  1,
				Failed:   1,
				Started:  createdTime.Add(-time.Hour),
				Duration: 90 * time.Second,
				Failures: []ingest.Failure{{
					Raw: "2017:04:21:00:40:00:GMT: subject=BMRA.BM.T_DRAXX-1.FPN, message={SD=2017:04:21:00:00:00:GMT,SP=two,NP=0}",
					Err: fmt.Errorf("%w: SP=two", errors.InvalidValue),
				}},
			},
			nil,
			{Name: "2017-04-22.txt", Seen: 1, Unprocessed: 1},
		}
	})

	It("has a summary and a failures sheet", func() {
		f, err := report.NewReport(summaries, createdTime).Generate()
		Expect(err).ToNot(HaveOccurred())
		Expect(f.Sheets).To(HaveLen(2))
		Expect(f.Sheets[summarySheetIdx].Name).To(Equal(report.SheetNameSummary))
		Expect(f.Sheets[failuresSheetIdx].Name).To(Equal(report.SheetNameFailures))
	})

	It("writes a row per summary", func() {
		f, err := report.NewReport(summaries, createdTime).Generate()
		Expect(err).ToNot(HaveOccurred())

		m, err := f.ToSlice()
		Expect(err).ToNot(HaveOccurred())
		sheet := m[summarySheetIdx]
		Expect(sheet[0][1]).To(Equal("2017-04-22T06:00:00Z"))
		Expect(sheet[headerRowIdx][0]).To(Equal("name"))
		Expect(sheet[headerRowIdx][1]).To(Equal("seen"))
		Expect(sheet[firstSummaryRowIdx][0]).To(Equal("2017-04-21.txt"))
		Expect(sheet[firstSummaryRowIdx][1]).To(Equal("4"))
		Expect(sheet[firstSummaryRowIdx][9]).To(Equal("2017-04-22T05:00:00Z"))
		Expect(sheet[firstSummaryRowIdx][10]).To(Equal("1m30s"))
		Expect(sheet[firstSummaryRowIdx+1][0]).To(Equal("2017-04-22.txt"))
	})

	It("writes a row per failure", func() {
		f, err := report.NewReport(summaries, createdTime).Generate()
		Expect(err).ToNot(HaveOccurred())

		m, err := f.ToSlice()
		Expect(err).ToNot(HaveOccurred())
		sheet := m[failuresSheetIdx]
		Expect(sheet).To(HaveLen(2))
		Expect(sheet[1][0]).To(Equal("2017-04-21.txt"))
		Expect(sheet[1][1]).To(Equal("message"))
		Expect(sheet[1][2]).To(ContainSubstring("SP=two"))
		Expect(sheet[1][3]).To(ContainSubstring("BMRA.BM.T_DRAXX-1.FPN"))
	})

	It("saves the workbook", func() {
		path := filepath.Join(GinkgoT().TempDir(), "report.xlsx")
		Expect(report.NewReport(summaries, createdTime).Save(path)).To(Succeed())

		f, err := xlsx.OpenFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(f.Sheet).To(HaveKey(report.SheetNameFailures))
	})
})

const (
	// summarySheetIdx is the 0-based index of the sheet in the xlsx.
	summarySheetIdx = 0
	// failuresSheetIdx is the 0-based index of the sheet in the xlsx.
	failuresSheetIdx = 1
	// headerRowIdx is the 0-based index of the column names of the summary sheet.
	headerRowIdx = 2
	// firstSummaryRowIdx is the 0-based index of the first summary row.
	firstSummaryRowIdx = 3
)
