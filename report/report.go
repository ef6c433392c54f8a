// Package report renders ingest summaries as an xlsx workbook.
package report

import (
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/gridflow/bmra/ingest"
)

const (
	SheetNameSummary  = "Summary"
	SheetNameFailures = "Failures"
)

type Report struct {
	summaries   []*ingest.Summary
	createdTime time.Time
}

func NewReport(summaries []*ingest.Summary, createdTime time.Time) Report {
	return Report{summaries: summaries, createdTime: createdTime}
}

func (r Report) Generate() (*xlsx.File, error) {
	report := xlsx.NewFile()

	components := []func(report *xlsx.File) error{
		r.addSummarySheet,
		r.addFailuresSheet,
	}
	for _, fn := range components {
		if err := fn(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// Save generates the report and writes it to path.
func (r Report) Save(path string) error {
	report, err := r.Generate()
	if err != nil {
		return err
	}
	return report.Save(path)
}

func (r Report) addSummarySheet(report *xlsx.File) error {
	sh, err := report.AddSheet(SheetNameSummary)
	if err != nil {
		return err
	}

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Report Generated")
	currentRow.AddCell().SetValue(r.createdTime.Format(time.RFC3339))
	sh.AddRow()

	header := sh.AddRow()
	for _, f := range (&ingest.Summary{}).Fields() {
		header.AddCell().SetValue(f.Name)
	}

	for _, s := range r.summaries {
		if s != nil {
			addSummaryRow(sh, s)
		}
	}
	addSummaryRow(sh, ingest.Total(r.summaries))

	return nil
}

func addSummaryRow(sh *xlsx.Sheet, s *ingest.Summary) {
	row := sh.AddRow()
	for _, f := range s.Fields() {
		cell := row.AddCell()
		switch v := f.Value.(type) {
		case time.Time:
			cell.SetValue(v.UTC().Format(time.RFC3339))
		case time.Duration:
			cell.SetValue(v.String())
		default:
			cell.SetValue(v)
		}
	}
}

func (r Report) addFailuresSheet(report *xlsx.File) error {
	sh, err := report.AddSheet(SheetNameFailures)
	if err != nil {
		return err
	}

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("File")
	currentRow.AddCell().SetValue("Class")
	currentRow.AddCell().SetValue("Error")
	currentRow.AddCell().SetValue("Message")

	for _, s := range r.summaries {
		if s == nil {
			continue
		}
		for _, failure := range s.Failures {
			currentRow = sh.AddRow()
			currentRow.AddCell().SetValue(s.Name)
			currentRow.AddCell().SetValue(failure.Class().String())
			currentRow.AddCell().SetValue(failure.Err.Error())
			currentRow.AddCell().SetValue(failure.Raw)
		}
	}

	return nil
}
