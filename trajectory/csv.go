package trajectory

import (
	"encoding/csv"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/lbt-cnrs/biospring/bioerr"
)

// sampleRecord is one CSV row. Fields are tagged for gocsv; columns whose
// governing interaction is disabled are left zero rather than omitted,
// since gocsv marshals a fixed column set per struct.
type sampleRecord struct {
	Step                int     `csv:"Step"`
	FrameRateHz         float64 `csv:"FrameRate(Hz)"`
	KineticEnergy       float64 `csv:"KineticEnergy(kJ/mol)"`
	SpringEnergy        float64 `csv:"SpringEnergy(kJ/mol)"`
	StericEnergy        float64 `csv:"StericEnergy(kJ/mol)"`
	ElectrostaticEnergy float64 `csv:"ElectrostaticEnergy(kJ/mol)"`
	ImpalaEnergy        float64 `csv:"ImpalaEnergy(kJ/mol)"`
	InsertionAngle      float64 `csv:"InsertionAngle(deg)"`
	InsertionDepth      float64 `csv:"InsertionDepth(A)"`
}

// CSVWriter samples the per-step scalar energies into a tab-separated CSV
// file, one row per frame, writing the header once on the first row.
type CSVWriter struct {
	path      string
	frequency int

	file          *os.File
	headerWritten bool
}

// NewCSVWriter builds a CSV sampling writer targeting path, emitting a row
// every frequency steps.
func NewCSVWriter(path string, frequency int) *CSVWriter {
	return &CSVWriter{path: path, frequency: frequency}
}

// Frequency implements Writer.
func (w *CSVWriter) Frequency() int { return w.frequency }

// Open implements Writer.
func (w *CSVWriter) Open() error {
	f, err := os.Create(w.path)
	if err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "opening CSV sampling file %q", w.path)
	}
	w.file = f
	return nil
}

// Close implements Writer.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// WriteStep implements Writer.
func (w *CSVWriter) WriteStep(snap Snapshot) error {
	record := sampleRecord{
		Step:        snap.Step,
		FrameRateHz: snap.FrameRate,
	}
	if snap.SpringEnabled {
		record.SpringEnergy = snap.SpringEnergy
	}
	if snap.StericEnabled {
		record.StericEnergy = snap.StericEnergy
	}
	if snap.ElectrostaticEnabled {
		record.ElectrostaticEnergy = snap.ElectrostaticEnergy
	}
	if snap.ImpalaEnabled {
		record.ImpalaEnergy = snap.ImpalaEnergy
	}
	if snap.InsertionVectorEnabled {
		record.InsertionAngle = snap.InsertionAngle
		record.InsertionDepth = snap.InsertionDepth
	}
	record.KineticEnergy = snap.KineticEnergy

	records := []sampleRecord{record}
	out := csv.NewWriter(w.file)
	out.Comma = '\t'
	tabbed := gocsv.NewSafeCSVWriter(out)

	var err error
	if !w.headerWritten {
		err = gocsv.MarshalCSV(records, tabbed)
		w.headerWritten = true
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(records, tabbed)
	}
	if err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "writing CSV sample row")
	}
	return nil
}
