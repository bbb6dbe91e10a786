package trajectory

import (
	"fmt"
	"os"

	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/topology"
)

// PDBWriter appends one MODEL/ATOM.../ENDMDL block per frame to a PDB
// trajectory file, writing the CONECT records that describe the spring
// topology once, on the first frame only.
type PDBWriter struct {
	path      string
	frequency int

	file         *os.File
	currentFrame int
}

// NewPDBWriter builds a PDB trajectory writer targeting path, emitting a
// frame every frequency steps.
func NewPDBWriter(path string, frequency int) *PDBWriter {
	return &PDBWriter{path: path, frequency: frequency}
}

// Frequency implements Writer.
func (w *PDBWriter) Frequency() int { return w.frequency }

// Open implements Writer.
func (w *PDBWriter) Open() error {
	f, err := os.Create(w.path)
	if err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "opening PDB trajectory %q", w.path)
	}
	w.file = f
	return nil
}

// Close implements Writer.
func (w *PDBWriter) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// WriteStep implements Writer.
func (w *PDBWriter) WriteStep(snap Snapshot) error {
	if _, err := fmt.Fprintf(w.file, "MODEL    %d\n", w.currentFrame); err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "writing PDB model header")
	}

	for _, p := range snap.Particles {
		if _, err := fmt.Fprintln(w.file, atomRecord(p)); err != nil {
			return bioerr.Wrap(bioerr.KindResource, err, "writing PDB atom record")
		}
	}

	if w.currentFrame == 0 {
		for _, s := range snap.Springs {
			if _, err := fmt.Fprintf(w.file, "CONECT%5d%5d\n", s.First+1, s.Second+1); err != nil {
				return bioerr.Wrap(bioerr.KindResource, err, "writing PDB conect record")
			}
		}
	}

	if _, err := fmt.Fprintln(w.file, "ENDMDL"); err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "writing PDB model footer")
	}

	w.currentFrame++
	return nil
}

// atomRecord formats one particle as a fixed-width PDB ATOM line. Particle
// ids are shown 1-based, matching PDB convention.
func atomRecord(p topology.RunTimeParticle) string {
	name := p.Metadata.Name
	if len(name) < 4 {
		name = " " + padRight(name, 3)
	} else {
		name = padRight(name, 4)
	}

	charge := ""
	switch {
	case p.Physical.Charge > 0:
		charge = "+1"
	case p.Physical.Charge < 0:
		charge = "-1"
	}

	return fmt.Sprintf("ATOM  %5d %4s%1s%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s",
		p.ID+1, name, " ", padRight(p.Metadata.ResidueName, 3), p.Metadata.ChainName, p.Metadata.ResidueID, " ",
		p.Position[0], p.Position[1], p.Position[2], p.Physical.Occupancy, p.Physical.TemperatureFactor,
		padRight(p.Metadata.ElementName, 2), charge)
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
