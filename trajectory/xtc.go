package trajectory

import (
	"os"

	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/vector"
)

// Encoder turns one frame's particle positions into the bytes of a single
// XTC frame. The XTC format's lossy coordinate compression is an external
// concern; callers supply whatever codec they have, and XTCWriter only
// handles the frequency-gated file plumbing around it.
type Encoder interface {
	EncodeFrame(frame int, positions []vector.Vector3) ([]byte, error)
}

// XTCWriter writes one encoded frame per sampled step to a binary
// trajectory file via an injected Encoder.
type XTCWriter struct {
	path      string
	frequency int
	encoder   Encoder

	file         *os.File
	currentFrame int
}

// NewXTCWriter builds an XTC trajectory writer targeting path, delegating
// frame compression to encoder and emitting a frame every frequency steps.
func NewXTCWriter(path string, frequency int, encoder Encoder) *XTCWriter {
	return &XTCWriter{path: path, frequency: frequency, encoder: encoder}
}

// Frequency implements Writer.
func (w *XTCWriter) Frequency() int { return w.frequency }

// Open implements Writer.
func (w *XTCWriter) Open() error {
	f, err := os.Create(w.path)
	if err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "opening XTC trajectory %q", w.path)
	}
	w.file = f
	return nil
}

// Close implements Writer.
func (w *XTCWriter) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// WriteStep implements Writer.
func (w *XTCWriter) WriteStep(snap Snapshot) error {
	positions := make([]vector.Vector3, len(snap.Particles))
	for i, p := range snap.Particles {
		positions[i] = p.Position
	}

	data, err := w.encoder.EncodeFrame(w.currentFrame, positions)
	if err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "encoding XTC frame %d", w.currentFrame)
	}
	if _, err := w.file.Write(data); err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "writing XTC frame %d", w.currentFrame)
	}

	w.currentFrame++
	return nil
}
