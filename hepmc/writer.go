package hepmc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Dragunija/PPE-Data-Visualization/model"
)

// Writer writes events as an IO_GenEvent listing. Close must be called to
// terminate the listing.
type Writer struct {
	w      *bufio.Writer
	closed bool
}

// NewWriter writes the listing header to w.
func NewWriter(w io.Writer) (*Writer, error) {
	writer := &Writer{w: bufio.NewWriter(w)}
	_, err := fmt.Fprintf(writer.w, "\n%s 2.06.09\n%s\n", versionPrefix, startListing)
	if err != nil {
		return nil, err
	}
	return writer, nil
}

// Write appends one event. Each particle is written after its production vertex.
func (w *Writer) Write(evt *model.Event) error {
	if w.closed {
		return fmt.Errorf("hepmc: write to closed writer")
	}
	outgoing := map[int][]model.Particle{}
	for _, p := range evt.Particles {
		if _, ok := evt.Vertex(p.StartVertex); !ok {
			return fmt.Errorf("hepmc: particle %d has no production vertex %d", p.Barcode, p.StartVertex)
		}
		outgoing[p.StartVertex] = append(outgoing[p.StartVertex], p)
	}

	fmt.Fprintf(w.w, "E %d -1 -1 -1 -1 0 0 %d 0 0 0 %d", evt.Number, len(evt.Vertices), len(evt.Weights))
	for _, weight := range evt.Weights {
		fmt.Fprintf(w.w, " %s", formatFloat(weight))
	}
	fmt.Fprintln(w.w)
	if evt.Units[0] != "" {
		fmt.Fprintf(w.w, "U %s %s\n", evt.Units[0], evt.Units[1])
	}
	fmt.Fprintf(w.w, "C %s %s\n", formatFloat(evt.CrossSection[0]), formatFloat(evt.CrossSection[1]))

	for _, v := range evt.Vertices {
		pos := v.Position
		fmt.Fprintf(w.w, "V %d 0 %s %s %s %s 0 %d 0\n",
			v.Barcode, formatFloat(pos[0]), formatFloat(pos[1]), formatFloat(pos[2]), formatFloat(pos[3]),
			len(outgoing[v.Barcode]))
		for _, p := range outgoing[v.Barcode] {
			mom := p.Momentum
			fmt.Fprintf(w.w, "P %d %d %s %s %s %s %s %d 0 0 %d 0\n",
				p.Barcode, p.PID,
				formatFloat(mom[0]), formatFloat(mom[1]), formatFloat(mom[2]), formatFloat(mom[3]),
				formatFloat(p.Mass), p.Status, p.EndVertex)
		}
	}
	return w.w.Flush()
}

// Close writes the end of listing marker and flushes.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if _, err := fmt.Fprintln(w.w, endListing); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes a complete listing of events to w.
func WriteAll(w io.Writer, events []*model.Event) error {
	writer, err := NewWriter(w)
	if err != nil {
		return err
	}
	for _, evt := range events {
		if writeErr := writer.Write(evt); writeErr != nil {
			return writeErr
		}
	}
	return writer.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'e', 16, 64)
}
