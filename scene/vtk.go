package scene

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/Dragunija/PPE-Data-Visualization/model"
)

var categoryCodes = map[model.Category]int32{
	model.Photon:   0,
	model.Lepton:   1,
	model.Neutrino: 2,
	model.Hadron:   3,
}

// ExportVTK writes the particle lines of s as a legacy binary VTK file of poly
// lines, with the particle category and pid as cell data.
func ExportVTK(w io.Writer, s *Scene) error {
	lines := s.Particles()
	buf, endi, np := new(bytes.Buffer), binary.BigEndian, 0
	for _, l := range lines {
		np += len(l.Points)
	}

	binary.Write(buf, endi, []byte("# vtk DataFile Version 3.0\n"))
	binary.Write(buf, endi, []byte(fmt.Sprintf("Particle lines: %d lines, %d vertices, %s\n", len(lines), np, time.Now().Format("2006-01-02 15:04:05"))))
	binary.Write(buf, endi, []byte("BINARY\n"))
	binary.Write(buf, endi, []byte("DATASET UNSTRUCTURED_GRID\n"))

	binary.Write(buf, endi, []byte(fmt.Sprintf("POINTS %d float\n", np)))
	for _, l := range lines {
		for _, p := range l.Points {
			binary.Write(buf, endi, float32(p.X))
			binary.Write(buf, endi, float32(p.Y))
			binary.Write(buf, endi, float32(p.Z))
		}
	}

	binary.Write(buf, endi, []byte(fmt.Sprintf("\nCELLS %d %d\n", len(lines), np+len(lines))))
	ii := 0
	for _, l := range lines {
		binary.Write(buf, endi, int32(len(l.Points)))
		for i := range l.Points {
			binary.Write(buf, endi, int32(ii+i))
		}
		ii += len(l.Points)
	}

	binary.Write(buf, endi, []byte(fmt.Sprintf("\nCELL_TYPES %d\n", len(lines))))
	for range lines {
		binary.Write(buf, endi, int32(4)) // VTK_POLY_LINE
	}

	binary.Write(buf, endi, []byte(fmt.Sprintf("\nCELL_DATA %d\n", len(lines))))
	binary.Write(buf, endi, []byte("SCALARS category int\nLOOKUP_TABLE default\n"))
	for _, l := range lines {
		binary.Write(buf, endi, categoryCodes[l.Info.Category])
	}
	binary.Write(buf, endi, []byte("\nSCALARS pid int\nLOOKUP_TABLE default\n"))
	for _, l := range lines {
		binary.Write(buf, endi, int32(l.Info.PID))
	}
	binary.Write(buf, endi, []byte("\n"))

	_, err := w.Write(buf.Bytes())
	return err
}
