// Package hepmc reads and writes HepMC2 IO_GenEvent ASCII event files.
package hepmc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Dragunija/PPE-Data-Visualization/model"
)

const (
	versionPrefix = "HepMC::Version"
	startListing  = "HepMC::IO_GenEvent-START_EVENT_LISTING"
	endListing    = "HepMC::IO_GenEvent-END_EVENT_LISTING"
)

// ErrFormat is returned for input which is not a valid IO_GenEvent listing.
var ErrFormat = errors.New("hepmc: malformed input")

// Reader reads events one by one from an IO_GenEvent stream.
type Reader struct {
	scanner *bufio.Scanner
	line    string
	lineNo  int
	eof     bool
	no      int

	// Version is the HepMC version from the file header.
	Version string
}

// NewReader reads the file header and positions the reader on the first event.
func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	reader := &Reader{scanner: scanner}

	for reader.Version == "" {
		if !reader.readLine() {
			return nil, reader.errorf("missing %s header", versionPrefix)
		}
		if strings.HasPrefix(reader.line, versionPrefix) {
			fields := strings.Fields(reader.line)
			if len(fields) < 2 {
				return nil, reader.errorf("missing version number")
			}
			reader.Version = fields[1]
		}
	}
	for reader.line != startListing {
		if !reader.readLine() {
			return nil, reader.errorf("missing %s", startListing)
		}
	}
	reader.readLine()
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reader, nil
}

func (r *Reader) readLine() bool {
	if r.eof {
		return false
	}
	for r.scanner.Scan() {
		r.lineNo++
		r.line = strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(r.line) != "" {
			return true
		}
	}
	r.eof = true
	r.line = ""
	return false
}

func (r *Reader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, r.lineNo, fmt.Sprintf(format, args...))
}

func (r *Reader) atEnd() bool {
	return r.eof || r.line == endListing
}

// Next returns the next event of the listing, or io.EOF after the last one.
// Events are numbered from 1 in file order.
func (r *Reader) Next() (*model.Event, error) {
	if r.atEnd() {
		if err := r.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	if !strings.HasPrefix(r.line, "E ") {
		return nil, r.errorf("expected event line, got %q", r.line)
	}

	r.no++
	evt := &model.Event{No: r.no, Particles: []model.Particle{}, Vertices: []model.Vertex{}}
	if err := r.parseEventLine(evt, strings.Fields(r.line)); err != nil {
		return nil, err
	}

	currentVertex := 0
	hasVertex := false
	for r.readLine() {
		if r.line == endListing || strings.HasPrefix(r.line, "E ") {
			break
		}
		fields := strings.Fields(r.line)
		switch fields[0] {
		case "U":
			if len(fields) < 3 {
				return nil, r.errorf("units line needs 2 values")
			}
			evt.Units = [2]string{fields[1], fields[2]}
		case "C":
			values, err := r.parseFloats(fields[1:], 2)
			if err != nil {
				return nil, err
			}
			evt.CrossSection = [2]float64{values[0], values[1]}
		case "N", "H", "F":
		case "V":
			vertex, err := r.parseVertex(fields, evt.Number)
			if err != nil {
				return nil, err
			}
			currentVertex, hasVertex = vertex.Barcode, true
			evt.Vertices = append(evt.Vertices, vertex)
		case "P":
			if !hasVertex {
				return nil, r.errorf("particle before any vertex")
			}
			particle, err := r.parseParticle(fields, evt.Number, currentVertex)
			if err != nil {
				return nil, err
			}
			evt.Particles = append(evt.Particles, particle)
		default:
			return nil, r.errorf("unknown line type %q", fields[0])
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return evt, nil
}

// E evtnum n_mpi scale aqcd aqed proc_id signal_vtx n_vtx beam1 beam2 n_rand [rand...] n_weights [weights...]
func (r *Reader) parseEventLine(evt *model.Event, fields []string) error {
	if len(fields) < 2 {
		return r.errorf("event line needs an event number")
	}
	number, err := strconv.Atoi(fields[1])
	if err != nil {
		return r.errorf("event number %q", fields[1])
	}
	evt.Number = number
	evt.Weights = []float64{}

	if len(fields) > 11 {
		nRandom, randomErr := strconv.Atoi(fields[11])
		if randomErr == nil && nRandom < 0 {
			return r.errorf("negative random state count %d", nRandom)
		}
		weightsAt := 12 + nRandom
		if randomErr == nil && weightsAt < len(fields) {
			nWeights, weightsErr := strconv.Atoi(fields[weightsAt])
			if weightsErr == nil && nWeights < 0 {
				return r.errorf("negative weight count %d", nWeights)
			}
			if weightsErr == nil && weightsAt+1+nWeights <= len(fields) {
				weights, parseErr := r.parseFloats(fields[weightsAt+1:weightsAt+1+nWeights], nWeights)
				if parseErr != nil {
					return parseErr
				}
				evt.Weights = weights
				return nil
			}
		}
	}
	if len(fields) > 2 {
		weight, weightErr := strconv.ParseFloat(fields[len(fields)-1], 64)
		if weightErr == nil {
			evt.Weights = []float64{weight}
		}
	}
	return nil
}

// V barcode id x y z ctau n_orphan n_out n_weights [weights...]
func (r *Reader) parseVertex(fields []string, event int) (model.Vertex, error) {
	if len(fields) < 7 {
		return model.Vertex{}, r.errorf("vertex line needs at least 7 fields, has %d", len(fields))
	}
	barcode, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.Vertex{}, r.errorf("vertex barcode %q", fields[1])
	}
	position, posErr := r.parseFloats(fields[3:7], 4)
	if posErr != nil {
		return model.Vertex{}, posErr
	}
	return model.Vertex{
		Event:    event,
		Barcode:  barcode,
		Position: [4]float64{position[0], position[1], position[2], position[3]},
	}, nil
}

// P barcode pid px py pz E mass status pol_theta pol_phi end_vtx n_flow [flow...]
func (r *Reader) parseParticle(fields []string, event, startVertex int) (model.Particle, error) {
	if len(fields) < 12 {
		return model.Particle{}, r.errorf("particle line needs at least 12 fields, has %d", len(fields))
	}
	ints, intErr := r.parseInts(fields[1], fields[2], fields[8], fields[11])
	if intErr != nil {
		return model.Particle{}, intErr
	}
	momentum, momErr := r.parseFloats(fields[3:7], 4)
	if momErr != nil {
		return model.Particle{}, momErr
	}
	mass, massErr := strconv.ParseFloat(fields[7], 64)
	if massErr != nil {
		return model.Particle{}, r.errorf("particle mass %q", fields[7])
	}
	pid := ints[1]
	return model.Particle{
		Event:       event,
		Barcode:     ints[0],
		PID:         pid,
		Charge:      model.ChargeOf(pid),
		Mass:        mass,
		Momentum:    [4]float64{momentum[0], momentum[1], momentum[2], momentum[3]},
		StartVertex: startVertex,
		EndVertex:   ints[3],
		Status:      ints[2],
	}, nil
}

func (r *Reader) parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, r.errorf("expected %d numbers, got %d", n, len(fields))
	}
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, r.errorf("number %q", fields[i])
		}
		values[i] = value
	}
	return values, nil
}

func (r *Reader) parseInts(fields ...string) ([]int, error) {
	values := make([]int, len(fields))
	for i, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, r.errorf("integer %q", field)
		}
		values[i] = value
	}
	return values, nil
}

// ReadAll reads every event of the stream.
func ReadAll(r io.Reader) ([]*model.Event, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	events := []*model.Event{}
	for {
		evt, nextErr := reader.Next()
		if nextErr == io.EOF {
			return events, nil
		}
		if nextErr != nil {
			return nil, nextErr
		}
		events = append(events, evt)
	}
}

// ReadFile reads every event of the named file and tags them with its base name.
func ReadFile(path string) ([]*model.Event, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer file.Close()

	events, readErr := ReadAll(file)
	if readErr != nil {
		return nil, fmt.Errorf("%s: %w", path, readErr)
	}
	name := baseName(path)
	for _, evt := range events {
		evt.Filename = name
	}
	return events, nil
}
