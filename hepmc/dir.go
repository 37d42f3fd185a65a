package hepmc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/errors"
	"github.com/Dragunija/PPE-Data-Visualization/model"
)

var log = conf.NamedLogger("hepmc")

// Extension of event files served by Dir.
const Extension = ".hepmc"

type cachedFile struct {
	modTime time.Time
	size    int64
	events  []*model.Event
}

// Dir serves the event files of one directory. Parsed files are cached until
// they change on disk. Dir is safe for concurrent use.
type Dir struct {
	root string

	mu    sync.Mutex
	files map[string]*cachedFile
}

// NewDir creates event source over directory root.
func NewDir(root string) *Dir {
	return &Dir{root: root, files: map[string]*cachedFile{}}
}

func baseName(path string) string {
	return filepath.Base(path)
}

func (d *Dir) path(filename string) (string, error) {
	if filename == "" || filename != baseName(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid file name %q: %w", filename, errors.ErrNotFound)
	}
	return filepath.Join(d.root, filename), nil
}

func (d *Dir) load(filename string) ([]*model.Event, error) {
	path, pathErr := d.path(filename)
	if pathErr != nil {
		return nil, pathErr
	}
	info, statErr := os.Stat(path)
	if os.IsNotExist(statErr) {
		return nil, fmt.Errorf("file %s: %w", filename, errors.ErrNotFound)
	}
	if statErr != nil {
		return nil, statErr
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if cached, ok := d.files[filename]; ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		return cached.events, nil
	}
	log.Debugf("parsing %s", path)
	events, readErr := ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}
	d.files[filename] = &cachedFile{modTime: info.ModTime(), size: info.Size(), events: events}
	return events, nil
}

// Count returns the number of events in filename.
func (d *Dir) Count(filename string) (int, error) {
	events, err := d.load(filename)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// Event returns event no (1-based) of filename.
func (d *Dir) Event(filename string, no int) (*model.Event, error) {
	events, err := d.load(filename)
	if err != nil {
		return nil, err
	}
	if no < 1 || no > len(events) {
		return nil, fmt.Errorf("event %d of %s: %w", no, filename, errors.ErrNotFound)
	}
	return events[no-1], nil
}

// Files lists the event files of the directory. Files which fail to parse are
// logged and skipped.
func (d *Dir) Files() ([]model.FileInfo, error) {
	entries, readErr := os.ReadDir(d.root)
	if readErr != nil {
		return nil, readErr
	}
	files := []model.FileInfo{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}
		count, countErr := d.Count(entry.Name())
		if countErr != nil {
			log.Warnf("skipping %s: %s", entry.Name(), countErr.Error())
			continue
		}
		files = append(files, model.FileInfo{Filename: entry.Name(), Count: count})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })
	return files, nil
}

// Import writes events as filename into the directory, replacing any existing file.
func (d *Dir) Import(filename string, events []*model.Event) error {
	path, pathErr := d.path(filename)
	if pathErr != nil {
		return pathErr
	}
	tmp, createErr := os.CreateTemp(d.root, ".import-*")
	if createErr != nil {
		return createErr
	}
	defer os.Remove(tmp.Name())

	if writeErr := WriteAll(tmp, events); writeErr != nil {
		tmp.Close()
		return writeErr
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return closeErr
	}
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		return renameErr
	}

	d.mu.Lock()
	delete(d.files, filename)
	d.mu.Unlock()
	log.Infof("imported %d events into %s", len(events), path)
	return nil
}
