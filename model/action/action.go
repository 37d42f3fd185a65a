package action

import (
	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/model"
)

var log = conf.NamedLogger("action")

// EventSource stores events by file name. It is implemented by mongo.DB and
// hepmc.Dir.
type EventSource interface {
	Count(filename string) (int, error)
	Event(filename string, no int) (*model.Event, error)
	Files() ([]model.FileInfo, error)
	Import(filename string, events []*model.Event) error
}

// Resolver ...
type Resolver struct {
	Config *conf.Config
}
