// Package mongo stores uploaded HepMC events in MongoDB. An event is split over
// three collections: the event header, its particles and its vertices.
package mongo

import (
	"gopkg.in/mgo.v2"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
)

var log = conf.NamedLogger("db")

const (
	eventCollection    = "events"
	particleCollection = "particles"
	vertexCollection   = "vertices"
)

// FilenameKey is the name of the file a document was uploaded from.
const FilenameKey = "filename"

// NoKey is the 1-based position of an event in its file.
const NoKey = "no"

// DB is a session of the event store. Close it when done.
type DB struct {
	session  *mgo.Session
	Events    func() Collection
	Particles func() Collection
	Vertices  func() Collection
}

// Close ...
func (db DB) Close() {
	db.session.Close()
}

func (db DB) collections() []Collection {
	return []Collection{db.Events(), db.Particles(), db.Vertices()}
}

// SetupDB dials config.DbURL and ensures the indices. The returned function
// opens a DB on a copy of the session; call it once per request.
func SetupDB(config *conf.Config) (func() DB, error) {
	log.Infof("Connecting to event store %s", config.DbURL)
	session, dialErr := mgo.Dial(config.DbURL)
	if dialErr != nil {
		log.Warnf("Connection error: %s", dialErr.Error())
		return nil, dialErr
	}
	session.SetSafe(&mgo.Safe{})

	if indexErr := ensureIndices(session.DB("")); indexErr != nil {
		log.Warnf("Ensure indices error: %s", indexErr.Error())
		session.Close()
		return nil, indexErr
	}
	log.Info("Event store ready")

	return func() DB {
		clone := session.Clone()
		db := clone.DB("")
		in := func(name string) func() Collection {
			return func() Collection {
				return fileCollection{c: db.C(name)}
			}
		}
		return DB{
			session:   clone,
			Events:    in(eventCollection),
			Particles: in(particleCollection),
			Vertices:  in(vertexCollection),
		}
	}, nil
}

// ensureIndices makes (filename, no) unique for event headers and indexed for
// the particles and vertices looked up by it.
func ensureIndices(db *mgo.Database) error {
	key := []string{FilenameKey, NoKey}
	for name, unique := range map[string]bool{
		eventCollection:    true,
		particleCollection: false,
		vertexCollection:   false,
	} {
		if err := db.C(name).EnsureIndex(mgo.Index{Key: key, Unique: unique}); err != nil {
			return err
		}
	}
	return nil
}
