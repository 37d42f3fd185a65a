package mongo

import (
	"fmt"

	"github.com/Dragunija/PPE-Data-Visualization/errors"
	"github.com/Dragunija/PPE-Data-Visualization/model"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// Count returns the number of events stored under filename.
func (db DB) Count(filename string) (int, error) {
	count, countErr := db.Events().File(filename).Count()
	if countErr != nil {
		log.Error(countErr.Error())
		return 0, errors.ErrInternalServerError
	}
	if count == 0 {
		return 0, fmt.Errorf("file %s: %w", filename, errors.ErrNotFound)
	}
	return count, nil
}

// Event returns event no (1-based) stored under filename.
func (db DB) Event(filename string, no int) (*model.Event, error) {
	header := EventDocument{}
	getErr := db.Events().Event(filename, no).One(&header)
	if getErr == mgo.ErrNotFound {
		return nil, fmt.Errorf("event %d of %s: %w", no, filename, errors.ErrNotFound)
	}
	if getErr != nil {
		log.Error(getErr.Error())
		return nil, errors.ErrInternalServerError
	}

	particles := []ParticleDocument{}
	if err := db.Particles().Event(filename, no).All(&particles); err != nil {
		log.Error(err.Error())
		return nil, errors.ErrInternalServerError
	}
	vertices := []VertexDocument{}
	if err := db.Vertices().Event(filename, no).All(&vertices); err != nil {
		log.Error(err.Error())
		return nil, errors.ErrInternalServerError
	}
	return Assemble(header, particles, vertices), nil
}

// Files lists the uploaded files with their number of events.
func (db DB) Files() ([]model.FileInfo, error) {
	result := []struct {
		Filename string `bson:"_id"`
		Count    int    `bson:"count"`
	}{}
	pipeErr := db.Events().Pipe([]bson.M{
		{"$group": bson.M{"_id": "$" + FilenameKey, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"_id": 1}},
	}).All(&result)
	if pipeErr != nil {
		log.Error(pipeErr.Error())
		return nil, errors.ErrInternalServerError
	}
	files := make([]model.FileInfo, 0, len(result))
	for _, r := range result {
		files = append(files, model.FileInfo{Filename: r.Filename, Count: r.Count})
	}
	return files, nil
}

// Import stores events under filename, replacing whatever was stored under
// that name before.
func (db DB) Import(filename string, events []*model.Event) error {
	collections := db.collections()
	for _, c := range collections {
		if dropErr := c.Drop(filename); dropErr != nil {
			log.Error(dropErr.Error())
			return errors.ErrInternalServerError
		}
	}

	evts, particles, vertices := Documents(filename, events)
	for i, docs := range [][]interface{}{evts, particles, vertices} {
		if storeErr := collections[i].Store(docs); storeErr != nil {
			log.Error(storeErr.Error())
			return errors.ErrInternalServerError
		}
	}
	log.Infof("imported %d events into %s", len(events), filename)
	return nil
}
