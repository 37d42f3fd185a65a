package mongo

import (
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// Collection is one of the event store collections. Every document carries the
// filename it was uploaded from and the position of its event in that file.
type Collection interface {
	// File selects all documents of filename.
	File(filename string) *mgo.Query
	// Event selects the documents of event no of filename.
	Event(filename string, no int) *mgo.Query
	// Drop removes all documents of filename.
	Drop(filename string) error
	// Store inserts docs in one unordered bulk operation.
	Store(docs []interface{}) error
	// Pipe runs an aggregation over the whole collection.
	Pipe(pipeline []bson.M) *mgo.Pipe
}

type fileCollection struct {
	c *mgo.Collection
}

func fileQuery(filename string) bson.M {
	return bson.M{FilenameKey: filename}
}

func eventQuery(filename string, no int) bson.M {
	return bson.M{FilenameKey: filename, NoKey: no}
}

func (fc fileCollection) File(filename string) *mgo.Query {
	return fc.c.Find(fileQuery(filename))
}

func (fc fileCollection) Event(filename string, no int) *mgo.Query {
	return fc.c.Find(eventQuery(filename, no))
}

func (fc fileCollection) Drop(filename string) error {
	_, removeErr := fc.c.RemoveAll(fileQuery(filename))
	return removeErr
}

func (fc fileCollection) Store(docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	bulk := fc.c.Bulk()
	bulk.Unordered()
	bulk.Insert(docs...)
	_, runErr := bulk.Run()
	return runErr
}

func (fc fileCollection) Pipe(pipeline []bson.M) *mgo.Pipe {
	return fc.c.Pipe(pipeline)
}
