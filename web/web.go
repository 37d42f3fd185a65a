// Package web serves HepMC events over HTTP.
package web

import (
	"net/http"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/hepmc"
	"github.com/Dragunija/PPE-Data-Visualization/model/action"
	"github.com/Dragunija/PPE-Data-Visualization/model/mongo"
)

var log = conf.NamedLogger("web")

// NewRouter ...
func NewRouter(config *conf.Config) (http.Handler, error) {
	provider, providerErr := newSourceProvider(config)
	if providerErr != nil {
		log.Error(providerErr.Error())
		return nil, providerErr
	}

	context := &handler{
		Resolver: &action.Resolver{
			Config: config,
		},
	}

	router, setupRoutesErr := setupRoutes(context, provider)
	if setupRoutesErr != nil {
		log.Error(setupRoutesErr.Error())
		return nil, setupRoutesErr
	}

	return router, nil
}

func newSourceProvider(config *conf.Config) (sourceProvider, error) {
	if config.UseDB() {
		dbCreatorFunc, dbErr := mongo.SetupDB(config)
		if dbErr != nil {
			return nil, dbErr
		}
		return func() (action.EventSource, func()) {
			db := dbCreatorFunc()
			return db, db.Close
		}, nil
	}
	log.Infof("Serving event files from %s", config.DataDir)
	dir := hepmc.NewDir(config.DataDir)
	return func() (action.EventSource, func()) {
		return dir, func() {}
	}, nil
}
