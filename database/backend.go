package database

import (
	"log"
	"time"

	"barberhub/config"
	"barberhub/database/store"
	"barberhub/utils"
)

// NewStore builds the DocumentStore selected by STORE_BACKEND. The memory
// backend exists for local development and tests; production deployments
// run against Firebase or a Mongo replica set.
func NewStore() store.DocumentStore {
	switch config.AppConfig.StoreBackend {
	case "firebase":
		utils.FirebaseInit()
		interval := time.Duration(config.AppConfig.FirebasePollSeconds) * time.Second
		return store.NewFirebaseStore(utils.FirebaseDB, interval)
	case "mongo":
		InitDB()
		return store.NewMongoStore(MongoClient, config.AppConfig.DatabaseName)
	case "memory":
		return store.NewMemoryStore()
	default:
		log.Fatalf("unknown store backend %q", config.AppConfig.StoreBackend)
		return nil
	}
}
