// utils/firebase.go
package utils

import (
	"context"
	"log"

	"barberhub/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

var (
	FirebaseApp  *firebase.App
	FirebaseDB   *db.Client
	FirebaseAuth *auth.Client
)

// FirebaseInit initializes the Firebase App with the Realtime Database and Auth clients.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialFile)
	conf := &firebase.Config{
		DatabaseURL: config.AppConfig.FirebaseDatabaseURL,
	}

	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Database client: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}

	FirebaseApp = app
	FirebaseDB = dbClient
	FirebaseAuth = authClient
}
