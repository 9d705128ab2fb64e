// Package main deletes a user's address in response to an EventBridge
// mutation event.
package main

import (
	"context"

	"userprofile/internal/awsutil"
	"userprofile/internal/config"
	"userprofile/internal/ddb"
	"userprofile/internal/payload"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// AddressStore is the table surface the handler needs.
type AddressStore interface {
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

// App holds the application state, including configuration and AWS clients.
type App struct {
	repo   AddressStore
	logger *zap.Logger
}

// main initializes the app and starts the Lambda handler.
func main() {
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	env := config.MustLoad()
	cfg, _, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		logger.Fatal("load aws config", zap.Error(err))
	}

	app := &App{
		repo:   &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table},
		logger: logger,
	}
	lambda.Start(app.handler)
}

// handler validates the key halves then deletes the item. Deleting an
// already-absent address is success.
func (a *App) handler(ctx context.Context, ev events.CloudWatchEvent) error {
	detail, err := payload.ParseAddressKeyDetail(ev.Detail)
	if err != nil {
		a.logger.Error("invalid delete-address event", zap.Error(err))
		return err
	}

	if err := a.repo.DeleteAddress(ctx, detail.UserID, detail.AddressID); err != nil {
		a.logger.Error("delete address failed",
			zap.String("userID", detail.UserID),
			zap.String("addressID", detail.AddressID),
			zap.Error(err),
		)
		return err
	}

	a.logger.Info("address deleted",
		zap.String("userID", detail.UserID),
		zap.String("addressID", detail.AddressID),
	)
	return nil
}
