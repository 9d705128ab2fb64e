// Package main saves a new address for a user in response to an
// EventBridge mutation event.
package main

import (
	"context"

	"userprofile/internal/awsutil"
	"userprofile/internal/config"
	"userprofile/internal/ddb"
	"userprofile/internal/models"
	"userprofile/internal/payload"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddressStore is the table surface the handler needs.
type AddressStore interface {
	PutAddress(ctx context.Context, a models.Address) error
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

// handler generates an address id, writes the full item and returns the id.
// Errors propagate to the platform so its redelivery policy applies.
func (a *App) handler(ctx context.Context, ev events.CloudWatchEvent) (string, error) {
	detail, err := payload.ParseAddressDetail(ev.Detail)
	if err != nil {
		a.logger.Error("invalid add-address event", zap.Error(err))
		return "", err
	}

	addr := models.Address{
		AddressID:     uuid.NewString(),
		UserID:        *detail.UserID,
		Line1:         *detail.Line1,
		Line2:         *detail.Line2,
		City:          *detail.City,
		StateProvince: *detail.StateProvince,
		Postal:        *detail.Postal,
	}
	if err := a.repo.PutAddress(ctx, addr); err != nil {
		a.logger.Error("save address failed",
			zap.String("userID", addr.UserID),
			zap.Error(err),
		)
		return "", err
	}

	a.logger.Info("address saved",
		zap.String("userID", addr.UserID),
		zap.String("addressID", addr.AddressID),
	)
	return addr.AddressID, nil
}
