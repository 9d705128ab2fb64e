// Package main applies queued favorite-restaurant commands to the
// favorites table.
package main

import (
	"context"
	"fmt"

	"userprofile/internal/apperr"
	"userprofile/internal/awsutil"
	"userprofile/internal/config"
	"userprofile/internal/ddb"
	"userprofile/internal/models"
	"userprofile/internal/payload"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Recognized command names.
const (
	cmdAddFavorite    = "AddFavorite"
	cmdDeleteFavorite = "DeleteFavorite"
)

// FavoriteStore is the table surface the handler needs.
type FavoriteStore interface {
	PutFavorite(ctx context.Context, f models.FavoriteRestaurant) error
	DeleteFavorite(ctx context.Context, userID, restaurantID string) error
}

// App holds the application state, including configuration and AWS clients.
type App struct {
	repo   FavoriteStore
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

// handler processes the batch strictly in delivery order. The first failing
// message aborts the whole batch; the returned error makes the platform
// redeliver the delivery.
func (a *App) handler(ctx context.Context, ev events.SQSEvent) error {
	for _, msg := range ev.Records {
		if err := a.processMessage(ctx, msg); err != nil {
			a.logger.Error("favorites command failed",
				zap.String("messageID", msg.MessageId),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

// processMessage applies a single queued command.
func (a *App) processMessage(ctx context.Context, msg events.SQSMessage) error {
	cmd, err := payload.ParseFavoriteCommand(msg)
	if err != nil {
		return err
	}

	switch cmd.CommandName {
	case cmdAddFavorite:
		fav := models.FavoriteRestaurant{UserID: cmd.UserID, RestaurantID: cmd.RestaurantID}
		if err := a.repo.PutFavorite(ctx, fav); err != nil {
			return err
		}
		a.logger.Info("favorite saved",
			zap.String("userID", cmd.UserID),
			zap.String("restaurantID", cmd.RestaurantID),
		)
	case cmdDeleteFavorite:
		if err := a.repo.DeleteFavorite(ctx, cmd.UserID, cmd.RestaurantID); err != nil {
			return err
		}
		a.logger.Info("favorite deleted",
			zap.String("userID", cmd.UserID),
			zap.String("restaurantID", cmd.RestaurantID),
		)
	default:
		return apperr.BadCommand(fmt.Sprintf("command %q not recognized", cmd.CommandName))
	}
	return nil
}
