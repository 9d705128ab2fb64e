// Package main lists the authenticated caller's favorite restaurants.
package main

import (
	"context"
	"net/http"

	"userprofile/internal/authz"
	"userprofile/internal/awsutil"
	"userprofile/internal/config"
	"userprofile/internal/ddb"
	"userprofile/internal/httpx"
	"userprofile/internal/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// FavoriteStore is the table surface the handler needs.
type FavoriteStore interface {
	QueryFavorites(ctx context.Context, userID string) ([]models.FavoriteRestaurant, error)
}

// App holds the application state, including configuration and AWS clients.
type App struct {
	env    config.Env
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
		env:    env,
		repo:   &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table},
		logger: logger,
	}
	lambda.Start(app.handler)
}

// handler mirrors list-addresses for favorite restaurants.
func (a *App) handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sub, err := authz.FromAPIGWv1(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.Error(http.StatusUnauthorized, "missing user")
	}

	items, err := a.repo.QueryFavorites(ctx, sub)
	if err != nil {
		a.logger.Error("list favorites failed", zap.String("userID", sub), zap.Error(err))
		return events.APIGatewayProxyResponse{}, err
	}
	if items == nil {
		items = []models.FavoriteRestaurant{}
	}

	a.logger.Info("listed favorites", zap.String("userID", sub), zap.Int("count", len(items)))
	return httpx.JSON(http.StatusOK, map[string]any{"favorites": items})
}
