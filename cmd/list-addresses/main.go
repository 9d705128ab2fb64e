// Package main lists all addresses belonging to the authenticated caller.
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

// AddressStore is the table surface the handler needs.
type AddressStore interface {
	QueryAddresses(ctx context.Context, userID string) ([]models.Address, error)
}

// App holds the application state, including configuration and AWS clients.
type App struct {
	env    config.Env
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
		env:    env,
		repo:   &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table},
		logger: logger,
	}
	lambda.Start(app.handler)
}

// handler queries the caller's partition and returns the addresses. The
// user id comes from the authorizer claims only; query failures propagate
// to the platform. Serialization drops user_id from every item.
func (a *App) handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sub, err := authz.FromAPIGWv1(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.Error(http.StatusUnauthorized, "missing user")
	}

	items, err := a.repo.QueryAddresses(ctx, sub)
	if err != nil {
		a.logger.Error("list addresses failed", zap.String("userID", sub), zap.Error(err))
		return events.APIGatewayProxyResponse{}, err
	}
	if items == nil {
		items = []models.Address{}
	}

	a.logger.Info("listed addresses", zap.String("userID", sub), zap.Int("count", len(items)))
	return httpx.JSON(http.StatusOK, map[string]any{"addresses": items})
}
