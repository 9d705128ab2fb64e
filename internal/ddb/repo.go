// Package ddb provides a simple repository for the profile and image
// metadata tables.
package ddb

import (
	"context"
	"time"

	"userprofile/internal/apperr"
	"userprofile/internal/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API is the slice of the DynamoDB client used by the repository. Tests
// substitute an in-memory implementation.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Repo wraps a DynamoDB client and a table name. Each handler constructs a
// Repo bound to its own table; only per-key atomicity of the underlying
// service is relied upon.
type Repo struct {
	DB    API
	Table string
}

// NowISO returns the current UTC time in ISO8601 format with a trailing Z.
func NowISO() string { return time.Now().UTC().Format(time.RFC3339) }

// PutAddress writes a full address item, overwriting any existing item with
// the same composite key.
func (r *Repo) PutAddress(ctx context.Context, a models.Address) error {
	return r.putItem(ctx, a)
}

// DeleteAddress removes the item keyed by (userID, addressID). Deleting an
// absent key is success.
func (r *Repo) DeleteAddress(ctx context.Context, userID, addressID string) error {
	return r.deleteItem(ctx, map[string]types.AttributeValue{
		"user_id":    &types.AttributeValueMemberS{Value: userID},
		"address_id": &types.AttributeValueMemberS{Value: addressID},
	})
}

// QueryAddresses returns every address in the user's partition, in the order
// the table returns them.
func (r *Repo) QueryAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	out, err := r.queryPartition(ctx, userID)
	if err != nil {
		return nil, err
	}
	var items []models.Address
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, apperr.Wrap(apperr.KindTableRead, "unmarshal addresses", err)
	}
	return items, nil
}

// PutFavorite upserts the favorite existence record. Re-adding an existing
// favorite is a no-op overwrite.
func (r *Repo) PutFavorite(ctx context.Context, f models.FavoriteRestaurant) error {
	return r.putItem(ctx, f)
}

// DeleteFavorite removes the item keyed by (userID, restaurantID); absent
// keys are success.
func (r *Repo) DeleteFavorite(ctx context.Context, userID, restaurantID string) error {
	return r.deleteItem(ctx, map[string]types.AttributeValue{
		"user_id":       &types.AttributeValueMemberS{Value: userID},
		"restaurant_id": &types.AttributeValueMemberS{Value: restaurantID},
	})
}

// QueryFavorites returns every favorite in the user's partition.
func (r *Repo) QueryFavorites(ctx context.Context, userID string) ([]models.FavoriteRestaurant, error) {
	out, err := r.queryPartition(ctx, userID)
	if err != nil {
		return nil, err
	}
	var items []models.FavoriteRestaurant
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, apperr.Wrap(apperr.KindTableRead, "unmarshal favorites", err)
	}
	return items, nil
}

// PutImageRecord upserts a processed-image metadata record.
func (r *Repo) PutImageRecord(ctx context.Context, rec models.ImageArtifactRecord) error {
	return r.putItem(ctx, rec)
}

func (r *Repo) putItem(ctx context.Context, v any) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return apperr.Wrap(apperr.KindTableWrite, "marshal item", err)
	}
	_, err = r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.Table,
		Item:      item,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindTableWrite, "put item into "+r.Table, err)
	}
	return nil
}

func (r *Repo) deleteItem(ctx context.Context, key map[string]types.AttributeValue) error {
	_, err := r.DB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.Table,
		Key:       key,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindTableWrite, "delete item from "+r.Table, err)
	}
	return nil
}

func (r *Repo) queryPartition(ctx context.Context, userID string) (*dynamodb.QueryOutput, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("user_id").Equal(expression.Value(userID))).
		Build()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTableRead, "build key condition", err)
	}
	out, err := r.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &r.Table,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTableRead, "query "+r.Table, err)
	}
	return out, nil
}
