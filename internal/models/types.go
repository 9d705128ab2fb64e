// Package models defines the data models used in the application.
package models

// Address is a postal address owned by a single user. The table partitions
// on user_id and sorts on address_id; an address is created whole, never
// updated, and deleted physically. user_id is implicit from the caller's
// identity on read paths and is never serialized back to clients.
type Address struct {
	AddressID     string `dynamodbav:"address_id" json:"address_id"`
	UserID        string `dynamodbav:"user_id" json:"-"`
	Line1         string `dynamodbav:"line1" json:"line1"`
	Line2         string `dynamodbav:"line2" json:"line2"`
	City          string `dynamodbav:"city" json:"city"`
	StateProvince string `dynamodbav:"stateProvince" json:"stateProvince"`
	Postal        string `dynamodbav:"postal" json:"postal"`
}

// FavoriteRestaurant is a bare composite-key existence record: the presence
// of the (user_id, restaurant_id) item means the restaurant is a favorite.
type FavoriteRestaurant struct {
	UserID       string `dynamodbav:"user_id" json:"-"`
	RestaurantID string `dynamodbav:"restaurant_id" json:"restaurant_id"`
}

// ImageArtifactRecord is append-only telemetry written once per processed
// image. Duplicate invocations for the same source key overwrite the record;
// no conflict detection is attempted.
type ImageArtifactRecord struct {
	ImageName          string `dynamodbav:"image_name" json:"image_name"`
	ProcessedImageName string `dynamodbav:"processed_image_name" json:"processed_image_name"`
	OriginalWidth      int    `dynamodbav:"original_width" json:"original_width"`
	OriginalHeight     int    `dynamodbav:"original_height" json:"original_height"`
	ProcessedWidth     int    `dynamodbav:"processed_width" json:"processed_width"`
	ProcessedHeight    int    `dynamodbav:"processed_height" json:"processed_height"`
	InputBucket        string `dynamodbav:"input_bucket" json:"input_bucket"`
	OutputBucket       string `dynamodbav:"output_bucket" json:"output_bucket"`
	Timestamp          string `dynamodbav:"timestamp" json:"timestamp"`
}
