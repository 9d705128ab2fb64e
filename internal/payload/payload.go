// Package payload defines the schemas of the loosely structured trigger
// payloads and validates them at the boundary, so a missing field surfaces
// as a single validation error instead of an undifferentiated failure later.
package payload

import (
	"encoding/json"

	"userprofile/internal/apperr"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AddressDetail is the event detail of an add-address mutation. Fields are
// pointers so that a key that is present but empty (line2 is routinely "")
// passes, while an absent key fails required-validation.
type AddressDetail struct {
	Line1         *string `json:"line1" validate:"required"`
	Line2         *string `json:"line2" validate:"required"`
	City          *string `json:"city" validate:"required"`
	StateProvince *string `json:"stateProvince" validate:"required"`
	Postal        *string `json:"postal" validate:"required"`
	UserID        *string `json:"userId" validate:"required"`
}

// ParseAddressDetail decodes and validates the detail of an add-address
// event.
func ParseAddressDetail(raw json.RawMessage) (*AddressDetail, error) {
	var d AddressDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed event detail", err)
	}
	if err := validate.Struct(&d); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "missing required address fields", err)
	}
	return &d, nil
}

// AddressKeyDetail is the event detail of a delete-address mutation.
type AddressKeyDetail struct {
	AddressID string `json:"addressId"`
	UserID    string `json:"userId"`
}

// ParseAddressKeyDetail decodes the detail of a delete-address event and
// checks both key halves are present and non-empty.
func ParseAddressKeyDetail(raw json.RawMessage) (*AddressKeyDetail, error) {
	var d AddressKeyDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed event detail", err)
	}
	if d.UserID == "" {
		return nil, apperr.Validation("User Id could not be found in the incoming event")
	}
	if d.AddressID == "" {
		return nil, apperr.Validation("Address Id could not be found in the incoming event")
	}
	return &d, nil
}

// FavoriteCommand is one decoded queue message: the restaurant id rides in
// the message body, the user and command name in message attributes.
type FavoriteCommand struct {
	RestaurantID string
	UserID       string
	CommandName  string
}

// ParseFavoriteCommand extracts a favorites command from an SQS message,
// failing when any of the three properties is missing.
func ParseFavoriteCommand(msg events.SQSMessage) (*FavoriteCommand, error) {
	c := FavoriteCommand{RestaurantID: msg.Body}
	if a, ok := msg.MessageAttributes["UserId"]; ok && a.StringValue != nil {
		c.UserID = *a.StringValue
	}
	if a, ok := msg.MessageAttributes["CommandName"]; ok && a.StringValue != nil {
		c.CommandName = *a.StringValue
	}
	if c.RestaurantID == "" || c.UserID == "" || c.CommandName == "" {
		return nil, apperr.Validation("required command properties are missing")
	}
	return &c, nil
}
