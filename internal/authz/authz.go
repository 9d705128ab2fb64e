// Package authz extracts the authenticated caller identity from API Gateway
// requests. Handlers on the synchronous HTTP path derive user_id exclusively
// from here, never from client-supplied fields.
package authz

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// ErrUnauthorized is returned when no caller subject can be derived.
var ErrUnauthorized = errors.New("unauthorized")

const devBypassHeader = "x-user-sub"

// headerLookup returns the value of a header key, case-insensitively.
func headerLookup(h map[string]string, key string) string {
	lk := strings.ToLower(key)
	for k, v := range h {
		if strings.ToLower(k) == lk {
			return v
		}
	}
	return ""
}

// stringIf returns v if it is a non-empty string.
func stringIf(v any) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return ""
}

// subFromClaims extracts the "sub" claim from whatever shape the authorizer
// delivered the claims in.
func subFromClaims(raw any) string {
	switch c := raw.(type) {
	case map[string]any:
		return stringIf(c["sub"])
	case map[string]string:
		return c["sub"]
	case string:
		var m map[string]any
		if json.Unmarshal([]byte(c), &m) == nil {
			return stringIf(m["sub"])
		}
	}
	return ""
}

// FromAPIGWv1 extracts the Cognito user sub from a REST (v1) request. With
// devBypass set (localstack), a non-empty x-user-sub header wins.
func FromAPIGWv1(req events.APIGatewayProxyRequest, devBypass bool) (string, error) {
	if devBypass {
		if sub := strings.TrimSpace(headerLookup(req.Headers, devBypassHeader)); sub != "" {
			return sub, nil
		}
	}

	if m := req.RequestContext.Authorizer; m != nil {
		if sub := subFromClaims(m["claims"]); sub != "" {
			return sub, nil
		}
		if sub := stringIf(m["sub"]); sub != "" {
			return sub, nil
		}
	}

	return "", ErrUnauthorized
}
