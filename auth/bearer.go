package auth

import (
	"errors"
	"net/http"
	"strings"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

var (
	errMissingAuthorizationHeader = errors.New("missing Authorization header")
	errInvalidAuthorizationHeader = errors.New("invalid Authorization header")
)

func BearerTokenFromRequest(r *http.Request) (string, error) {
	reqToken := r.Header.Get(authorizationHeader)
	if reqToken == "" {
		return "", errMissingAuthorizationHeader
	}
	token, found := strings.CutPrefix(reqToken, bearerPrefix)
	if !found || token == "" {
		return "", errInvalidAuthorizationHeader
	}
	return strings.TrimSpace(token), nil
}
