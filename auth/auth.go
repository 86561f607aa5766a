package auth

import (
	"net/http"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// Identity is the verified caller, as issued by Firebase Auth.
type Identity struct {
	UID   string
	Email string
}

// Authenticate verifies the Firebase ID token carried in the request's
// Authorization header and returns the caller's identity.
func Authenticate(req *http.Request) (*Identity, error) {
	ctx := req.Context()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	jwtToken, err := BearerTokenFromRequest(req)
	if err != nil {
		return nil, err
	}

	token, err := client.VerifyIDToken(ctx, jwtToken)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:   token.UID,
		Email: emailClaim(token),
	}, nil
}

func emailClaim(token *auth.Token) string {
	email, _ := token.Claims["email"].(string)
	return email
}
