package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// subjectClaims lists claim names checked, in order, for a display label.
var subjectClaims = []string{"username", "preferred_username", "sub"}

// Subject peeks into a JWT-shaped token without verifying it and returns a label for the
// signed-in user. The token stays opaque to the client: nothing here is used for access decisions.
func Subject(token string) string {
	if strings.Count(token, ".") != 2 {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	for _, name := range subjectClaims {
		if v, ok := claims[name].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
