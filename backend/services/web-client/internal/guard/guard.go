// Package guard decides whether a protected view may render.
package guard

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// Decision is the outcome of evaluating a protected route.
type Decision struct {
	Allow    bool
	Redirect string
}

// Evaluate allows the view when a token is present, otherwise redirects to the login view.
func Evaluate(token string, ok bool) Decision {
	if ok && token != "" {
		return Decision{Allow: true}
	}
	return Decision{Redirect: LoginPath}
}
