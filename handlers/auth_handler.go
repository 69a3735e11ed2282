package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"solosphere/services"
)

// TokenService issues and verifies session tokens and builds the cookies
// that carry them.
type TokenService interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
	Cookie(token string) *http.Cookie
	ClearCookie() *http.Cookie
}

// AuthHandler handles session issuance, revocation and the access guard.
type AuthHandler struct {
	sessions TokenService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions TokenService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type ctxKey int

const sessionEmailKey ctxKey = iota

// SessionEmail returns the identity the access guard attached to ctx.
func SessionEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(sessionEmailKey).(string)
	return email, ok
}

// CreateToken handles POST /jwt - signs a session token for the given
// email and sets it as an HTTP-only cookie.
func (ah *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := ah.sessions.Issue(body.Email)
	if err != nil {
		log.Printf("Failed to issue session token: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	http.SetCookie(w, ah.sessions.Cookie(token))
	writeJSON(w, http.StatusOK, map[string]bool{"message": true})
}

// Logout handles GET /logoutJWT - expires the session cookie.
func (ah *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.SetCookie(w, ah.sessions.ClearCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RequireSession guards a route behind a valid session cookie. A missing
// or unverifiable token stops the request with a 401; on success the
// decoded identity rides on the request context for the next handler.
func (ah *AuthHandler) RequireSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cookie, err := r.Cookie(services.CookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		email, err := ah.sessions.Verify(cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		ctx := context.WithValue(r.Context(), sessionEmailKey, email)
		next(w, r.WithContext(ctx), ps)
	}
}
