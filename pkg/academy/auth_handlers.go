package academy

import (
	"context"
	"net/http"
	"strings"

	"github.com/colorbulb/nexteliteweb2/pkg/auth"
)

type contextKey int

const userContextKey contextKey = iota

// SignInRequest is the body of POST /api/auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// currentUser returns the admin the request is authenticated as.
func currentUser(ctx context.Context) (auth.User, bool) {
	u, ok := ctx.Value(userContextKey).(auth.User)
	return u, ok
}

func (a *App) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		user, err := a.auth.Validate(token)
		if err != nil {
			respondErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

func (a *App) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	session, err := a.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (a *App) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if err := a.auth.SignOut(token); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.auth.Validate(bearerToken(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
