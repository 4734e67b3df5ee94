package handler

import (
	"net/http"
	"time"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/pkg/auth"
)

// AuthHandler serves password sign-up, sign-in and session endpoints.
type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

// NewAuthHandler creates an AuthHandler. secureCookie marks the session
// cookie Secure and should be set when serving over HTTPS.
func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// sessionResponse is the body of GET /api/auth/session.
type sessionResponse struct {
	User *model.User `json:"user"`
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	session, err := h.authService.SignUp(r.Context(), creds)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.setSessionCookie(w, session)
	writeJSON(w, http.StatusCreated, session)
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	session, err := h.authService.SignIn(r.Context(), creds)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, session)
}

// SignOut handles POST /api/auth/signout (authenticated). With ?scope=all
// every session of the account is revoked, not only the presented one.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var err error
	switch r.URL.Query().Get("scope") {
	case "":
		err = h.authService.SignOut(r.Context(), auth.TokenFromRequest(r))
	case "all":
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		err = h.authService.SignOutAll(r.Context(), userID)
	default:
		writeError(w, http.StatusBadRequest, "invalid_scope", `scope must be empty or "all"`)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/auth/session (authenticated) and returns the
// account behind the presented token.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: user})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *model.AuthSession) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
	})
}
