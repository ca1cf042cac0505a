package handler

import (
	"net/http"
)

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	DefaultCurrency string `json:"default_currency"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	user, err := h.svc.Register(req.Email, req.Password, req.FirstName, req.LastName, req.DefaultCurrency)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// VerifyEmail redeems an email verification token
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		badRequest(w, "token is required")
		return
	}
	if err := h.svc.VerifyEmail(req.Token); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "email verified"})
}

// ResendVerification re-sends the verification email. Always 202: the
// response never discloses whether the address is registered.
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		badRequest(w, "email is required")
		return
	}
	h.svc.ResendVerification(req.Email)
	respondJSON(w, http.StatusAccepted, map[string]string{"message": "verification email sent if the address is registered"})
}

// ForgotPassword requests a password-reset email. Always 202.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		badRequest(w, "email is required")
		return
	}
	h.svc.RequestPasswordReset(req.Email)
	respondJSON(w, http.StatusAccepted, map[string]string{"message": "reset email sent if the address is registered"})
}

// ResetPassword redeems a reset token with a new password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		badRequest(w, "token is required")
		return
	}
	if err := h.svc.ResetPassword(req.Token, req.Password); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password reset"})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	user, err := h.svc.GetUser(uid)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateMe saves profile fields
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var req struct {
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		DefaultCurrency string `json:"default_currency"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	user, err := h.svc.UpdateProfile(uid, req.FirstName, req.LastName, req.DefaultCurrency)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CompleteOnboarding marks onboarding finished
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	user, err := h.svc.CompleteOnboarding(uid)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
