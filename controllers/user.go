package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"go-shop/auth"
	"go-shop/middleware"
	"go-shop/models"
	"go-shop/store"
)

// UserController handles registration and authentication.
type UserController struct {
	users  UserStore
	tokens *auth.TokenService
	log    zerolog.Logger
}

// NewUserController creates a UserController.
func NewUserController(users UserStore, tokens *auth.TokenService, log zerolog.Logger) *UserController {
	return &UserController{users: users, tokens: tokens, log: log}
}

// Register handles POST /api/users. On success the issued token travels in
// the x-auth-token response header and the body carries {id, email}.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		uc.log.Error().Err(err).Msg("hash password")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := uc.users.Insert(ctx, models.User{
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Surname:  req.Surname,
		Address:  req.Address,
		Birthday: req.Birthday,
		IsAdmin:  req.IsAdmin,
		Insert:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, "Email is already used.", http.StatusBadRequest)
			return
		}
		uc.log.Error().Err(err).Msg("insert user")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	token, err := uc.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		uc.log.Error().Err(err).Msg("issue token")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set(middleware.TokenHeader, token)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Authenticate handles POST /api/users/authentication. A wrong email and a
// wrong password answer identically so the response does not reveal which
// accounts exist.
func (uc *UserController) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Invalid email or password.", http.StatusBadRequest)
			return
		}
		uc.log.Error().Err(err).Msg("find user")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		http.Error(w, "Invalid email or password.", http.StatusBadRequest)
		return
	}

	token, err := uc.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		uc.log.Error().Err(err).Msg("issue token")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
