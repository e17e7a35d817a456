package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/donlucho/ferreteria-api/internal/auth"
	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
)

// RegisterHandler godoc
// @Summary Register a new user
// @Description Creates a user with a bcrypt-hashed password and returns a token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username, password and role"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Username taken"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}
	if creds.Role == "" {
		creds.Role = auth.RoleCajero
	}
	if !auth.ValidRole(creds.Role) {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	// Only a gerente may assign a role other than cajero, except when the
	// user table is empty so the first account can bootstrap as gerente.
	if creds.Role != auth.RoleCajero {
		count, err := userRepo.Count()
		if err != nil {
			writeRepoError(w, err, "could not check users")
			return
		}
		if count > 0 {
			if role, _ := GetRoleFromContext(r); role != auth.RoleGerente {
				http.Error(w, "only a gerente may assign roles", http.StatusForbidden)
				return
			}
		}
	}

	if _, err := userRepo.GetByUsername(creds.Username); err == nil {
		http.Error(w, "username already taken", http.StatusConflict)
		return
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		writeRepoError(w, err, "could not check username")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     creds.Username,
		PasswordHash: string(hash),
		Role:         creds.Role,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "username already taken", http.StatusConflict)
			return
		}
		writeRepoError(w, err, "could not create user")
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	log.Printf("user %q registered with role %q", user.Username, user.Role)
	invalidateDashboard()
	writeJSON(w, http.StatusCreated, RegisterResult{Message: "registered successfully", Token: token})
}

// GetUsersHandler godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /users [get]
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// LoginHandler godoc
// @Summary Log in
// @Description Verifies credentials and returns a short-lived token plus a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		writeRepoError(w, err, "could not fetch user")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{
		Token:        token,
		RefreshToken: auth.IssueRefreshToken(user.Username),
	})
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid refresh token"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	username, ok := auth.RedeemRefreshToken(req.RefreshToken)
	if !ok {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	user, err := userRepo.GetByUsername(username)
	if err != nil {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{
		Token:        token,
		RefreshToken: auth.IssueRefreshToken(user.Username),
	})
}
