package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"storefront_back_end/internal/apierror"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/utils"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register.
func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.New(apierror.Validation, "Valid email and a password of at least 6 characters are required"))
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user store unavailable", err))
		return
	}

	// users_by_email keeps the email unique lookup path.
	var existing gocql.UUID
	err = session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, input.Email).Scan(&existing)
	if err == nil {
		apierror.Respond(c, apierror.New(apierror.Validation, "Email already registered"))
		return
	}
	if err != gocql.ErrNotFound {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user lookup failed", err))
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "password hashing failed", err))
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	if err := session.Query(`INSERT INTO users (user_id, name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, input.Name, input.Email, hash, models.RoleCustomer, now).Exec(); err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user creation failed", err))
		return
	}
	if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
		input.Email, userID).Exec(); err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user creation failed", err))
		return
	}

	user := models.User{
		ID:        userID.String(),
		Name:      input.Name,
		Email:     input.Email,
		Role:      models.RoleCustomer,
		CreatedAt: now,
	}

	go utils.SendWelcomeEmail(user.Email, user.Name)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "token generation failed", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Login handles POST /api/auth/login (rate limited per email).
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.New(apierror.Validation, "Email and password are required"))
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user store unavailable", err))
		return
	}

	var userID gocql.UUID
	err = session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, input.Email).Scan(&userID)
	if err == gocql.ErrNotFound {
		middleware.RecordFailedLogin(input.Email)
		apierror.Respond(c, apierror.New(apierror.Authentication, "Invalid credentials"))
		return
	}
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user lookup failed", err))
		return
	}

	var (
		name, email, hash, role string
		createdAt               time.Time
	)
	if err := session.Query(`SELECT name, email, password_hash, role, created_at FROM users WHERE user_id = ?`, userID).
		Scan(&name, &email, &hash, &role, &createdAt); err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user read failed", err))
		return
	}

	ok, err := utils.VerifyPassword(input.Password, hash)
	if err != nil || !ok {
		middleware.RecordFailedLogin(input.Email)
		apierror.Respond(c, apierror.New(apierror.Authentication, "Invalid credentials"))
		return
	}

	middleware.ClearLoginAttempts(input.Email)

	user := models.User{ID: userID.String(), Name: name, Email: email, Role: role, CreatedAt: createdAt}
	token, err := utils.GenerateJWT(user)
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "token generation failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Profile handles GET /api/auth/profile behind AuthRequired.
func Profile(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user store unavailable", err))
		return
	}

	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		apierror.Respond(c, apierror.New(apierror.Authentication, "Invalid token"))
		return
	}

	var (
		name, email, role string
		createdAt         time.Time
	)
	err = session.Query(`SELECT name, email, role, created_at FROM users WHERE user_id = ?`, uid).
		Scan(&name, &email, &role, &createdAt)
	if err == gocql.ErrNotFound {
		apierror.Respond(c, apierror.New(apierror.NotFound, "User not found"))
		return
	}
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "user read failed", err))
		return
	}

	c.JSON(http.StatusOK, models.User{
		ID:        userID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: createdAt,
	})
}
