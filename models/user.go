package models

import (
	"context"
	"html"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primary_key;size:36" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     *string   `gorm:"size:100;unique" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"password"`
	Role      UserRole  `gorm:"type:enum('admin','employee');default:'employee'" json:"role"`
	IsActive  *bool     `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username string   `json:"username" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role" binding:"required"`
	IsActive *bool    `json:"is_active"`
}

/*
caches:
	Token:$token   -> SessionData (JSON)
	Tokens:$username -> set of live tokens
*/

// SessionData is what a token resolves to in Redis. The middleware loads it
// into the request context on every call.
type SessionData struct {
	UserId     string `json:"user_id"`
	Role       string `json:"role"`
	BusinessId string `json:"business_id"`
	EmployeeId int    `json:"employee_id"`
	UserName   string `json:"user_name"`
}

// LoginInfo is the login/session response payload.
type LoginInfo struct {
	Token        string `json:"token"`
	UserId       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BusinessId   string `json:"business_id,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	EmployeeId   int    `json:"employee_id,omitempty"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

// Login authenticates by username or email and issues a session token.
func Login(ctx context.Context, identifier string, password string) (*LoginInfo, error) {

	db := config.GetDB()

	user := User{}
	err := db.WithContext(ctx).Model(&User{}).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		Take(&user).Error
	if err != nil {
		return nil, utils.NewAuthError("invalid username or password")
	}

	// Any comparison failure rejects the login, a corrupt stored hash
	// included.
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, utils.NewAuthError("invalid username or password")
	}

	if user.IsActive != nil && !*user.IsActive {
		return nil, utils.NewAuthError("user is disabled")
	}

	result := LoginInfo{
		UserId: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
	}
	session := SessionData{
		UserId:   user.ID,
		Role:     string(user.Role),
		UserName: user.Name,
	}

	// employee sessions are pinned to their business
	if user.Role == UserRoleEmployee {
		var employee Employee
		if err := db.WithContext(ctx).Model(&Employee{}).Where("user_id = ?", user.ID).Take(&employee).Error; err != nil {
			return nil, utils.NewAuthError("no employee record for this account")
		}
		session.BusinessId = employee.BusinessId
		session.EmployeeId = employee.ID
		result.BusinessId = employee.BusinessId
		result.EmployeeId = employee.ID

		var business Business
		if err := db.WithContext(ctx).Model(&Business{}).Where("id = ?", employee.BusinessId).Take(&business).Error; err == nil {
			result.BusinessName = business.Name
		}
	}

	token := uuid.New()
	result.Token = token.String()

	tokenLifespan, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil || tokenLifespan <= 0 {
		tokenLifespan = 24
	}

	// add new token to the user's tokens set
	if err := config.AddRedisSet("Tokens:"+user.Username, token.String()); err != nil {
		return nil, utils.NewRemoteError("redis", err)
	}
	if err := config.SetRedisObject("Token:"+token.String(), &session, time.Duration(tokenLifespan)*time.Hour); err != nil {
		return nil, utils.NewRemoteError("redis", err)
	}

	return &result, nil
}

// destroy current session
func Logout(ctx context.Context) (bool, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, utils.NewAuthError("token is required")
	}
	if err := config.RemoveRedisKey("Token:" + token); err != nil {
		return false, utils.NewRemoteError("redis", err)
	}
	// remove current token from the user's tokens set
	userId, ok := utils.GetUserIdFromContext(ctx)
	if ok && userId != "" {
		var user User
		db := config.GetDB()
		if err := db.WithContext(ctx).Where("id = ?", userId).Take(&user).Error; err == nil {
			_ = config.RemoveRedisSetMember("Tokens:"+user.Username, token)
		}
	}
	return true, nil
}

// GetSession rebuilds the session view from the request context. The
// middleware has already validated the token against Redis.
func GetSession(ctx context.Context) (*LoginInfo, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return nil, utils.NewAuthError("unauthenticated")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)
	role, _ := utils.GetRoleFromContext(ctx)
	name, _ := utils.GetUserNameFromContext(ctx)

	result := LoginInfo{
		Token:  token,
		UserId: userId,
		Name:   name,
		Role:   role,
	}
	if businessId, ok := utils.GetBusinessIdFromContext(ctx); ok {
		result.BusinessId = businessId
	}
	if employeeId, ok := utils.GetEmployeeIdFromContext(ctx); ok {
		result.EmployeeId = employeeId
	}
	return &result, nil
}

// CreateUser inserts a user inside the given transaction. Validation errors
// surface before any write.
func CreateUser(tx *gorm.DB, input *NewUser) (*User, error) {

	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, utils.NewValidationError("invalid email address")
	}
	if len(input.Password) < 6 {
		return nil, utils.NewValidationError("password must be at least 6 characters")
	}

	var count int64
	err := tx.Model(&User{}).Where("username = ?", input.Username).Or("email = ?", input.Email).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewValidationError("duplicate username or email")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	input.Email = strings.ToLower(input.Email)

	isActive := input.IsActive
	if isActive == nil {
		isActive = utils.NewTrue()
	}

	user := User{
		ID:       uuid.NewString(),
		Username: html.EscapeString(strings.TrimSpace(input.Username)),
		Name:     input.Name,
		Email:    utils.NilIfEmpty(input.Email),
		Password: string(hashedPassword),
		Role:     input.Role,
		IsActive: isActive,
	}

	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

func (user *User) DestroyAllSessions(ctx context.Context) error {
	allTokens, err := config.GetRedisSetMembers("Tokens:" + user.Username)
	if err != nil {
		return err
	}
	for _, token := range allTokens {
		if err := config.RemoveRedisKey("Token:" + token); err != nil {
			return err
		}
	}
	if err := config.RemoveRedisKey("Tokens:" + user.Username); err != nil {
		return err
	}

	return nil
}
