package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/talksapp/talks/config"
	"github.com/talksapp/talks/models"
	"github.com/talksapp/talks/utils"
)

// AuthController handles registration, login and account endpoints,
// including Google sign-in.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const verificationCodeTTL = 10 * time.Minute

// SendEmailCode mails a one-time verification code to the address so the
// caller can complete registration. The code row replaces any earlier one
// for the same email.
func (a *AuthController) SendEmailCode(ctx *gin.Context) {
	var req struct {
		Email         string `json:"email" binding:"required"`
		CaptchaID     string `json:"captcha_id"`
		CaptchaAnswer string `json:"captcha_answer"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailPattern.MatchString(email) {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid email address")
		return
	}
	// When enabled, captcha must pass BEFORE any mail is sent
	if config.Get().RegisterCaptchaEnabled {
		if !utils.VerifyCaptcha(strings.TrimSpace(req.CaptchaID), strings.TrimSpace(req.CaptchaAnswer)) {
			utils.Error(ctx, http.StatusBadRequest, 40042, "captcha incorrect or expired")
			return
		}
	}
	// Refuse early when the address already belongs to an account
	var count int64
	if err := a.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to check email")
		return
	}
	if count > 0 {
		utils.Error(ctx, http.StatusConflict, 40902, "email already registered")
		return
	}
	// per-email 60s cooldown
	if !utils.EmailCooldownTrySet(email, 60*time.Second) {
		utils.Error(ctx, http.StatusTooManyRequests, 42910, "too many requests, try again later")
		return
	}

	code := utils.GenerateVerificationCode(6)
	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is: %s\nIt expires in 10 minutes.", code)
	if err := utils.SendMail(email, subject, body); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnw("verification mail failed", "email", email, "err", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to send verification code")
		return
	}
	// Persist only after the mail went out so stale codes do not pile up
	ver := models.EmailVerification{Email: email, Code: code, CreatedAt: time.Now()}
	if err := a.db.Save(&ver).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to store verification code")
		return
	}
	utils.Success(ctx, gin.H{"message": "verification code sent"})
}

// Register creates a local account once the email code checks out. The user
// insert and the code consumption happen in one transaction.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Confirm  string `json:"confirm" binding:"required"`
		Code     string `json:"code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.Code)

	if l := len([]rune(username)); l < 3 || l > 32 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username must be 3-32 characters")
		return
	}
	if !validUsername(username) {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username may contain letters, digits, '-' and '_' only")
		return
	}
	if !emailPattern.MatchString(email) {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid email address")
		return
	}
	if req.Password != req.Confirm {
		utils.Error(ctx, http.StatusBadRequest, 40002, "passwords do not match")
		return
	}
	if len(req.Password) < 6 || len(req.Password) > 128 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "password must be 6-128 characters")
		return
	}

	// Anti-abuse: ban check, cooldown, per-IP daily limit
	ip := ctx.ClientIP()
	if utils.RegistrationIsBanned(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42920, "this address is temporarily blocked")
		return
	}
	if !utils.RegistrationCooldownTry(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42910, "too many requests, try again later")
		return
	}
	if !utils.RegistrationDailyLimitCheck(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42921, "daily registration limit reached")
		return
	}

	var existing models.User
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
		return
	}
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40902, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RegisterIP:   ip,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		var ver models.EmailVerification
		if err := tx.Where("email = ?", email).First(&ver).Error; err != nil {
			return errInvalidCode
		}
		if ver.Code != code || time.Since(ver.CreatedAt) > verificationCodeTTL {
			return errInvalidCode
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Delete(&models.EmailVerification{}, "email = ?", email).Error
	})
	if err != nil {
		if errors.Is(err, errInvalidCode) {
			utils.Error(ctx, http.StatusBadRequest, 40003, "verification code invalid or expired")
			return
		}
		fails := utils.RegistrationFailRecord(ip)
		if fails >= maxInt(config.Get().RegisterFailedMaxPerIPPerHour, 1) {
			utils.RegistrationBan(ip)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user")
		return
	}

	utils.RegistrationDailyIncrement(ip)

	token, err := utils.GenerateToken(user.ID, user.Username, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponseWithAdmin(user),
	})
}

var errInvalidCode = errors.New("verification code invalid")

// Login verifies credentials and issues a JWT. The identifier matches either
// username or email.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	ident := strings.TrimSpace(req.Username)
	var user models.User
	if err := a.db.Where("username = ? OR email = ?", ident, strings.ToLower(ident)).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponseWithAdmin(user),
	})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(72 * time.Hour)
	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt = claims.RegisteredClaims.ExpiresAt.Time
	}

	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's own record.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	utils.Success(ctx, sanitizeUserResponseWithAdmin(user))
}

// UpdateProfile lets the authenticated user change username, email or bio.
// Username and email changes are refused when already taken by another account.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Bio      *string `json:"bio"`
		Contact  *string `json:"contact"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	oldUsername := user.Username

	if req.Username != nil {
		uname := strings.TrimSpace(*req.Username)
		if l := len([]rune(uname)); l < 3 || l > 32 || !validUsername(uname) {
			utils.Error(ctx, http.StatusBadRequest, 40031, "invalid username")
			return
		}
		if uname != user.Username {
			var count int64
			a.db.Model(&models.User{}).Where("username = ? AND id <> ?", uname, user.ID).Count(&count)
			if count > 0 {
				utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
				return
			}
			user.Username = uname
		}
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailPattern.MatchString(email) {
			utils.Error(ctx, http.StatusBadRequest, 40032, "invalid email address")
			return
		}
		if email != user.Email {
			var count int64
			a.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count)
			if count > 0 {
				utils.Error(ctx, http.StatusConflict, 40902, "email already registered")
				return
			}
			user.Email = email
		}
	}
	if req.Bio != nil {
		bio := utils.Sanitize(strings.TrimSpace(*req.Bio))
		if rs := []rune(bio); len(rs) > 500 {
			bio = string(rs[:500])
		}
		user.Bio = bio
	}
	if req.Contact != nil {
		contact := utils.Sanitize(strings.TrimSpace(*req.Contact))
		if rs := []rune(contact); len(rs) > 64 {
			contact = string(rs[:64])
		}
		user.Contact = contact
	}

	if err := a.db.Save(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to update profile")
		return
	}
	utils.InvalidateByPrefix("cache:user:public:" + strconv.Itoa(int(user.ID)))
	utils.InvalidateByPrefix("cache:user:public:uname:" + oldUsername)

	utils.Success(ctx, sanitizeUserResponseWithAdmin(user))
}

// ChangePassword updates the bcrypt hash after verifying the current password.
func (a *AuthController) ChangePassword(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		Current string `json:"current_password" binding:"required"`
		New     string `json:"new_password" binding:"required"`
		Confirm string `json:"confirm_password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid request payload")
		return
	}
	if req.New != req.Confirm {
		utils.Error(ctx, http.StatusBadRequest, 40034, "passwords do not match")
		return
	}
	if len(req.New) < 6 || len(req.New) > 128 {
		utils.Error(ctx, http.StatusBadRequest, 40035, "password must be 6-128 characters")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Current) {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "current password incorrect")
		return
	}

	hash, err := utils.HashPassword(req.New)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}
	if err := a.db.Model(&user).Update("password_hash", hash).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to update password")
		return
	}
	utils.Success(ctx, gin.H{"message": "password updated"})
}

// Captcha returns a fresh captcha id and base64 image (data URI).
func (a *AuthController) Captcha(ctx *gin.Context) {
	id, b64, err := utils.GenerateCaptcha()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to generate captcha")
		return
	}
	utils.Success(ctx, gin.H{"id": id, "image": b64})
}

// CaptchaVerify checks the captcha without consuming it, used for client-side
// blur validation.
func (a *AuthController) CaptchaVerify(ctx *gin.Context) {
	var req struct {
		ID     string `json:"captcha_id"`
		Answer string `json:"captcha_answer"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "invalid request payload")
		return
	}
	if !utils.VerifyCaptchaNoConsume(strings.TrimSpace(req.ID), strings.TrimSpace(req.Answer)) {
		utils.Error(ctx, http.StatusBadRequest, 40062, "captcha does not match")
		return
	}
	utils.Success(ctx, gin.H{"ok": true})
}

// ListUsers returns the member directory with pagination.
func (a *AuthController) ListUsers(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var total int64
	if err := a.db.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to count users")
		return
	}

	var users []models.User
	if err := a.db.Order("username ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to retrieve users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, sanitizeUserResponse(u))
	}
	utils.Success(ctx, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// GoogleLogin generates the Google authorization URL with a single-use state.
func (a *AuthController) GoogleLogin(ctx *gin.Context) {
	cfg, err := a.googleOAuthConfig()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, err.Error())
		return
	}

	state := uuid.NewString()
	utils.SaveState(state, 10*time.Minute)

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	utils.Success(ctx, gin.H{"authorization_url": url, "state": state})
}

// GoogleCallback exchanges the authorization code for an identity and issues a JWT.
func (a *AuthController) GoogleCallback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")

	if code == "" || state == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "missing code or state")
		return
	}
	if !utils.ConsumeState(state) {
		utils.Error(ctx, http.StatusBadRequest, 40006, "invalid or expired state")
		return
	}

	cfg, err := a.googleOAuthConfig()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, err.Error())
		return
	}

	token, err := cfg.Exchange(context.Background(), code)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40007, "failed to exchange code")
		return
	}

	userInfo, err := fetchGoogleUser(token)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50005, err.Error())
		return
	}

	user, err := a.findOrCreateOAuthUser("google", userInfo)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to persist user")
		return
	}

	jwtToken, err := utils.GenerateToken(user.ID, user.Username, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{"token": jwtToken, "user": sanitizeUserResponseWithAdmin(*user)})
}

func (a *AuthController) googleOAuthConfig() (*oauth2.Config, error) {
	cfg := config.Get()
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("google oauth not configured")
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  fmt.Sprintf("%s/api/v1/auth/oauth/google/callback", cfg.OAuthRedirectBase),
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}, nil
}

type oauthUser struct {
	ID          string
	Username    string
	DisplayName string
	Email       string
}

func (a *AuthController) findOrCreateOAuthUser(provider string, data *oauthUser) (*models.User, error) {
	var user models.User
	err := a.db.Where("provider = ? AND provider_id = ?", provider, data.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username := a.ensureUniqueUsername(data.Username, provider, data.ID)
	user = models.User{
		Username:   username,
		Email:      strings.ToLower(strings.TrimSpace(data.Email)),
		Provider:   provider,
		ProviderID: data.ID,
		RegisterIP: "oauth",
	}
	if err := a.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func fetchGoogleUser(token *oauth2.Token) (*oauthUser, error) {
	req, _ := http.NewRequest("GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token.AccessToken))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google user info request failed: %s", resp.Status)
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return &oauthUser{
		ID:          payload.ID,
		Username:    payload.Email,
		DisplayName: payload.Name,
		Email:       payload.Email,
	}, nil
}

func (a *AuthController) ensureUniqueUsername(base, provider, id string) string {
	base = sanitizeUsername(base)
	if base == "" {
		base = sanitizeUsername(fmt.Sprintf("%s_%s", provider, id))
		if base == "" {
			base = fmt.Sprintf("user_%s", id)
		}
	}

	candidate := base
	suffix := 1
	for {
		var count int64
		if err := a.db.Model(&models.User{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
			return candidate
		}
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, suffix)
		suffix++
	}
}

func sanitizeUsername(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	var builder strings.Builder
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r == '_' || r == '-' || r == '.':
			builder.WriteRune('_')
		}
	}
	return strings.Trim(builder.String(), "_")
}

func validUsername(s string) bool {
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' || r == '_' {
			continue
		}
		return false
	}
	return true
}

func sanitizeUserResponse(user models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"bio":          user.Bio,
		"contact":      user.Contact,
		"provider":     user.Provider,
		"perks":        user.Perks,
		"login_streak": user.LoginStreak,
		"created_at":   user.CreatedAt,
	}
}

// isAdminUsername checks whether given username is configured as an admin (case-insensitive).
func isAdminUsername(username string) bool {
	uname := strings.TrimSpace(username)
	if uname == "" {
		return false
	}
	cfg := config.Get()
	for _, u := range cfg.AdminUsernames {
		if strings.EqualFold(strings.TrimSpace(u), uname) {
			return true
		}
	}
	return false
}

// sanitizeUserResponseWithAdmin includes is_admin for authenticated responses.
func sanitizeUserResponseWithAdmin(user models.User) gin.H {
	m := sanitizeUserResponse(user)
	m["is_admin"] = isAdminUsername(user.Username)
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
