package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
	"os"

	"github.com/sanjaysagar12/EcoFinds/config"
	"github.com/sanjaysagar12/EcoFinds/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

func oauthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleSignIn redirects the client to the Google consent screen.
func GoogleSignIn(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := oauthConfig(cfg).AuthCodeURL("state", oauth2.AccessTypeOnline)
		c.Redirect(http.StatusFound, url)
	}
}

// GoogleCallback exchanges the authorization code, upserts the user and
// redirects back to the frontend with a signed session token.
func GoogleCallback(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
			return
		}

		conf := oauthConfig(cfg)
		token, err := conf.Exchange(c.Request.Context(), code)
		if err != nil {
			logger.Error().Err(err).Msg("google code exchange failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange authorization code"})
			return
		}

		client := conf.Client(c.Request.Context(), token)
		resp, err := client.Get(googleUserInfoURL)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to fetch Google profile"})
			return
		}
		defer resp.Body.Close()

		var info googleUserInfo
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google profile response"})
			return
		}

		user, err := findOrCreateGoogleUser(db, info)
		if err != nil {
			logger.Error().Err(err).Str("email", info.Email).Msg("google sign-in upsert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in with Google"})
			return
		}

		accessToken, err := IssueToken(user.ID, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		logger.Info().Str("user_id", user.ID).Msg("google sign-in completed")
		c.Redirect(http.StatusFound, cfg.FrontendURL+"/auth/callback?token="+accessToken)
	}
}

func findOrCreateGoogleUser(db *gorm.DB, info googleUserInfo) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", info.Email).First(&user).Error

	if err == gorm.ErrRecordNotFound {
		user = models.User{
			ID:        uuid.NewString(),
			Name:      info.Name,
			Email:     info.Email,
			Avatar:    info.Picture,
			Provider:  "google",
			Role:      models.RoleUser,
			Cart:      &models.Cart{ID: uuid.NewString()},
			CreatedAt: time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	// Existing account: refresh profile fields from Google. A stale
	// profile is not worth failing the sign-in over.
	if err := db.Model(&user).Updates(models.User{Name: info.Name, Avatar: info.Picture}).Error; err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("google profile refresh failed")
	}
	return &user, nil
}
