package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("email already registered")

type LoginAttempt struct {
	FailedAttempts int
	LastAttempt    time.Time
	LockedUntil    time.Time
}

type AuthServiceConfig struct {
	SessionExpiry     int
	SecureCookie      bool
	CookieDomain      string
	LoginTimeout      int
	LoginMaxRetries   int
	SessionCookieName string
	HMACSecret        string
}

type AuthService struct {
	config        AuthServiceConfig
	queries       *repository.Queries
	loginAttempts map[string]*LoginAttempt
	loginMutex    sync.RWMutex
	store         *sessions.CookieStore
}

func NewAuthService(config AuthServiceConfig, queries *repository.Queries) *AuthService {
	return &AuthService{
		config:        config,
		queries:       queries,
		loginAttempts: make(map[string]*LoginAttempt),
	}
}

func (auth *AuthService) Init() error {
	store := sessions.NewCookieStore([]byte(auth.config.HMACSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   auth.config.SessionExpiry,
		Secure:   auth.config.SecureCookie,
		HttpOnly: true,
		Domain:   auth.config.CookieDomain,
	}
	auth.store = store
	return nil
}

func (auth *AuthService) Register(ctx context.Context, email string, password string, firstName string, lastName string) (repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := auth.queries.GetUserByEmail(ctx, email); err == nil {
		return repository.User{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return repository.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, err
	}

	user := repository.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now().Unix(),
	}

	err = auth.queries.CreateUser(ctx, repository.CreateUserParams{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	})

	if err != nil {
		return repository.User{}, err
	}

	err = auth.queries.UpsertProfile(ctx, repository.UpsertProfileParams{
		UserID:    user.ID,
		FirstName: firstName,
		LastName:  lastName,
		UpdatedAt: time.Now().Unix(),
	})

	if err != nil {
		return repository.User{}, err
	}

	return user, nil
}

// VerifyUser checks the password against the stored bcrypt hash. A
// missing user still runs a compare so timing does not reveal existence.
func (auth *AuthService) VerifyUser(ctx context.Context, email string, password string) (repository.User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := auth.queries.GetUserByEmail(ctx, email)

	if err != nil {
		bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4cZPK1P/Ca9aOcmz5TCAZMF1GT2"), []byte(password))
		return repository.User{}, false
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return repository.User{}, false
	}

	return user, true
}

func (auth *AuthService) IsAccountLocked(identifier string) (bool, int) {
	auth.loginMutex.RLock()
	defer auth.loginMutex.RUnlock()

	if auth.config.LoginMaxRetries <= 0 || auth.config.LoginTimeout <= 0 {
		return false, 0
	}

	attempt, exists := auth.loginAttempts[identifier]
	if !exists {
		return false, 0
	}

	if attempt.LockedUntil.After(time.Now()) {
		remaining := int(time.Until(attempt.LockedUntil).Seconds())
		return true, remaining
	}

	return false, 0
}

func (auth *AuthService) RecordLoginAttempt(identifier string, success bool) {
	if auth.config.LoginMaxRetries <= 0 || auth.config.LoginTimeout <= 0 {
		return
	}

	auth.loginMutex.Lock()
	defer auth.loginMutex.Unlock()

	attempt, exists := auth.loginAttempts[identifier]
	if !exists {
		attempt = &LoginAttempt{}
		auth.loginAttempts[identifier] = attempt
	}

	attempt.LastAttempt = time.Now()

	if success {
		attempt.FailedAttempts = 0
		attempt.LockedUntil = time.Time{}
		return
	}

	attempt.FailedAttempts++

	if attempt.FailedAttempts >= auth.config.LoginMaxRetries {
		attempt.LockedUntil = time.Now().Add(time.Duration(auth.config.LoginTimeout) * time.Second)
		log.Warn().Str("identifier", identifier).Int("timeout", auth.config.LoginTimeout).Msg("Account locked due to too many failed login attempts")
	}
}

func (auth *AuthService) GetSession(c *gin.Context) (*sessions.Session, error) {
	session, err := auth.store.Get(c.Request, auth.config.SessionCookieName)

	// An invalid session cookie should not poison the request, clear it and retry
	if err != nil {
		log.Debug().Err(err).Msg("Invalid session, clearing cookie and retrying")
		c.SetCookie(auth.config.SessionCookieName, "", -1, "/", auth.config.CookieDomain, auth.config.SecureCookie, true)
		session, err = auth.store.Get(c.Request, auth.config.SessionCookieName)
		if err != nil {
			return nil, err
		}
	}

	return session, nil
}

func (auth *AuthService) CreateSessionCookie(c *gin.Context, data *config.SessionCookie) error {
	session, err := auth.GetSession(c)
	if err != nil {
		return err
	}

	session.Values["userId"] = data.UserID
	session.Values["email"] = data.Email
	session.Values["name"] = data.Name
	session.Values["expiry"] = time.Now().Add(time.Duration(auth.config.SessionExpiry) * time.Second).Unix()

	err = session.Save(c.Request, c.Writer)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (auth *AuthService) DeleteSessionCookie(c *gin.Context) error {
	session, err := auth.GetSession(c)
	if err != nil {
		return err
	}

	for key := range session.Values {
		delete(session.Values, key)
	}
	session.Options.MaxAge = -1

	return session.Save(c.Request, c.Writer)
}

func (auth *AuthService) GetSessionCookie(c *gin.Context) (config.SessionCookie, error) {
	session, err := auth.GetSession(c)
	if err != nil {
		return config.SessionCookie{}, err
	}

	userID, userIDOk := session.Values["userId"].(string)
	email, emailOk := session.Values["email"].(string)
	name, nameOk := session.Values["name"].(string)
	expiry, expiryOk := session.Values["expiry"].(int64)

	if !userIDOk || !emailOk || !nameOk || !expiryOk {
		return config.SessionCookie{}, nil
	}

	if time.Now().Unix() > expiry {
		log.Debug().Msg("Session cookie expired")
		auth.DeleteSessionCookie(c)
		return config.SessionCookie{}, nil
	}

	return config.SessionCookie{
		UserID: userID,
		Email:  email,
		Name:   name,
	}, nil
}
