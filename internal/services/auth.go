package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Credentials, giriş formundan gelen bilgiler
type Credentials struct {
	Email    string
	Password string
}

// Identity, başarılı bir girişten sonra oturuma yazılacak kimlik
type Identity struct {
	UserID   *int
	Username string
	IsAdmin  bool
}

// Authenticator, kimlik doğrulama yöntemlerini tanımlar
type Authenticator interface {
	Name() string
	Authenticate(ctx context.Context, creds Credentials) (Identity, error)
}

// UserStore, kullanıcı kayıtlarına erişimi tanımlar
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

var errBadCredentials = newError(KindAuth, "Invalid email or password.", nil)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareUnknown, bilinmeyen e-posta için de bir bcrypt karşılaştırması yapar
func compareUnknown(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("storefront-unknown-user"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// PasswordAuthenticator, kullanıcıları users tablosuna karşı doğrular
type PasswordAuthenticator struct {
	users UserStore
}

// NewPasswordAuthenticator, yeni bir PasswordAuthenticator oluşturur
func NewPasswordAuthenticator(users UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users}
}

func (pa *PasswordAuthenticator) Name() string { return "password" }

func (pa *PasswordAuthenticator) Authenticate(ctx context.Context, creds Credentials) (Identity, error) {
	user, err := pa.users.GetUserByEmail(ctx, creds.Email)
	if errors.Is(err, database.ErrNotFound) {
		compareUnknown(creds.Password)
		return Identity{}, errBadCredentials
	}
	if err != nil {
		return Identity{}, newError(KindInternal, "Login failed, please try again.", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return Identity{}, errBadCredentials
	}
	id := user.ID
	return Identity{UserID: &id, Username: user.Username}, nil
}

// FixedAdminAuthenticator, yapılandırmadaki sabit admin bilgilerini kontrol eder
type FixedAdminAuthenticator struct {
	email    string
	password string
}

// NewFixedAdminAuthenticator, yeni bir FixedAdminAuthenticator oluşturur
func NewFixedAdminAuthenticator(email, password string) *FixedAdminAuthenticator {
	return &FixedAdminAuthenticator{email: email, password: password}
}

func (fa *FixedAdminAuthenticator) Name() string { return "admin" }

func (fa *FixedAdminAuthenticator) Authenticate(_ context.Context, creds Credentials) (Identity, error) {
	if fa.email == "" || fa.password == "" {
		return Identity{}, errBadCredentials
	}
	emailOK := subtle.ConstantTimeCompare([]byte(creds.Email), []byte(fa.email))
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(fa.password))
	if emailOK&passOK != 1 {
		return Identity{}, errBadCredentials
	}
	return Identity{Username: "Admin", IsAdmin: true}, nil
}

// AuthService, kayıt, giriş ve çıkış işlemlerini yönetir
type AuthService struct {
	users    UserStore
	sessions database.SessionStore
	email    *EmailService
	security *SecurityLogger
	metrics  *metrics.Metrics

	// HashCost, bcrypt maliyeti; testler düşük bir değer kullanır
	HashCost int
}

// NewAuthService, yeni bir AuthService örneği oluşturur
func NewAuthService(users UserStore, sessions database.SessionStore, email *EmailService, security *SecurityLogger, m *metrics.Metrics) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		email:    email,
		security: security,
		metrics:  m,
		HashCost: bcrypt.DefaultCost,
	}
}

// Register, yeni bir kullanıcı kaydı oluşturur
func (as *AuthService) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)

	if username == "" || email == "" || form.Password == "" {
		as.metrics.Registration("invalid")
		return nil, newError(KindValidation, "Please fill in all fields.", nil)
	}
	if !emailRegex.MatchString(email) {
		as.metrics.Registration("invalid")
		return nil, newError(KindValidation, "Please enter a valid email address.", nil)
	}
	if form.Password != form.ConfirmPassword {
		as.metrics.Registration("invalid")
		return nil, newError(KindValidation, "Passwords do not match.", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), as.HashCost)
	if err != nil {
		log.Printf("AuthService.Register - Error hashing password: %v", err)
		as.metrics.Registration("error")
		return nil, newError(KindInternal, "Registration failed, please try again.", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := as.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			as.metrics.Registration("conflict")
			as.security.LogSecurityEvent(ctx, "REGISTER_CONFLICT", "email="+email)
			return nil, newError(KindConflict, fmt.Sprintf("The email %s is already registered.", email), err)
		}
		log.Printf("AuthService.Register - Error creating user: %v", err)
		as.metrics.Registration("error")
		return nil, newError(KindInternal, "Registration failed, please try again.", err)
	}

	if err := as.email.SendWelcomeEmail(user.Email, user.Username); err != nil {
		log.Printf("AuthService.Register - Error sending welcome email: %v", err)
	}
	as.metrics.Registration("ok")
	as.security.LogSecurityEvent(ctx, "REGISTER", fmt.Sprintf("user_id=%d email=%s", user.ID, email))
	log.Printf("AuthService.Register - User created: %d", user.ID)
	return user, nil
}

// Login, kimliği doğrular ve oturumu yeni kimlikle yeniden kurar. Girişten
// önceki sepet ve istek listesi yalnızca boş değilse geri yazılır.
func (as *AuthService) Login(ctx context.Context, sessionID string, auth Authenticator, creds Credentials) (Identity, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return Identity{}, newError(KindValidation, "Email and password are required.", nil)
	}

	identity, err := auth.Authenticate(ctx, creds)
	if err != nil {
		as.metrics.Login(auth.Name(), "failure")
		as.security.LogSecurityEvent(ctx, "LOGIN_FAILED", fmt.Sprintf("authenticator=%s email=%s", auth.Name(), creds.Email))
		return Identity{}, err
	}

	err = updateSession(ctx, as.sessions, sessionID, func(state *models.SessionState) {
		cart := state.Cart
		wishlist := state.Wishlist

		state.Clear()
		state.UserID = identity.UserID
		state.Username = identity.Username
		state.IsAdmin = identity.IsAdmin

		if !cart.IsEmpty() {
			state.Cart = cart
		}
		if !wishlist.IsEmpty() {
			state.Wishlist = wishlist
		}
		state.AddFlash("success", "Welcome back, "+identity.Username+"!")
	})
	if err != nil {
		return Identity{}, err
	}

	as.metrics.Login(auth.Name(), "success")
	as.security.LogSecurityEvent(ctx, "LOGIN", fmt.Sprintf("authenticator=%s email=%s", auth.Name(), creds.Email))
	log.Printf("AuthService.Login - SessionID: %s, User: %s, Admin: %t", sessionID, identity.Username, identity.IsAdmin)
	return identity, nil
}

// Logout, oturumdaki her şeyi siler
func (as *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := as.sessions.Delete(ctx, sessionID); err != nil {
		return newError(KindInternal, "Could not end your session.", err)
	}
	as.security.LogSecurityEvent(ctx, "LOGOUT", "session="+sessionID)
	log.Printf("AuthService.Logout - SessionID: %s", sessionID)
	return nil
}
