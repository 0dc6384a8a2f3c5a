package services

import (
	"net/http"

	"github.com/pethive/pethive/app/fallback"
	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/app/repositories"
	"github.com/pethive/pethive/config"
	"github.com/pethive/pethive/pkg/auth"
	"github.com/pethive/pethive/pkg/database"
	"github.com/pethive/pethive/pkg/logger"
	"github.com/pethive/pethive/pkg/middleware"
	"github.com/pethive/pethive/pkg/session"
)

// Session keys used by the auth flow.
const (
	sessionUserID   = "user_id"
	sessionIdentity = "identity"
)

// AuthService resolves credentials and sessions to identities. Store
// connectivity failures degrade to the demo experience instead of failing.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a customer account and returns its identity.
// A duplicate email is ErrEmailTaken. When the store is unreachable the
// returned identity is session-scoped only (Kind "demo").
func (s *AuthService) Register(email, password, name string) (models.Identity, error) {
	if name == "" {
		name = "New User"
	}

	if !database.Available() {
		return s.demoRegistration(email, name), nil
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return models.Identity{}, ErrEmailTaken
	} else if !isMiss(err) {
		logger.Warn("auth: register degraded to demo identity", "error", err)
		return s.demoRegistration(email, name), nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Identity{}, err
	}

	user := models.User{
		Email:    email,
		Password: hash,
		Name:     name,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(&user); err != nil {
		logger.Warn("auth: register degraded to demo identity", "error", err)
		return s.demoRegistration(email, name), nil
	}

	return models.FromUser(user), nil
}

func (s *AuthService) demoRegistration(email, name string) models.Identity {
	return models.Identity{
		Kind:  models.IdentityDemo,
		Email: email,
		Name:  name,
		Role:  models.RoleCustomer,
	}
}

// Login checks the store first and the fixed demo table second. A wrong
// password is ErrInvalidCredentials on both paths.
func (s *AuthService) Login(email, password string) (models.Identity, error) {
	if database.Available() {
		user, err := s.users.FindByEmail(email)
		if err == nil {
			if user.Password == "" || !auth.CheckPassword(user.Password, password) {
				return models.Identity{}, ErrInvalidCredentials
			}
			return models.FromUser(user), nil
		}
		if !isMiss(err) {
			logger.Warn("auth: login falling back to demo users", "error", err)
		}
	}

	demo, ok := fallback.FindUser(email)
	if !ok || !auth.CheckPassword(demo.Password, password) {
		return models.Identity{}, ErrInvalidCredentials
	}

	identity := models.FromUser(demo)
	identity.Kind = models.IdentityDemo
	return identity, nil
}

// MockLogin finds or creates a passwordless user. Disabled in production;
// the controller enforces that before calling.
func (s *AuthService) MockLogin(email, name string) (models.Identity, error) {
	if name == "" {
		name = "Test User"
	}

	if !database.Available() {
		return s.demoRegistration(email, name), nil
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if !isMiss(err) {
			logger.Warn("auth: mock login degraded to demo identity", "error", err)
			return s.demoRegistration(email, name), nil
		}
		user = models.User{
			Email:   email,
			Name:    name,
			Role:    models.RoleCustomer,
			Picture: "https://via.placeholder.com/150",
		}
		if err := s.users.Create(&user); err != nil {
			logger.Warn("auth: mock login degraded to demo identity", "error", err)
			return s.demoRegistration(email, name), nil
		}
	}

	return models.FromUser(user), nil
}

// GoogleLogin verifies the ID token and upserts the user by email,
// refreshing name and picture. An invalid token is ErrInvalidCredentials;
// a store failure falls back to a session-only identity from the claims.
func (s *AuthService) GoogleLogin(idToken string) (models.Identity, error) {
	claims, err := auth.VerifyGoogleIDToken(idToken)
	if err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}

	demoFromClaims := func() models.Identity {
		return models.Identity{
			Kind:    models.IdentityDemo,
			Email:   claims.Email,
			Name:    claims.Name,
			Role:    models.RoleCustomer,
			Picture: claims.Picture,
		}
	}

	if !database.Available() {
		return demoFromClaims(), nil
	}

	user, err := s.users.FindByEmail(claims.Email)
	switch {
	case err == nil:
		user.Name = claims.Name
		user.Picture = claims.Picture
		if err := s.users.Update(&user); err != nil {
			logger.Warn("auth: google profile refresh failed", "error", err)
		}
	case isMiss(err):
		user = models.User{
			Email:   claims.Email,
			Name:    claims.Name,
			Picture: claims.Picture,
			Role:    models.RoleCustomer,
		}
		if err := s.users.Create(&user); err != nil {
			logger.Warn("auth: google login degraded to demo identity", "error", err)
			return demoFromClaims(), nil
		}
	default:
		logger.Warn("auth: google login degraded to demo identity", "error", err)
		return demoFromClaims(), nil
	}

	return models.FromUser(user), nil
}

// StartSession records the identity in the session: demo identities are
// stored whole, store-backed ones as just the user ID.
func (s *AuthService) StartSession(sess *session.Session, identity models.Identity) {
	sess.Invalidate()
	if identity.IsDemo() {
		sess.Set(sessionIdentity, identity)
		return
	}
	sess.Set(sessionUserID, identity.ID)
}

// CurrentUser resolves the session to an identity, or nil when anonymous.
// Lookups fall back to the demo table so a store outage never logs a demo
// visitor out.
func (s *AuthService) CurrentUser(sess *session.Session) *models.Identity {
	var identity models.Identity
	if sess.GetJSON(sessionIdentity, &identity) && identity.Kind != "" {
		return &identity
	}

	id, ok := sess.GetUint(sessionUserID)
	if !ok || id == 0 {
		return nil
	}

	if database.Available() {
		if user, err := s.users.FindByID(id); err == nil {
			identity = models.FromUser(user)
			return &identity
		} else if !isMiss(err) {
			logger.Warn("auth: current-user lookup degraded", "error", err)
		}
	}

	for _, demo := range fallback.Users() {
		if demo.ID == id {
			identity = models.FromUser(demo)
			identity.Kind = models.IdentityDemo
			return &identity
		}
	}
	return nil
}

// Logout invalidates the session unconditionally.
func (s *AuthService) Logout(sess *session.Session) {
	sess.Invalidate()
}

// Resolver adapts CurrentUser for middleware.Auth: the admin gate first sees
// the demo session, then the store, then the demo-admin allowlist.
func (s *AuthService) Resolver() middleware.ResolverFunc {
	return func(r *http.Request) (*middleware.Principal, bool) {
		identity := s.CurrentUser(session.FromCtx(r))
		if identity == nil {
			return nil, false
		}

		role := identity.Role
		if role != models.RoleAdmin && fallback.IsDemoAdminID(identity.ID) {
			role = models.RoleAdmin
		}

		return &middleware.Principal{
			ID:      identity.ID,
			Kind:    identity.Kind,
			Email:   identity.Email,
			Name:    identity.Name,
			Role:    role,
			Picture: identity.Picture,
		}, true
	}
}

// IsProductionLocked reports whether dev-only auth shortcuts are disabled.
func (s *AuthService) IsProductionLocked() bool {
	return config.IsProduction()
}
