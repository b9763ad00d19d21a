package blog

import (
	"context"
	"strings"

	"ob-go/internal/gateway"
	"ob-go/internal/model"
	"ob-go/internal/session"
)

// AuthService owns the login, register and logout flows. Together with the
// gateway's 401 handler it is the only writer of the session store.
type AuthService struct {
	gw       Gateway
	sessions *session.Store
	log      Logger
}

// NewAuthService creates an AuthService with the provided dependencies.
func NewAuthService(gw Gateway, sessions *session.Store, log Logger) *AuthService {
	return &AuthService{gw: gw, sessions: sessions, log: log}
}

// Login authenticates and persists the session. On failure the prior auth
// state is untouched. A rejected credential surfaces the server's message,
// or "Invalid username or password" when the server gave none.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*session.Session, error) {
	if err := ValidateLogin(usernameOrEmail, password); err != nil {
		return nil, err
	}

	req := model.LoginRequest{
		UsernameOrEmail: strings.TrimSpace(usernameOrEmail),
		Password:        password,
	}

	var resp model.AuthResponse
	if err := s.gw.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, loginError(err)
	}

	sess := session.Session{
		Token:    resp.Token,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     resp.Role,
	}
	if err := s.sessions.Set(sess); err != nil {
		return nil, err
	}

	s.log.Info("logged in", "username", sess.Username, "role", sess.Role)
	return &sess, nil
}

// Register creates an account. Registering implicitly authenticates, with
// the same persistence contract as Login.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*session.Session, error) {
	if err := ValidateRegistration(username, email, password); err != nil {
		return nil, err
	}

	req := model.RegisterRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}

	var resp model.AuthResponse
	if err := s.gw.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}

	sess := session.Session{
		Token:    resp.Token,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     resp.Role,
	}
	if err := s.sessions.Set(sess); err != nil {
		return nil, err
	}

	s.log.Info("registered", "username", sess.Username)
	return &sess, nil
}

// Logout clears the session. Safe to call when no session exists.
func (s *AuthService) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return err
	}
	s.log.Info("logged out")
	return nil
}

// loginError rewrites the generic 401 fallback into a credential message.
// A 401 from the login endpoint is a rejected credential, not an expired
// session, and the gateway never clears auth state for it.
func loginError(err error) error {
	if e := gateway.AsError(err); e != nil && e.Kind == gateway.KindUnauthorized && !e.FromServer {
		rewritten := *e
		rewritten.Message = "Invalid username or password"
		return &rewritten
	}
	return err
}
