package funkos

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// SignUpPayload carries the attributes needed to register an identity
type SignUpPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the structural rules for a registration
func (r SignUpPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 50), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 100)),
	)
}

// Auther orchestrates sign up and sign in over a user store, the
// credential hasher, and the token service
type Auther struct {
	store        UserStore
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator. The token service failed
// fast at construction if the signing key was missing, so every error
// from here on is a per request business outcome.
func NewAuthenticator(store UserStore, tokenService TokenService) *Auther {
	return &Auther{
		store:        store,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

var _ Authenticator = (*Auther)(nil)

// SignUp registers a new identity with role USER and issues its first
// token. The duplicate checks and the insert are deliberately not wrapped
// in one transaction: two concurrent sign ups for the same name can both
// pass the check. The unique constraints on the users table backstop that
// race at the store.
func (s *Auther) SignUp(ctx context.Context, payload SignUpPayload) (*AuthResponse, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid sign up payload")
	}

	s.logger.Info("SignUp request", "username", payload.Username)

	existing, err := s.store.FindByUsername(ctx, payload.Username)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username")
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.store.FindByEmail(ctx, payload.Email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, &User{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: hash,
		Role:         RoleUser,
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	resp, err := s.authResponse(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", user.Username)

	return resp, nil
}

// SignIn verifies credentials and issues a fresh token. An unknown
// username and a password mismatch produce the identical error so the
// response does not enumerate accounts.
func (s *Auther) SignIn(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	s.logger.Info("SignIn request", "username", identifier)

	user, err := s.store.FindByUsername(ctx, identifier)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up user")
	}
	if user == nil {
		s.logger.Warn("SignIn failed: unknown username", "username", identifier)
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Warn("SignIn failed: password mismatch", "username", identifier)
		return nil, ErrInvalidCredentials
	}

	resp, err := s.authResponse(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed in", "username", user.Username)

	return resp, nil
}

func (s *Auther) authResponse(user *User) (*AuthResponse, error) {
	token, err := s.tokenService.Generate(user.Identity())
	if err != nil {
		s.logger.Error("token generation failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue token")
	}

	return &AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}
