package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/auth/model/dto"
	sessionModel "tripplanner/internal/domains/session/model"
	sessionRepo "tripplanner/internal/domains/session/repository"
	userModel "tripplanner/internal/domains/user/model"
	userRepo "tripplanner/internal/domains/user/repository"
	"tripplanner/shared/constant"
	"tripplanner/shared/failure"
	"tripplanner/shared/password"
	"tripplanner/shared/validator"
)

type Auth interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.SessionResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error)
	Logout(ctx context.Context) error
	State(ctx context.Context) (dto.StateResponse, error)
}

type serviceImpl struct {
	// mu serialises changes to the users list and the current session
	mu          sync.Mutex
	userRepo    userRepo.User
	sessionRepo sessionRepo.Session
	otel        otel.Otel
}

func New(userRepo userRepo.User, sessionRepo sessionRepo.Session, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Signup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	if _, found := findByEmail(users, req.Email); found {
		log.Info().Str("email", req.Email).Msg("signup rejected, email already registered")

		return res, failure.EmailTaken
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	users = append(users, req.ToUserModel(hashedPassword))

	if err = s.userRepo.SaveAll(ctx, users); err != nil {
		log.Error().Err(err).Msg("failed to save users")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	session := sessionModel.Session{Name: req.Name, Email: req.Email}

	if err = s.sessionRepo.Set(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to set session")

		return res, fmt.Errorf("failed to set session: %w", err)
	}

	log.Info().Str("email", req.Email).Msg("account created")

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	idx, found := findByCredentials(users, req.Email, req.Password)
	if !found {
		return res, failure.InvalidCredentials
	}

	user := users[idx]

	if !password.IsHash(user.Password) {
		s.upgradePassword(ctx, users, idx, req.Password)
	}

	session := sessionModel.Session{Name: user.Name, Email: user.Email}

	if err = s.sessionRepo.Set(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to set session")

		return res, fmt.Errorf("failed to set session: %w", err)
	}

	log.Info().Str("email", user.Email).Msg("logged in")

	res.FromModel(session)

	return res, nil
}

// upgradePassword replaces a clear text password saved by older clients with
// its hash. Failing to do so does not fail the login.
func (s *serviceImpl) upgradePassword(ctx context.Context, users []userModel.User, idx int, plain string) {
	hashed, err := password.Hash(plain)
	if err != nil {
		log.Warn().Err(err).Msg("failed to hash legacy password")

		return
	}

	users[idx].Password = hashed

	if err := s.userRepo.SaveAll(ctx, users); err != nil {
		log.Warn().Err(err).Str("email", users[idx].Email).Msg("failed to upgrade legacy password")

		return
	}

	log.Info().Str("email", users[idx].Email).Msg("legacy password upgraded")
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.sessionRepo.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear session")

		return fmt.Errorf("failed to logout: %w", err)
	}

	log.Info().Msg("logged out")

	return nil
}

func (s *serviceImpl) State(ctx context.Context) (res dto.StateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.State")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.sessionRepo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current session")

		return res, fmt.Errorf("failed to get current session: %w", err)
	}

	res.FromSession(current)

	return res, nil
}

// findByCredentials returns the first user whose email and password both
// match. Older stores may hold the same email more than once.
func findByCredentials(users []userModel.User, email, plain string) (int, bool) {
	for i, user := range users {
		if !strings.EqualFold(user.Email, email) {
			continue
		}

		err := password.Verify(plain, user.Password)
		if err == nil {
			return i, true
		}

		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("email", user.Email).Msg("stored password could not be checked")
		}
	}

	return -1, false
}

func findByEmail(users []userModel.User, email string) (int, bool) {
	for i, user := range users {
		if strings.EqualFold(user.Email, email) {
			return i, true
		}
	}

	return -1, false
}
