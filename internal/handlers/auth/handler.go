package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/auth/model/dto"
	"tripplanner/internal/domains/auth/service"
	"tripplanner/shared/constant"
	"tripplanner/shared/validator"
	"tripplanner/transport/http/response"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handler.Signup)
		r.Post("/login", handler.Login)
		r.Post("/logout", handler.Logout)
		r.Get("/state", handler.State)
	})
}

// Signup handles account creation
// @Summary Create an account
// @Description Create an account and sign it in. Emails are compared case-insensitively.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 201 {object} response.Data[dto.SessionResponse] "Welcome! Your account was created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/signup [post]
func (handler *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Signup")
	defer scope.End()

	req := dto.SignupRequest{}

	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Signup(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign up")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Account created")

	response.WithJSON(w, http.StatusCreated, res)
}

// Login handles user login
// @Summary Login a user
// @Description Sign in with email and password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in")

	response.WithJSON(w, http.StatusOK, res)
}

// Logout clears the current session
// @Summary Logout
// @Description Clear the current session. Succeeds even when nobody is signed in.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message "Logged out"
// @Failure 500 {object} response.Error
// @Router /v1/auth/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	if err := handler.service.Logout(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Logged out")
}

// State reports who is signed in
// @Summary Session state
// @Description Whether someone is signed in and the label shown for them.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.StateResponse] "Session state"
// @Failure 500 {object} response.Error
// @Router /v1/auth/state [get]
func (handler *Handler) State(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".State")
	defer scope.End()

	res, err := handler.service.State(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session state")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
