package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"tripplanner/config"
	"tripplanner/infras/otel"
	"tripplanner/shared/constant"
	"tripplanner/shared/storage"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	store  storage.Storage
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, store storage.Storage) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		store:  store,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		next.ServeHTTP(ww, r.WithContext(ctx))

		// the route pattern is only known once chi has matched the request
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			scope.SetAttribute("http.route", routeCtx.RoutePattern())
		}

		scope.SetAttribute("http.status_code", ww.Status())
	})
}
