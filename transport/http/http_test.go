package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/config"
	"tripplanner/infras/otel"
	authService "tripplanner/internal/domains/auth/service"
	bookingRepository "tripplanner/internal/domains/booking/repository"
	bookingService "tripplanner/internal/domains/booking/service"
	destinationRepository "tripplanner/internal/domains/destination/repository"
	destinationService "tripplanner/internal/domains/destination/service"
	sessionRepository "tripplanner/internal/domains/session/repository"
	userRepository "tripplanner/internal/domains/user/repository"
	authHandler "tripplanner/internal/handlers/auth"
	bookingHandler "tripplanner/internal/handlers/booking"
	destinationHandler "tripplanner/internal/handlers/destination"
	"tripplanner/shared/constant"
	"tripplanner/shared/storage"
	"tripplanner/shared/timezone"
	"tripplanner/transport/http/middleware"
	"tripplanner/transport/http/router"
)

func newTestServer(t *testing.T) *HTTP {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "trip-planner-test"

	ot := otel.NewNoop()
	store := storage.New(storage.NewMemoryDriver(), cfg, ot)
	sessions := sessionRepository.New(store, ot)

	destinations, err := destinationRepository.New()
	require.NoError(t, err)

	auth := authHandler.New(authService.New(userRepository.New(store, ot), sessions, ot), ot)
	booking := bookingHandler.New(bookingService.New(bookingRepository.New(store, ot), sessions, ot), ot)
	destination := destinationHandler.New(destinationService.New(destinations, ot), ot)

	r := router.New(router.DomainHandlers{
		Auth:        auth,
		Booking:     booking,
		Destination: destination,
	})

	return New(cfg, r, middleware.NewAppMiddleware(ot, cfg, store))
}

func do(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	}

	return rec, payload
}

func bookingBody(phone string) string {
	travelDate := timezone.Now().AddDate(0, 1, 0).Format(constant.TravelDateFormat)

	return `{"package":"Paris Getaway","packagePrice":50000,"bookerName":"Ann","bookerEmail":"ann@x.com",` +
		`"bookerPhone":"` + phone + `","numberOfPersons":2,"travelDate":"` + travelDate + `"}`
}

func TestHTTP_Health(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	rec, _ := do(t, handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	server.state.Store(int32(ServerStateInGracePeriod))

	rec, payload := do(t, handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, constant.ResponseErrorPrepareShutdown, payload["message"])
}

func TestHTTP_AccountAndBookingFlow(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec, _ := do(t, handler, http.MethodPost, "/v1/bookings", bookingBody("9876543210"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "booking needs a session")

	rec, _ = do(t, handler, http.MethodGet, "/v1/bookings/draft?package=Paris+Getaway&price=50000", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, payload := do(t, handler, http.MethodPost, "/v1/auth/signup", `{"name":"Ann","email":"Ann@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "ann@x.com", payload["data"].(map[string]any)["email"])

	rec, _ = do(t, handler, http.MethodPost, "/v1/auth/signup", `{"name":"Other","email":"ANN@x.com","password":"x"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, handler, http.MethodPost, "/v1/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, payload = do(t, handler, http.MethodGet, "/v1/auth/state", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["data"].(map[string]any)["loggedIn"])

	rec, _ = do(t, handler, http.MethodPost, "/v1/auth/login", `{"email":"ann@x.com","password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, handler, http.MethodPost, "/v1/auth/login", `{"email":"ann@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload = do(t, handler, http.MethodGet, "/v1/auth/state", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hi, Ann", payload["data"].(map[string]any)["label"])

	rec, payload = do(t, handler, http.MethodGet, "/v1/bookings/draft?package=Paris+Getaway&price=50000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@x.com", payload["data"].(map[string]any)["bookerEmail"])

	rec, payload = do(t, handler, http.MethodPost, "/v1/bookings", bookingBody("12345"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please enter a valid 10-digit phone number", payload["error"])

	rec, payload = do(t, handler, http.MethodPost, "/v1/bookings", bookingBody("9876543210"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.InDelta(t, 100000, payload["data"].(map[string]any)["totalPrice"], 0)

	rec, payload = do(t, handler, http.MethodGet, "/v1/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1, payload["data"].(map[string]any)["count"], 0)

	rec, _ = do(t, handler, http.MethodDelete, "/v1/bookings/5", "")
	assert.Equal(t, http.StatusOK, rec.Code, "unknown index is ignored")

	rec, _ = do(t, handler, http.MethodDelete, "/v1/bookings/99999999999999999999", "")
	assert.Equal(t, http.StatusOK, rec.Code, "index past int range is ignored")

	_, payload = do(t, handler, http.MethodGet, "/v1/bookings", "")
	assert.InDelta(t, 1, payload["data"].(map[string]any)["count"], 0)

	rec, _ = do(t, handler, http.MethodDelete, "/v1/bookings/first", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, handler, http.MethodDelete, "/v1/bookings/0", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	_, payload = do(t, handler, http.MethodGet, "/v1/bookings", "")
	assert.InDelta(t, 0, payload["data"].(map[string]any)["count"], 0)
}

func TestHTTP_Quote(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec, payload := do(t, handler, http.MethodGet, "/v1/bookings/quote?price=50000&persons=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 150000, payload["data"].(map[string]any)["totalPrice"], 0)

	rec, payload = do(t, handler, http.MethodGet, "/v1/bookings/quote?price=50000&persons=", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 50000, payload["data"].(map[string]any)["totalPrice"], 0)

	rec, _ = do(t, handler, http.MethodGet, "/v1/bookings/quote?price=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_Destinations(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec, payload := do(t, handler, http.MethodGet, "/v1/destinations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, payload["data"].(map[string]any)["destinations"], 3)

	rec, payload = do(t, handler, http.MethodGet, "/v1/destinations/tokyo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Japan", payload["data"].(map[string]any)["country"])

	rec, _ = do(t, handler, http.MethodGet, "/v1/destinations/atlantis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_BookingEvents(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/bookings/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, constant.ContentTypeEventStream, resp.Header.Get(constant.RequestHeaderContentType))

	reader := bufio.NewReader(resp.Body)

	nextData := func() map[string]any {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)

			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var payload map[string]any
				require.NoError(t, json.Unmarshal([]byte(data), &payload))

				return payload
			}
		}
	}

	assert.InDelta(t, 0, nextData()["count"], 0)

	post := func(path, body string) {
		res, err := srv.Client().Post(srv.URL+path, constant.ContentTypeJSON, strings.NewReader(body))
		require.NoError(t, err)
		res.Body.Close()
	}

	post("/v1/auth/signup", `{"name":"Ann","email":"ann@x.com","password":"pw1"}`)
	post("/v1/bookings", bookingBody("9876543210"))

	assert.InDelta(t, 1, nextData()["count"], 0)
}
