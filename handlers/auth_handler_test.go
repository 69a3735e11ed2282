package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solosphere/models"
	"solosphere/services"
)

// sessionRouter wires the session routes and one guarded route the way
// main does, against a real token service.
func sessionRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	sessions := services.NewSessionService("test-secret", false)
	auth := NewAuthHandler(sessions)
	bids := newFakeBidStore()
	bids.bids = []models.Bid{{BuyerEmail: "buyer@x.com", BidderEmail: "a@x.com"}}
	bidHandler := NewBidHandler(bids, &fakeJobCounter{})

	router := httprouter.New()
	router.POST("/jwt", auth.CreateToken)
	router.GET("/logoutJWT", auth.Logout)
	router.GET("/bidRequest/:email", auth.RequireSession(bidHandler.ListByBuyer))
	return router
}

func issueCookie(t *testing.T, router *httprouter.Router, email string) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"`+email+`"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":true}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, services.CookieName, cookies[0].Name)
	return cookies[0]
}

func TestSessionCookieFlow(t *testing.T) {
	router := sessionRouter(t)
	cookie := issueCookie(t, router, "buyer@x.com")

	// The buyer sees their own bid requests.
	req := httptest.NewRequest(http.MethodGet, "/bidRequest/buyer@x.com", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")

	// The same cookie does not open another buyer's bid requests.
	req = httptest.NewRequest(http.MethodGet, "/bidRequest/other@x.com", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsMissingCookie(t *testing.T) {
	router := sessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/bidRequest/buyer@x.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized access")
}

func TestGuardRejectsBadToken(t *testing.T) {
	router := sessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/bidRequest/buyer@x.com", nil)
	req.AddCookie(&http.Cookie{Name: services.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	router := sessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/logoutJWT", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, services.CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestCreateTokenRejectsBadBody(t *testing.T) {
	router := sessionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
