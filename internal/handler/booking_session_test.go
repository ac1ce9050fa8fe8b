package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/payment"
	"cinebook/internal/seatmap"
	"cinebook/internal/session"
)

const testUserID = uint64(7)

func newSessionEnv() (*BookingSessionHandler, *session.Store, *session.Session) {
	store := session.NewStore(time.Minute)
	s := store.Open(testUserID, 42, 100000, seatmap.DefaultConfig(), map[string]string{"A2": "x"})
	h := NewBookingSessionHandler(store, nil, nil, nil, payment.Simulator{})
	return h, store, s
}

// invoke runs one session handler with the JWT context already populated.
func invoke(h echo.HandlerFunc, method, sid, body string, userID uint64) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("sid")
	c.SetParamValues(sid)
	c.Set("user_id", userID)
	_ = h(c)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) session.State {
	t.Helper()
	var st session.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestToggleSelectsAndDeselects(t *testing.T) {
	h, _, s := newSessionEnv()

	rec := invoke(h.Toggle, http.MethodPost, s.ID, `{"seat_id":"A1"}`, testUserID)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, []string{"A1"}, st.Selected)
	assert.Equal(t, int64(100000), st.TotalCents)

	rec = invoke(h.Toggle, http.MethodPost, s.ID, `{"seat_id":"A1"}`, testUserID)
	require.Equal(t, http.StatusOK, rec.Code)
	st = decodeState(t, rec)
	assert.Empty(t, st.Selected)
	assert.Zero(t, st.TotalCents)
}

func TestToggleLowercaseSeatID(t *testing.T) {
	h, _, s := newSessionEnv()

	rec := invoke(h.Toggle, http.MethodPost, s.ID, `{"seat_id":"f5"}`, testUserID)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, []string{"F5"}, st.Selected)
	assert.Equal(t, int64(150000), st.TotalCents)
}

func TestToggleOccupiedSeatRejected(t *testing.T) {
	h, _, s := newSessionEnv()

	rec := invoke(h.Toggle, http.MethodPost, s.ID, `{"seat_id":"A2"}`, testUserID)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
}

func TestToggleUnknownSeatRejected(t *testing.T) {
	h, _, s := newSessionEnv()

	rec := invoke(h.Toggle, http.MethodPost, s.ID, `{"seat_id":"Z99"}`, testUserID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleMissingSeatID(t *testing.T) {
	h, _, s := newSessionEnv()

	rec := invoke(h.Toggle, http.MethodPost, s.ID, `{}`, testUserID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRejectsOtherUser(t *testing.T) {
	h, _, s := newSessionEnv()

	rec := invoke(h.Get, http.MethodGet, s.ID, "", uint64(99))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUnknownSession(t *testing.T) {
	h, _, _ := newSessionEnv()

	rec := invoke(h.Get, http.MethodGet, "no-such-session", "", testUserID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContinueRequiresSelection(t *testing.T) {
	h, _, s := newSessionEnv()

	rec := invoke(h.Continue, http.MethodPost, s.ID, "", testUserID)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, session.StepSelect, s.Step())
}

func TestContinueAndBackKeepSelection(t *testing.T) {
	h, _, s := newSessionEnv()
	require.NoError(t, s.Toggle("A1"))
	require.NoError(t, s.Toggle("F5"))

	rec := invoke(h.Continue, http.MethodPost, s.ID, "", testUserID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.StepConfirm, decodeState(t, rec).Step)

	rec = invoke(h.Back, http.MethodPost, s.ID, "", testUserID)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, session.StepSelect, st.Step)
	assert.Equal(t, []string{"A1", "F5"}, st.Selected)
}

func TestDiscardRemovesSession(t *testing.T) {
	h, store, s := newSessionEnv()

	rec := invoke(h.Discard, http.MethodDelete, s.ID, "", testUserID)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, store.Len())

	rec = invoke(h.Get, http.MethodGet, s.ID, "", testUserID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDiscardEvictsSessionOnce(t *testing.T) {
	store := session.NewStore(time.Minute)
	evicted := 0
	store.OnEvict(func() { evicted++ })
	s := store.Open(testUserID, 42, 100000, seatmap.DefaultConfig(), nil)
	h := NewBookingSessionHandler(store, nil, nil, nil, payment.Simulator{})

	rec := invoke(h.Discard, http.MethodDelete, s.ID, "", testUserID)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, evicted)

	// A second discard of the same session finds nothing to evict.
	rec = invoke(h.Discard, http.MethodDelete, s.ID, "", testUserID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, evicted)
}

func TestPayRejectedBeforeConfirm(t *testing.T) {
	h, _, s := newSessionEnv()
	require.NoError(t, s.Toggle("A1"))

	rec := invoke(h.Pay, http.MethodPost, s.ID, `{"payment_method":"card"}`, testUserID)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, session.StepSelect, s.Step())
}
