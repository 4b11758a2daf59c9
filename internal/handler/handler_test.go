package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/lock"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/repository"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	locker := lock.NewMutexLocker(5 * time.Second)
	logger := zap.NewNop()

	h := NewHandler(
		service.NewReservationService(store, locker, "JBKNP", logger),
		service.NewQueryService(store),
		service.NewExportService(store),
		logger,
	)

	router := gin.New()
	router.Use(RequestID())
	api := router.Group("/api")
	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations", h.ReadReservations)
	api.GET("/reservations/export", h.ExportReservations)
	return router
}

type testEnvelope struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data"`
	Error  *string         `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

const submissionBody = `{
	"bookerName": "Siti Rahma",
	"nationalId": "3201010101010001",
	"phone": "081234567890",
	"address": "Jl. Melati 5",
	"childName": "Ahmad",
	"childBirthDate": "2020-05-17",
	"treatmentType": "Baby Massage",
	"arrivalSlot": "09:00"
}`

func TestCreateReservation_Success(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/reservations", submissionBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Result)
	assert.Nil(t, env.Error)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var data struct {
		ReservationID string `json:"reservationId"`
		Message       string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Regexp(t, `^JBKNP-\d{6}$`, data.ReservationID)
	assert.Equal(t, "Reservasi berhasil disimpan", data.Message)
}

func TestCreateReservation_Duplicate(t *testing.T) {
	router := newTestRouter(t)

	_, first := doJSON(t, router, http.MethodPost, "/api/reservations", submissionBody)
	require.Equal(t, "success", first.Result)

	w, env := doJSON(t, router, http.MethodPost, "/api/reservations", submissionBody)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error", env.Result)
	require.NotNil(t, env.Error)
	assert.True(t, strings.HasPrefix(*env.Error, "duplicate:"))
}

func TestCreateReservation_MissingField(t *testing.T) {
	router := newTestRouter(t)

	body := `{"bookerName": "Siti Rahma"}`
	w, env := doJSON(t, router, http.MethodPost, "/api/reservations", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error", env.Result)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "nationalId")
}

func TestCreateReservation_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/reservations", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Result)
	require.NotNil(t, env.Error)
}

func TestReadReservations_UnknownAction(t *testing.T) {
	router := newTestRouter(t)

	w, env := doJSON(t, router, http.MethodGet, "/api/reservations?action=frobnicate", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error", env.Result)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "frobnicate")
}

func TestReadReservations_GetData(t *testing.T) {
	router := newTestRouter(t)
	_, first := doJSON(t, router, http.MethodPost, "/api/reservations", submissionBody)
	require.Equal(t, "success", first.Result)

	_, env := doJSON(t, router, http.MethodGet, "/api/reservations?action=getData", "")

	require.Equal(t, "success", env.Result)
	var data struct {
		TreatmentCounts map[string]int `json:"treatmentCounts"`
		SlotCounts      map[string]int `json:"slotCounts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, map[string]int{"Baby Massage": 1}, data.TreatmentCounts)
	assert.Equal(t, map[string]int{"09:00": 1}, data.SlotCounts)
}

func TestReadReservations_GetRegistrants(t *testing.T) {
	router := newTestRouter(t)
	_, first := doJSON(t, router, http.MethodPost, "/api/reservations", submissionBody)
	require.Equal(t, "success", first.Result)

	_, env := doJSON(t, router, http.MethodGet, "/api/reservations?action=getRegistrants", "")

	require.Equal(t, "success", env.Result)
	var registrants []struct {
		BookerName string `json:"bookerName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registrants))
	require.Len(t, registrants, 1)
	assert.Equal(t, "Siti Rahma", registrants[0].BookerName)
}

func TestReadReservations_CheckDuplicate(t *testing.T) {
	router := newTestRouter(t)
	_, first := doJSON(t, router, http.MethodPost, "/api/reservations", submissionBody)
	require.Equal(t, "success", first.Result)

	_, env := doJSON(t, router, http.MethodGet,
		"/api/reservations?action=checkDuplicate&phone=081234567890", "")

	require.Equal(t, "success", env.Result)
	var data struct {
		IsDuplicate bool `json:"isDuplicate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.IsDuplicate)

	_, env = doJSON(t, router, http.MethodGet,
		"/api/reservations?action=checkDuplicate&phone=000", "")
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.IsDuplicate)
}

func TestExportReservations(t *testing.T) {
	router := newTestRouter(t)
	_, first := doJSON(t, router, http.MethodPost, "/api/reservations", submissionBody)
	require.Equal(t, "success", first.Result)

	req := httptest.NewRequest(http.MethodGet, "/api/reservations/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reservations.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}
