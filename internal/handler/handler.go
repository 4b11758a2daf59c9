package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/lock"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/service"
)

// Handler bundles the services behind the HTTP endpoints.
type Handler struct {
	ReservationService *service.ReservationService
	QueryService       *service.QueryService
	ExportService      *service.ExportService
	Logger             *zap.Logger
}

// NewHandler creates a Handler with its service dependencies.
func NewHandler(rs *service.ReservationService, qs *service.QueryService,
	es *service.ExportService, logger *zap.Logger) *Handler {
	return &Handler{
		ReservationService: rs,
		QueryService:       qs,
		ExportService:      es,
		Logger:             logger,
	}
}

// envelope is the uniform response shape of every endpoint, success or error.
type envelope struct {
	Result string      `json:"result"`
	Data   interface{} `json:"data"`
	Error  *string     `json:"error"`
}

func respond(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Result: "success", Data: data})
}

// respondError writes an error envelope. Domain errors keep status 200; the
// client form branches on the envelope, not the status line.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Result: "error", Error: &message})
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var payload model.SubmissionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "permintaan tidak valid: body bukan JSON reservasi")
		return
	}

	id, err := h.ReservationService.Submit(&payload)
	if err != nil {
		h.submitError(c, err)
		return
	}
	respond(c, gin.H{
		"reservationId": id,
		"message":       "Reservasi berhasil disimpan",
	})
}

func (h *Handler) submitError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var derr *service.DuplicateError
	switch {
	case errors.As(err, &verr), errors.As(err, &derr):
		respondError(c, http.StatusOK, err.Error())
	case errors.Is(err, lock.ErrTimeout):
		respondError(c, http.StatusOK, "server sedang sibuk, silakan coba lagi")
	default:
		h.Logger.Error("submit failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		respondError(c, http.StatusInternalServerError, "terjadi kesalahan pada server")
	}
}

// ReadReservations handles GET /api/reservations, dispatching on the action
// query parameter: getData, getRegistrants or checkDuplicate.
func (h *Handler) ReadReservations(c *gin.Context) {
	action := c.Query("action")
	switch action {
	case "getData":
		summary, err := h.QueryService.QuotaSummary()
		if err != nil {
			h.readError(c, err)
			return
		}
		respond(c, summary)

	case "getRegistrants":
		registrants, err := h.QueryService.RecentRegistrants()
		if err != nil {
			h.readError(c, err)
			return
		}
		respond(c, registrants)

	case "checkDuplicate":
		dup, err := h.QueryService.CheckDuplicate(model.DuplicateProbe{
			BookerName: c.Query("bookerName"),
			NationalID: c.Query("nationalId"),
			Phone:      c.Query("phone"),
		})
		if err != nil {
			h.readError(c, err)
			return
		}
		respond(c, gin.H{"isDuplicate": dup})

	default:
		respondError(c, http.StatusOK, fmt.Sprintf("action tidak dikenali: %q", action))
	}
}

func (h *Handler) readError(c *gin.Context, err error) {
	h.Logger.Error("read failed",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err))
	respondError(c, http.StatusInternalServerError, "terjadi kesalahan pada server")
}

// ExportReservations handles GET /api/reservations/export, streaming the
// intake table as an XLSX attachment.
func (h *Handler) ExportReservations(c *gin.Context) {
	data, err := h.ExportService.Workbook()
	if err != nil {
		h.readError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reservations.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
