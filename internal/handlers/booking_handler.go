package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/avinashk/crickstand/internal/booking"
	"github.com/avinashk/crickstand/internal/helpers"
	"github.com/avinashk/crickstand/internal/inventory"
	"github.com/avinashk/crickstand/internal/models"
)

type BookingHandler struct {
	coordinator *booking.Coordinator
	lifecycle   *booking.Lifecycle
	gateway     *booking.ApprovalGateway
	repo        booking.Repository
}

func NewBookingHandler(coordinator *booking.Coordinator, lifecycle *booking.Lifecycle, gateway *booking.ApprovalGateway, repo booking.Repository) *BookingHandler {
	return &BookingHandler{
		coordinator: coordinator,
		lifecycle:   lifecycle,
		gateway:     gateway,
		repo:        repo,
	}
}

type CreateBookingRequest struct {
	MatchID        uuid.UUID `json:"match_id" binding:"required"`
	SeatCategoryID uuid.UUID `json:"seat_category_id" binding:"required"`
	Quantity       int       `json:"quantity" binding:"required,min=1"`
	Name           string    `json:"name" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Phone          string    `json:"phone" binding:"required"`
}

type PaymentReferenceRequest struct {
	Utr string `json:"utr" binding:"required"`
}

type ConfirmBookingRequest struct {
	Utr string `json:"utr"`
}

type RejectBookingRequest struct {
	Reason *string `json:"reason"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	created, err := h.coordinator.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		MatchID:        req.MatchID,
		SeatCategoryID: req.SeatCategoryID,
		Quantity:       req.Quantity,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Booking created. Submit your UPI reference to complete payment.",
		"booking_id":   created.ID,
		"total_amount": created.TotalAmount,
		"status":       created.Status,
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	found, err := h.repo.Get(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": found})
}

func (h *BookingHandler) SubmitPaymentReference(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	var req PaymentReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	updated, err := h.lifecycle.SubmitPaymentReference(c.Request.Context(), bookingID, req.Utr)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment reference recorded. Your booking is awaiting verification.",
		"booking": updated,
	})
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	cancelled, err := h.lifecycle.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled.",
		"booking": cancelled,
	})
}

func (h *BookingHandler) ListPendingBookings(c *gin.Context) {
	bookings, err := h.repo.ListByStatus(c.Request.Context(), models.BookingPending, 200)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	operatorID, ok := operatorFromContext(c)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	var req ConfirmBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
	}

	confirmed, err := h.gateway.Confirm(c.Request.Context(), operatorID, bookingID, req.Utr)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking confirmed.",
		"booking": confirmed,
	})
}

func (h *BookingHandler) RejectBooking(c *gin.Context) {
	operatorID, ok := operatorFromContext(c)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	var req RejectBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
	}

	rejected, err := h.gateway.Reject(c.Request.Context(), operatorID, bookingID, req.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking rejected and tickets returned to the pool.",
		"booking": rejected,
	})
}

// BookingQR renders a signed QR pass for a confirmed booking, good for gate
// checks.
func (h *BookingHandler) BookingQR(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	found, err := h.repo.Get(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if found.Status != models.BookingConfirmed {
		helpers.RespondWithError(c, http.StatusConflict, "Only confirmed bookings have a ticket pass.")
		return
	}

	qrImage, err := qrcode.Encode(bookingQRData(found), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

func bookingQRData(b *models.Booking) string {
	payload := fmt.Sprintf("booking:%s;match:%s;quantity:%d", b.ID, b.MatchID, b.Quantity)
	mac := hmac.New(sha256.New, []byte(os.Getenv("JWT_SECRET")))
	mac.Write([]byte(payload))
	return fmt.Sprintf("%s;signature:%s", payload, hex.EncodeToString(mac.Sum(nil)))
}

func operatorFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return uuid.Nil, false
	}
	operatorID, ok := value.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID type.")
		return uuid.Nil, false
	}
	return operatorID, true
}

func respondBookingError(c *gin.Context, err error) {
	switch err {
	case booking.ErrSoldOut:
		helpers.RespondWithError(c, http.StatusConflict, "Not enough tickets available.")
	case booking.ErrAlreadyFinalized:
		// Benign for retries: the booking was already processed.
		c.JSON(http.StatusOK, gin.H{"message": "Booking already processed."})
	case booking.ErrDuplicateUtr:
		helpers.RespondWithError(c, http.StatusConflict, "This payment reference is already used by another booking.")
	case booking.ErrUnauthorized:
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to approve bookings.")
	case booking.ErrBookingNotFound:
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
	case booking.ErrMatchNotFound:
		helpers.RespondWithError(c, http.StatusNotFound, "Match not found.")
	case inventory.ErrCategoryNotFound:
		helpers.RespondWithError(c, http.StatusNotFound, "Seat category not found.")
	case booking.ErrMatchNotOpen, booking.ErrInvalidQuantity, booking.ErrMissingContact, booking.ErrUtrRequired:
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
