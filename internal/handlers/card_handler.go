package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "grana/internal/errors"
	"grana/internal/services"
)

// CardHandler handles credit-card requests.
type CardHandler struct {
	cardService services.CardServicer
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService services.CardServicer) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CreateCardRequest represents the request payload for registering a card.
type CreateCardRequest struct {
	Number int             `json:"number" binding:"required,card_number"`
	Label  string          `json:"label" binding:"max=100"`
	Limit  decimal.Decimal `json:"limit" binding:"required"`
}

// UpdateCardRequest represents the request payload for updating a card.
type UpdateCardRequest struct {
	Label string           `json:"label" binding:"omitempty,max=100"`
	Limit *decimal.Decimal `json:"limit"`
}

// CreateCard handles registering a new card.
// @Summary     Register a card
// @Description Register a credit card in one of the user's numbered slots
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCardRequest true "Card details"
// @Success     201 {object} models.Card "Card created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Slot taken or card limit reached"
// @Router      /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.CreateCard(userID, req.Number, req.Label, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// GetCards lists the user's cards.
// @Summary     Get cards
// @Description List the authenticated user's cards
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Card "Cards"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /cards [get]
func (h *CardHandler) GetCards(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cards, err := h.cardService.GetUserCards(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// UpdateCard updates a card's label or limit.
// @Summary     Update a card
// @Description Update the label or limit of the card in a slot
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       number path int true "Card slot number"
// @Param       request body UpdateCardRequest true "Fields to update"
// @Success     200 {object} models.Card "Card updated"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /cards/{number} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	number, err := parseCardNumber(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.UpdateCard(userID, number, req.Label, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// DeleteCard removes the card in a slot.
// @Summary     Delete a card
// @Description Remove the card in a slot
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       number path int true "Card slot number"
// @Success     204 "Card deleted"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /cards/{number} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	number, err := parseCardNumber(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cardService.DeleteCard(userID, number); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetLimitUsage reports each card's spending against its limit.
// @Summary     Get card limit usage
// @Description Each card's unsettled credit spending for a month as a percentage of its limit
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       month query int true "Zero-based month"
// @Param       year  query int true "Year"
// @Success     200 {array} services.CardUsage "Usage per card"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /cards/usage [get]
func (h *CardHandler) GetLimitUsage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseQueryMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if month == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required"))
		return
	}
	year, err := parseQueryInt(c, "year", time.Now().Year())
	if err != nil {
		respondWithError(c, err)
		return
	}

	usage, err := h.cardService.LimitUsage(userID, *month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

func parseCardNumber(c *gin.Context) (int, error) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid card number")
	}
	return number, nil
}
