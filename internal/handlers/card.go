package handlers

import (
	"net/http"
	"time"

	"github.com/boardhub-dev/boardhub/internal/services"
	"github.com/boardhub-dev/boardhub/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateCardRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Position    *int    `json:"position" binding:"omitempty,min=0"`
	AssigneeID  *uint   `json:"assignee_id"`
	DueDate     string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateCardRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
	AssigneeID  *uint   `json:"assignee_id"`
	DueDate     string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type MoveCardRequest struct {
	TargetListID uint `json:"target_list_id" binding:"required"`
	NewPosition  *int `json:"new_position"`
}

func cardInput(title string, description *string, position *int, assigneeID *uint, dueDate string) services.CardInput {
	in := services.CardInput{
		Title:       title,
		Description: description,
		Position:    position,
		AssigneeID:  assigneeID,
	}

	if dueDate != "" {
		// Format already validated by the binding tag.
		if due, err := time.Parse("2006-01-02", dueDate); err == nil {
			in.DueDate = &due
		}
	}

	return in
}

func CreateCard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	listID, err := utils.IDParam(ctx, "list_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateCardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := services.CreateCard(listID, userID, cardInput(body.Title, body.Description, body.Position, body.AssigneeID, body.DueDate))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, card)
}

func ListCards(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	listID, err := utils.IDParam(ctx, "list_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cards, err := services.CardsForList(listID, &userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, cards)
}

func UpdateCard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cardID, err := utils.IDParam(ctx, "card_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateCardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := services.UpdateCard(cardID, userID, cardInput(body.Title, body.Description, body.Position, body.AssigneeID, body.DueDate))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, card)
}

func MoveCard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cardID, err := utils.IDParam(ctx, "card_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body MoveCardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := services.MoveCard(cardID, body.TargetListID, body.NewPosition, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, card)
}

func DeleteCard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cardID, err := utils.IDParam(ctx, "card_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteCard(cardID, userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
