package services

import (
	"errors"
	"strings"
	"time"

	"github.com/boardhub-dev/boardhub/db"
	"github.com/boardhub-dev/boardhub/internal/apperrors"
	"github.com/boardhub-dev/boardhub/internal/models"
	"github.com/boardhub-dev/boardhub/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CardInput carries the card fields of a create or update request. Nil means
// the field was not supplied; on update the stored value is kept.
type CardInput struct {
	Title       string
	Description *string
	Position    *int
	AssigneeID  *uint
	DueDate     *time.Time
}

// ClearAssignee is the AssigneeID sentinel that unassigns a card on update.
const ClearAssignee uint = 0

func CreateCard(listID, userID uint, in CardInput) (types.CardResponse, error) {
	list, err := findList(listID)

	if err != nil {
		return types.CardResponse{}, err
	}

	if err := RequireRole(db.DB, list.ProjectID, userID, ActionEditBoard); err != nil {
		return types.CardResponse{}, err
	}

	title := strings.TrimSpace(in.Title)

	if title == "" {
		return types.CardResponse{}, apperrors.BadRequest("card title is required")
	}

	var card models.Card

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		pos := 0

		if in.Position != nil {
			pos = *in.Position
		} else {
			// Append within the list; same unserialized count-then-insert as
			// list creation.
			var count int64

			if err := tx.Model(&models.Card{}).Where("list_id = ?", list.ID).Count(&count).Error; err != nil {
				return err
			}

			pos = int(count)
		}

		card = models.Card{
			Title:    title,
			Position: pos,
			ListID:   list.ID,
		}

		if in.Description != nil {
			card.Description = strings.TrimSpace(*in.Description)
		}

		if in.AssigneeID != nil {
			card.AssigneeID = resolveAssignee(tx, *in.AssigneeID)
		}

		if in.DueDate != nil {
			due := datatypes.Date(*in.DueDate)
			card.DueDate = &due
		}

		return tx.Create(&card).Error
	})

	if err != nil {
		return types.CardResponse{}, err
	}

	return loadCardResponse(card.ID)
}

// CardsForList returns the list's cards ordered by position. A nil userID is
// the internal composition path and skips the membership check.
func CardsForList(listID uint, userID *uint) ([]types.CardResponse, error) {
	list, err := findList(listID)

	if err != nil {
		return nil, err
	}

	if userID != nil {
		if err := RequireMember(db.DB, list.ProjectID, *userID); err != nil {
			return nil, err
		}
	}

	var cards []models.Card

	err = db.DB.Preload("Assignee").
		Where("list_id = ?", list.ID).
		Order("position ASC").
		Find(&cards).Error

	if err != nil {
		return nil, err
	}

	responses := make([]types.CardResponse, 0, len(cards))

	for _, card := range cards {
		responses = append(responses, cardResponse(card))
	}

	return responses, nil
}

// UpdateCard applies a field-wise partial update. AssigneeID is tri-state:
// nil keeps the current assignee, ClearAssignee unassigns, any other id is
// resolved and silently dropped when no such user exists.
func UpdateCard(cardID, userID uint, in CardInput) (types.CardResponse, error) {
	card, err := findCard(cardID)

	if err != nil {
		return types.CardResponse{}, err
	}

	list, err := findList(card.ListID)

	if err != nil {
		return types.CardResponse{}, err
	}

	if err := RequireRole(db.DB, list.ProjectID, userID, ActionEditBoard); err != nil {
		return types.CardResponse{}, err
	}

	if trimmed := strings.TrimSpace(in.Title); trimmed != "" {
		card.Title = trimmed
	}

	if in.Description != nil {
		card.Description = strings.TrimSpace(*in.Description)
	}

	if in.Position != nil {
		card.Position = *in.Position
	}

	if in.AssigneeID != nil {
		if *in.AssigneeID == ClearAssignee {
			card.AssigneeID = nil
		} else {
			card.AssigneeID = resolveAssignee(db.DB, *in.AssigneeID)
		}
	}

	if in.DueDate != nil {
		due := datatypes.Date(*in.DueDate)
		card.DueDate = &due
	}

	if err := db.DB.Save(&card).Error; err != nil {
		return types.CardResponse{}, err
	}

	return loadCardResponse(card.ID)
}

// MoveCard re-parents the card onto the target list. Both lists must belong
// to the same project; the card is untouched when they do not.
func MoveCard(cardID, targetListID uint, newPosition *int, userID uint) (types.CardResponse, error) {
	card, err := findCard(cardID)

	if err != nil {
		return types.CardResponse{}, err
	}

	targetList, err := findList(targetListID)

	if err != nil {
		return types.CardResponse{}, err
	}

	currentList, err := findList(card.ListID)

	if err != nil {
		return types.CardResponse{}, err
	}

	if err := RequireRole(db.DB, currentList.ProjectID, userID, ActionEditBoard); err != nil {
		return types.CardResponse{}, err
	}

	if err := RequireRole(db.DB, targetList.ProjectID, userID, ActionEditBoard); err != nil {
		return types.CardResponse{}, err
	}

	if currentList.ProjectID != targetList.ProjectID {
		return types.CardResponse{}, apperrors.BadRequest("cards can only be moved between lists of the same project")
	}

	card.ListID = targetList.ID

	if newPosition != nil {
		card.Position = *newPosition
	}

	if err := db.DB.Save(&card).Error; err != nil {
		return types.CardResponse{}, err
	}

	return loadCardResponse(card.ID)
}

func DeleteCard(cardID, userID uint) error {
	card, err := findCard(cardID)

	if err != nil {
		return err
	}

	list, err := findList(card.ListID)

	if err != nil {
		return err
	}

	if err := RequireRole(db.DB, list.ProjectID, userID, ActionEditBoard); err != nil {
		return err
	}

	return db.DB.Delete(&models.Card{}, card.ID).Error
}

func findCard(cardID uint) (models.Card, error) {
	var card models.Card

	err := db.DB.First(&card, cardID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Card{}, apperrors.NotFound("no card found with ID: %d", cardID)
	}

	if err != nil {
		return models.Card{}, err
	}

	return card, nil
}

// resolveAssignee returns the user's id, or nil when the id does not resolve.
// An unknown assignee is not an error.
func resolveAssignee(tx *gorm.DB, assigneeID uint) *uint {
	var user models.User

	if err := tx.First(&user, assigneeID).Error; err != nil {
		return nil
	}

	return &user.ID
}

func loadCardResponse(cardID uint) (types.CardResponse, error) {
	var card models.Card

	if err := db.DB.Preload("Assignee").First(&card, cardID).Error; err != nil {
		return types.CardResponse{}, err
	}

	return cardResponse(card), nil
}

func cardResponse(c models.Card) types.CardResponse {
	resp := types.CardResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		ListID:      c.ListID,
		AssigneeID:  c.AssigneeID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	if c.Assignee != nil {
		resp.AssigneeName = c.Assignee.Name
	}

	if c.DueDate != nil {
		resp.DueDate = time.Time(*c.DueDate).Format("2006-01-02")
	}

	return resp
}
