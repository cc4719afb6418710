package services

import (
	"errors"
	"strings"

	"github.com/boardhub-dev/boardhub/db"
	"github.com/boardhub-dev/boardhub/internal/apperrors"
	"github.com/boardhub-dev/boardhub/internal/models"
	"github.com/boardhub-dev/boardhub/internal/types"
	"gorm.io/gorm"
)

func CreateList(projectID, userID uint, title string, position *int) (types.BoardListResponse, error) {
	if _, err := findProject(projectID); err != nil {
		return types.BoardListResponse{}, err
	}

	if err := RequireRole(db.DB, projectID, userID, ActionEditBoard); err != nil {
		return types.BoardListResponse{}, err
	}

	title = strings.TrimSpace(title)

	if title == "" {
		return types.BoardListResponse{}, apperrors.BadRequest("list title is required")
	}

	var list models.BoardList

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		pos := 0

		if position != nil {
			pos = *position
		} else {
			// Append semantics. Count-then-insert is not serialized against
			// concurrent creates on the same project, so duplicate positions
			// are possible under contention.
			var count int64

			if err := tx.Model(&models.BoardList{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
				return err
			}

			pos = int(count)
		}

		list = models.BoardList{
			Title:     title,
			Position:  pos,
			ProjectID: projectID,
		}

		return tx.Create(&list).Error
	})

	if err != nil {
		return types.BoardListResponse{}, err
	}

	return listResponse(list, nil), nil
}

func ListsForProject(projectID, userID uint) ([]types.BoardListResponse, error) {
	if _, err := findProject(projectID); err != nil {
		return nil, err
	}

	if err := RequireMember(db.DB, projectID, userID); err != nil {
		return nil, err
	}

	return listTree(projectID)
}

func UpdateList(listID, userID uint, title string, position *int) (types.BoardListResponse, error) {
	list, err := findList(listID)

	if err != nil {
		return types.BoardListResponse{}, err
	}

	if err := RequireRole(db.DB, list.ProjectID, userID, ActionEditBoard); err != nil {
		return types.BoardListResponse{}, err
	}

	if trimmed := strings.TrimSpace(title); trimmed != "" {
		list.Title = trimmed
	}

	// Any integer is accepted; siblings are not compacted or deduplicated.
	if position != nil {
		list.Position = *position
	}

	if err := db.DB.Save(&list).Error; err != nil {
		return types.BoardListResponse{}, err
	}

	return listResponse(list, nil), nil
}

// DeleteList removes the list and, explicitly in the same transaction, every
// card it owns.
func DeleteList(listID, userID uint) error {
	list, err := findList(listID)

	if err != nil {
		return err
	}

	if err := RequireRole(db.DB, list.ProjectID, userID, ActionEditBoard); err != nil {
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.Card{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.BoardList{}, list.ID).Error
	})
}

// listTree loads the project's lists ordered by position, each with its cards
// ordered by position. Membership must already have been checked.
func listTree(projectID uint) ([]types.BoardListResponse, error) {
	var lists []models.BoardList

	err := db.DB.Where("project_id = ?", projectID).Order("position ASC").Find(&lists).Error

	if err != nil {
		return nil, err
	}

	tree := make([]types.BoardListResponse, 0, len(lists))

	for _, list := range lists {
		cards, err := CardsForList(list.ID, nil)

		if err != nil {
			return nil, err
		}

		tree = append(tree, listResponse(list, cards))
	}

	return tree, nil
}

func findList(listID uint) (models.BoardList, error) {
	var list models.BoardList

	err := db.DB.First(&list, listID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.BoardList{}, apperrors.NotFound("no list found with ID: %d", listID)
	}

	if err != nil {
		return models.BoardList{}, err
	}

	return list, nil
}

func listResponse(l models.BoardList, cards []types.CardResponse) types.BoardListResponse {
	return types.BoardListResponse{
		ID:        l.ID,
		Title:     l.Title,
		Position:  l.Position,
		ProjectID: l.ProjectID,
		Cards:     cards,
	}
}
