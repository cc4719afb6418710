package services

import (
	"errors"
	"testing"
	"time"

	"github.com/boardhub-dev/boardhub/internal/apperrors"
)

func TestCreateCardDefaults(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")

	first := createTestCard(t, list.ID, owner.ID, "first")
	second := createTestCard(t, list.ID, owner.ID, "second")

	if first.Position != 0 || second.Position != 1 {
		t.Errorf("positions = (%d, %d), want (0, 1)", first.Position, second.Position)
	}

	if first.AssigneeID != nil || first.DueDate != "" {
		t.Errorf("card defaults = (assignee %v, due %q), want (nil, empty)", first.AssigneeID, first.DueDate)
	}
}

func TestCreateCardUnknownAssigneeIsSilentlyNil(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")

	card, err := CreateCard(list.ID, owner.ID, CardInput{
		Title:      "Fix bug",
		AssigneeID: uintPtr(9999),
	})

	if err != nil {
		t.Fatalf("CreateCard returned error: %v", err)
	}

	if card.AssigneeID != nil {
		t.Errorf("assignee = %v, want nil for unresolvable id", card.AssigneeID)
	}
}

func TestCreateCardWithDetails(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	card, err := CreateCard(list.ID, owner.ID, CardInput{
		Title:       "  Fix bug  ",
		Description: strPtr("  crashes on save  "),
		AssigneeID:  uintPtr(owner.ID),
		DueDate:     &due,
	})

	if err != nil {
		t.Fatalf("CreateCard returned error: %v", err)
	}

	if card.Title != "Fix bug" || card.Description != "crashes on save" {
		t.Errorf("card = (%q, %q), want trimmed fields", card.Title, card.Description)
	}

	if card.AssigneeID == nil || *card.AssigneeID != owner.ID || card.AssigneeName != "Alice" {
		t.Errorf("assignee = (%v, %q), want (%d, Alice)", card.AssigneeID, card.AssigneeName, owner.ID)
	}

	if card.DueDate != "2026-09-15" {
		t.Errorf("due date = %q, want 2026-09-15", card.DueDate)
	}
}

func TestCreateCardValidation(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	outsider := createTestUser(t, "Eve", "eve@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")

	tests := []struct {
		name    string
		listID  uint
		userID  uint
		title   string
		wantErr error
	}{
		{name: "missing list", listID: 9999, userID: owner.ID, title: "x", wantErr: apperrors.ErrNotFound},
		{name: "non-member", listID: list.ID, userID: outsider.ID, title: "x", wantErr: apperrors.ErrForbidden},
		{name: "blank title", listID: list.ID, userID: owner.ID, title: " ", wantErr: apperrors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateCard(tt.listID, tt.userID, CardInput{Title: tt.title})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateCard = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCardsForListMembership(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	outsider := createTestUser(t, "Eve", "eve@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")
	createTestCard(t, list.ID, owner.ID, "Fix bug")

	if _, err := CardsForList(list.ID, &outsider.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("CardsForList for outsider = %v, want Forbidden", err)
	}

	// The internal composition path carries no user and skips the check.
	cards, err := CardsForList(list.ID, nil)

	if err != nil {
		t.Fatalf("CardsForList(nil user) returned error: %v", err)
	}

	if len(cards) != 1 {
		t.Errorf("len(cards) = %d, want 1", len(cards))
	}
}

func TestUpdateCardKeepsOmittedFields(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	card, err := CreateCard(list.ID, owner.ID, CardInput{
		Title:       "Fix bug",
		Description: strPtr("crashes on save"),
		AssigneeID:  uintPtr(owner.ID),
		DueDate:     &due,
	})

	if err != nil {
		t.Fatalf("CreateCard returned error: %v", err)
	}

	updated, err := UpdateCard(card.ID, owner.ID, CardInput{Position: intPtr(3)})

	if err != nil {
		t.Fatalf("UpdateCard returned error: %v", err)
	}

	if updated.Position != 3 {
		t.Errorf("position = %d, want 3", updated.Position)
	}

	if updated.Title != card.Title ||
		updated.Description != card.Description ||
		updated.DueDate != card.DueDate ||
		updated.AssigneeID == nil || *updated.AssigneeID != *card.AssigneeID {
		t.Errorf("omitted fields changed: got %+v, want everything but position from %+v", updated, card)
	}
}

func TestUpdateCardAssigneeSentinel(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")

	card, err := CreateCard(list.ID, owner.ID, CardInput{
		Title:      "Fix bug",
		AssigneeID: uintPtr(owner.ID),
	})

	if err != nil {
		t.Fatalf("CreateCard returned error: %v", err)
	}

	// Nil leaves the assignee alone.
	updated, err := UpdateCard(card.ID, owner.ID, CardInput{Title: "Fix bug now"})

	if err != nil {
		t.Fatalf("UpdateCard returned error: %v", err)
	}

	if updated.AssigneeID == nil || *updated.AssigneeID != owner.ID {
		t.Fatalf("assignee after nil update = %v, want %d", updated.AssigneeID, owner.ID)
	}

	// The zero sentinel clears it.
	updated, err = UpdateCard(card.ID, owner.ID, CardInput{AssigneeID: uintPtr(ClearAssignee)})

	if err != nil {
		t.Fatalf("UpdateCard returned error: %v", err)
	}

	if updated.AssigneeID != nil {
		t.Errorf("assignee after clear = %v, want nil", updated.AssigneeID)
	}

	// An unresolvable id also lands on nil, silently.
	updated, err = UpdateCard(card.ID, owner.ID, CardInput{AssigneeID: uintPtr(9999)})

	if err != nil {
		t.Fatalf("UpdateCard returned error: %v", err)
	}

	if updated.AssigneeID != nil {
		t.Errorf("assignee after bogus id = %v, want nil", updated.AssigneeID)
	}
}

func TestMoveCardBetweenLists(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	todo := createTestList(t, project.ID, owner.ID, "Todo")
	doing := createTestList(t, project.ID, owner.ID, "Doing")
	card := createTestCard(t, todo.ID, owner.ID, "Fix bug")

	moved, err := MoveCard(card.ID, doing.ID, nil, owner.ID)

	if err != nil {
		t.Fatalf("MoveCard returned error: %v", err)
	}

	if moved.ListID != doing.ID {
		t.Errorf("list after move = %d, want %d", moved.ListID, doing.ID)
	}

	// Position untouched when not supplied.
	if moved.Position != card.Position {
		t.Errorf("position after move = %d, want %d", moved.Position, card.Position)
	}

	source, err := CardsForList(todo.ID, &owner.ID)

	if err != nil {
		t.Fatalf("CardsForList returned error: %v", err)
	}

	if len(source) != 0 {
		t.Errorf("source list still has %d cards", len(source))
	}

	target, err := CardsForList(doing.ID, &owner.ID)

	if err != nil {
		t.Fatalf("CardsForList returned error: %v", err)
	}

	if len(target) != 1 || target[0].ID != card.ID {
		t.Errorf("target list cards = %+v, want [%d]", target, card.ID)
	}
}

func TestMoveCardAcrossProjectsForbidden(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	projectA := createTestProject(t, owner.ID, "Sprint 1")
	projectB := createTestProject(t, owner.ID, "Sprint 2")
	listA := createTestList(t, projectA.ID, owner.ID, "Todo")
	listB := createTestList(t, projectB.ID, owner.ID, "Todo")
	card := createTestCard(t, listA.ID, owner.ID, "Fix bug")

	_, err := MoveCard(card.ID, listB.ID, intPtr(5), owner.ID)

	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("cross-project MoveCard = %v, want BadRequest", err)
	}

	// The failed move must not have mutated the card.
	cards, err := CardsForList(listA.ID, &owner.ID)

	if err != nil {
		t.Fatalf("CardsForList returned error: %v", err)
	}

	if len(cards) != 1 || cards[0].ListID != listA.ID || cards[0].Position != card.Position {
		t.Errorf("card mutated by rejected move: %+v", cards)
	}
}

func TestDeleteCard(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	outsider := createTestUser(t, "Eve", "eve@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")
	list := createTestList(t, project.ID, owner.ID, "Todo")
	card := createTestCard(t, list.ID, owner.ID, "Fix bug")

	if err := DeleteCard(card.ID, outsider.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("DeleteCard by outsider = %v, want Forbidden", err)
	}

	if err := DeleteCard(card.ID, owner.ID); err != nil {
		t.Fatalf("DeleteCard returned error: %v", err)
	}

	if err := DeleteCard(card.ID, owner.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second DeleteCard = %v, want NotFound", err)
	}
}
