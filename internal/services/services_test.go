package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/boardhub-dev/boardhub/db"
	"github.com/boardhub-dev/boardhub/internal/models"
	"github.com/boardhub-dev/boardhub/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global handle at a fresh in-memory database. The
// cache=shared DSN keeps every pooled connection on the same database.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.BoardList{},
		&models.Card{},
	)

	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb
}

func createTestUser(t *testing.T, name, email string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         models.GlobalRoleUser,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}

	return user
}

func createTestProject(t *testing.T, ownerID uint, name string) types.ProjectResponse {
	t.Helper()

	project, err := CreateProject(ownerID, name, "")

	if err != nil {
		t.Fatalf("failed to create project %s: %v", name, err)
	}

	return project
}

func createTestList(t *testing.T, projectID, userID uint, title string) types.BoardListResponse {
	t.Helper()

	list, err := CreateList(projectID, userID, title, nil)

	if err != nil {
		t.Fatalf("failed to create list %s: %v", title, err)
	}

	return list
}

func createTestCard(t *testing.T, listID, userID uint, title string) types.CardResponse {
	t.Helper()

	card, err := CreateCard(listID, userID, CardInput{Title: title})

	if err != nil {
		t.Fatalf("failed to create card %s: %v", title, err)
	}

	return card
}

func addTestMember(t *testing.T, projectID, ownerID uint, email string) {
	t.Helper()

	if _, err := AddProjectMember(projectID, ownerID, email); err != nil {
		t.Fatalf("failed to add member %s: %v", email, err)
	}
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
