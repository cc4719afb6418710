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

func CreateProject(userID uint, name, description string) (types.ProjectResponse, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return types.ProjectResponse{}, apperrors.BadRequest("project name is required")
	}

	var creator models.User

	if err := db.DB.First(&creator, userID).Error; err != nil {
		return types.ProjectResponse{}, err
	}

	project := models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedByID: userID,
	}

	// The creator's OWNER membership is written in the same transaction as
	// the project itself.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		owner := models.ProjectMember{
			UserID:    userID,
			ProjectID: project.ID,
			Role:      models.RoleOwner,
		}

		return tx.Create(&owner).Error
	})

	if err != nil {
		return types.ProjectResponse{}, err
	}

	project.CreatedBy = creator

	return projectResponse(project, nil), nil
}

// ProjectsForUser returns every project the user holds a membership in,
// ordered by project id so the listing is stable across calls.
func ProjectsForUser(userID uint) ([]types.ProjectResponse, error) {
	var memberships []models.ProjectMember

	err := db.DB.Preload("Project").Preload("Project.CreatedBy").
		Where("user_id = ?", userID).
		Order("project_id ASC").
		Find(&memberships).Error

	if err != nil {
		return nil, err
	}

	projects := make([]types.ProjectResponse, 0, len(memberships))

	for _, m := range memberships {
		projects = append(projects, projectResponse(m.Project, nil))
	}

	return projects, nil
}

func GetProject(projectID, userID uint) (types.ProjectResponse, error) {
	project, err := findProject(projectID)

	if err != nil {
		return types.ProjectResponse{}, err
	}

	if err := RequireMember(db.DB, project.ID, userID); err != nil {
		return types.ProjectResponse{}, err
	}

	lists, err := listTree(project.ID)

	if err != nil {
		return types.ProjectResponse{}, err
	}

	return loadProjectResponse(project.ID, lists)
}

// UpdateProject applies a partial update: a blank name keeps the stored one,
// a non-nil description replaces it even when empty.
func UpdateProject(projectID, userID uint, name string, description *string) (types.ProjectResponse, error) {
	project, err := findProject(projectID)

	if err != nil {
		return types.ProjectResponse{}, err
	}

	if err := RequireMember(db.DB, project.ID, userID); err != nil {
		return types.ProjectResponse{}, err
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		project.Name = trimmed
	}

	if description != nil {
		project.Description = strings.TrimSpace(*description)
	}

	if err := db.DB.Save(&project).Error; err != nil {
		return types.ProjectResponse{}, err
	}

	return loadProjectResponse(project.ID, nil)
}

// DeleteProject removes the project and everything it owns. The cascade is
// explicit so no store-level constraint configuration is relied on.
func DeleteProject(projectID, userID uint) error {
	project, err := findProject(projectID)

	if err != nil {
		return err
	}

	if err := RequireRole(db.DB, project.ID, userID, ActionDeleteProject); err != nil {
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		listIDs := tx.Model(&models.BoardList{}).Select("id").Where("project_id = ?", projectID)

		if err := tx.Where("list_id IN (?)", listIDs).Delete(&models.Card{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.BoardList{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, projectID).Error
	})
}

func AddProjectMember(projectID, actorID uint, email string) (types.MemberResponse, error) {
	project, err := findProject(projectID)

	if err != nil {
		return types.MemberResponse{}, err
	}

	if err := RequireRole(db.DB, project.ID, actorID, ActionManageMembers); err != nil {
		return types.MemberResponse{}, err
	}

	var member types.MemberResponse

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		member, err = AddMember(tx, project, email)
		return err
	})

	if err != nil {
		return types.MemberResponse{}, err
	}

	return member, nil
}

func RemoveProjectMember(projectID, targetUserID, actorID uint) error {
	project, err := findProject(projectID)

	if err != nil {
		return err
	}

	if err := RequireRole(db.DB, project.ID, actorID, ActionManageMembers); err != nil {
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		return RemoveMember(tx, project, targetUserID)
	})
}

func ListProjectMembers(projectID, actorID uint) ([]types.MemberResponse, error) {
	project, err := findProject(projectID)

	if err != nil {
		return nil, err
	}

	if err := RequireMember(db.DB, project.ID, actorID); err != nil {
		return nil, err
	}

	return MembersOf(db.DB, project.ID)
}

// findProject loads the bare project row. Mutation paths save the returned
// struct, so no associations are preloaded here.
func findProject(projectID uint) (models.Project, error) {
	var project models.Project

	err := db.DB.First(&project, projectID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, apperrors.NotFound("no project found with ID: %d", projectID)
	}

	if err != nil {
		return models.Project{}, err
	}

	return project, nil
}

func loadProjectResponse(projectID uint, lists []types.BoardListResponse) (types.ProjectResponse, error) {
	var project models.Project

	if err := db.DB.Preload("CreatedBy").First(&project, projectID).Error; err != nil {
		return types.ProjectResponse{}, err
	}

	return projectResponse(project, lists), nil
}

func projectResponse(p models.Project, lists []types.BoardListResponse) types.ProjectResponse {
	return types.ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CreatedByID:   p.CreatedByID,
		CreatedByName: p.CreatedBy.Name,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Lists:         lists,
	}
}
