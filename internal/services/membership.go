package services

import (
	"errors"
	"strings"

	"github.com/boardhub-dev/boardhub/internal/apperrors"
	"github.com/boardhub-dev/boardhub/internal/models"
	"github.com/boardhub-dev/boardhub/internal/types"
	"gorm.io/gorm"
)

// Action is a board operation category used for role gating.
type Action int

const (
	ActionViewBoard Action = iota
	ActionEditBoard
	ActionManageMembers
	ActionDeleteProject
)

// MinimumRole keeps the OWNER/MEMBER policy in one place instead of
// scattering role comparisons across the managers.
func (a Action) MinimumRole() models.Role {
	switch a {
	case ActionManageMembers, ActionDeleteProject:
		return models.RoleOwner
	default:
		return models.RoleMember
	}
}

func IsMember(tx *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64

	err := tx.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func RoleOf(tx *gorm.DB, projectID, userID uint) (models.Role, error) {
	var membership models.ProjectMember

	err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.NotFound("user %d is not a member of project %d", userID, projectID)
	}

	if err != nil {
		return "", err
	}

	return membership.Role, nil
}

// RequireRole fails with Forbidden when the user is not a member, or is a
// member whose role is below the action's minimum.
func RequireRole(tx *gorm.DB, projectID, userID uint, action Action) error {
	role, err := RoleOf(tx, projectID, userID)

	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Forbidden("no access to project")
	}

	if err != nil {
		return err
	}

	if action.MinimumRole() == models.RoleOwner && role != models.RoleOwner {
		return apperrors.Forbidden("only the project owner can perform this action")
	}

	return nil
}

func RequireMember(tx *gorm.DB, projectID, userID uint) error {
	return RequireRole(tx, projectID, userID, ActionViewBoard)
}

// AddMember registers the user with the given email as a MEMBER of the
// project. Existence of the project and the caller's role are the project
// manager's concern.
func AddMember(tx *gorm.DB, project models.Project, email string) (types.MemberResponse, error) {
	var user models.User

	email = strings.ToLower(strings.TrimSpace(email))
	err := tx.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.MemberResponse{}, apperrors.NotFound("no user found with email: %s", email)
	}

	if err != nil {
		return types.MemberResponse{}, err
	}

	alreadyMember, err := IsMember(tx, project.ID, user.ID)

	if err != nil {
		return types.MemberResponse{}, err
	}

	if alreadyMember {
		return types.MemberResponse{}, apperrors.Conflict("user is already a member of the project")
	}

	membership := models.ProjectMember{
		UserID:    user.ID,
		ProjectID: project.ID,
		Role:      models.RoleMember,
	}

	if err := tx.Create(&membership).Error; err != nil {
		return types.MemberResponse{}, err
	}

	return types.MemberResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(membership.Role),
	}, nil
}

// RemoveMember deletes the target user's membership. The OWNER membership is
// never removable through this path; there is no ownership-transfer flow.
func RemoveMember(tx *gorm.DB, project models.Project, targetUserID uint) error {
	var user models.User

	err := tx.First(&user, targetUserID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("no user found with ID: %d", targetUserID)
	}

	if err != nil {
		return err
	}

	var membership models.ProjectMember

	err = tx.Where("project_id = ? AND user_id = ?", project.ID, user.ID).First(&membership).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.BadRequest("user is not a member of the project")
	}

	if err != nil {
		return err
	}

	if membership.Role == models.RoleOwner {
		return apperrors.Forbidden("the project owner cannot be removed")
	}

	return tx.Delete(&membership).Error
}

// MembersOf lists the project's memberships ordered by role, owner first.
func MembersOf(tx *gorm.DB, projectID uint) ([]types.MemberResponse, error) {
	var memberships []models.ProjectMember

	err := tx.Preload("User").
		Where("project_id = ?", projectID).
		Order("role DESC, user_id ASC").
		Find(&memberships).Error

	if err != nil {
		return nil, err
	}

	members := make([]types.MemberResponse, 0, len(memberships))

	for _, m := range memberships {
		members = append(members, types.MemberResponse{
			UserID: m.UserID,
			Name:   m.User.Name,
			Email:  m.User.Email,
			Role:   string(m.Role),
		})
	}

	return members, nil
}
