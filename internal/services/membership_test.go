package services

import (
	"errors"
	"testing"

	"github.com/boardhub-dev/boardhub/db"
	"github.com/boardhub-dev/boardhub/internal/apperrors"
	"github.com/boardhub-dev/boardhub/internal/models"
)

func membershipCount(t *testing.T, projectID uint) int64 {
	t.Helper()

	var count int64

	if err := db.DB.Model(&models.ProjectMember{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count memberships: %v", err)
	}

	return count
}

func TestCreateProjectGrantsOwnerRole(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	role, err := RoleOf(db.DB, project.ID, owner.ID)

	if err != nil {
		t.Fatalf("RoleOf returned error: %v", err)
	}

	if role != models.RoleOwner {
		t.Errorf("creator role = %s, want %s", role, models.RoleOwner)
	}
}

func TestAddMemberUnknownEmail(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	before := membershipCount(t, project.ID)

	_, err := AddProjectMember(project.ID, owner.ID, "ghost@x.com")

	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("AddProjectMember with unknown email = %v, want NotFound", err)
	}

	if after := membershipCount(t, project.ID); after != before {
		t.Errorf("membership count changed from %d to %d", before, after)
	}
}

func TestAddMemberTwiceConflicts(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	createTestUser(t, "Bob", "bob@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	addTestMember(t, project.ID, owner.ID, "bob@example.com")

	_, err := AddProjectMember(project.ID, owner.ID, "bob@example.com")

	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("second AddProjectMember = %v, want Conflict", err)
	}
}

func TestAddMemberRequiresOwner(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	member := createTestUser(t, "Bob", "bob@example.com")
	createTestUser(t, "Carol", "carol@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	addTestMember(t, project.ID, owner.ID, "bob@example.com")

	_, err := AddProjectMember(project.ID, member.ID, "carol@example.com")

	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("AddProjectMember by plain member = %v, want Forbidden", err)
	}
}

func TestRemoveOwnerForbidden(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	// Even the owner cannot remove their own membership.
	err := RemoveProjectMember(project.ID, owner.ID, owner.ID)

	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("RemoveProjectMember targeting owner = %v, want Forbidden", err)
	}

	if count := membershipCount(t, project.ID); count != 1 {
		t.Errorf("membership count = %d, want 1", count)
	}
}

func TestRemoveMember(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	member := createTestUser(t, "Bob", "bob@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	addTestMember(t, project.ID, owner.ID, "bob@example.com")

	if err := RemoveProjectMember(project.ID, member.ID, owner.ID); err != nil {
		t.Fatalf("RemoveProjectMember returned error: %v", err)
	}

	if err := RequireMember(db.DB, project.ID, member.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("RequireMember after removal = %v, want Forbidden", err)
	}
}

func TestRemoveNonMemberBadRequest(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	outsider := createTestUser(t, "Bob", "bob@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	err := RemoveProjectMember(project.ID, outsider.ID, owner.ID)

	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("RemoveProjectMember for non-member = %v, want BadRequest", err)
	}
}

func TestMembersOfOrderedByRole(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	createTestUser(t, "Bob", "bob@example.com")
	createTestUser(t, "Carol", "carol@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	addTestMember(t, project.ID, owner.ID, "bob@example.com")
	addTestMember(t, project.ID, owner.ID, "carol@example.com")

	members, err := ListProjectMembers(project.ID, owner.ID)

	if err != nil {
		t.Fatalf("ListProjectMembers returned error: %v", err)
	}

	if len(members) != 3 {
		t.Fatalf("len(members) = %d, want 3", len(members))
	}

	if members[0].Role != string(models.RoleOwner) {
		t.Errorf("first member role = %s, want OWNER", members[0].Role)
	}
}

func TestRequireRoleNonMember(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "Alice", "alice@example.com")
	outsider := createTestUser(t, "Eve", "eve@example.com")
	project := createTestProject(t, owner.ID, "Sprint 1")

	for _, action := range []Action{ActionViewBoard, ActionEditBoard, ActionManageMembers, ActionDeleteProject} {
		if err := RequireRole(db.DB, project.ID, outsider.ID, action); !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("RequireRole(action %d) for outsider = %v, want Forbidden", action, err)
		}
	}
}
