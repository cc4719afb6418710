package types

import "time"

// Response shapes shared by the handlers. Composition is one-way: services
// project loaded entities into these, they never feed back into writes.

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MemberResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type CardResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Position     int       `json:"position"`
	ListID       uint      `json:"list_id"`
	AssigneeID   *uint     `json:"assignee_id,omitempty"`
	AssigneeName string    `json:"assignee_name,omitempty"`
	DueDate      string    `json:"due_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BoardListResponse struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Position  int            `json:"position"`
	ProjectID uint           `json:"project_id"`
	Cards     []CardResponse `json:"cards"`
}

type ProjectResponse struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	CreatedByID   uint                `json:"created_by_id"`
	CreatedByName string              `json:"created_by_name,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Lists         []BoardListResponse `json:"lists,omitempty"`
}
