package dto

import (
	"time"

	"codezetta/internal/domain"
)

type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,subjectname"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type SubjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewSubjectResponse(s *domain.Subject) SubjectResponse {
	return SubjectResponse{ID: s.ID, Name: s.Name, Description: s.Description, CreatedAt: s.CreatedAt}
}
