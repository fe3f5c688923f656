package request_models

import "github.com/google/uuid"

// CourseRequest is the full representation used by POST and PUT.
// Owner is accepted for compatibility and always replaced by the caller.
type CourseRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description"`
	Preview     *string    `json:"preview" binding:"omitempty,max=255"`
	Price       *int64     `json:"price" binding:"required,gte=0"`
	Owner       *uuid.UUID `json:"owner"`
}

// PatchCourseRequest updates only the fields present.
type PatchCourseRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Preview     *string `json:"preview" binding:"omitempty,max=255"`
	Price       *int64  `json:"price" binding:"omitempty,gte=0"`
}

func (r CourseRequest) AsPatch() PatchCourseRequest {
	return PatchCourseRequest{
		Name:        &r.Name,
		Description: &r.Description,
		Preview:     r.Preview,
		Price:       r.Price,
	}
}
