package request_models

import "github.com/google/uuid"

type LessonRequest struct {
	CourseID    uuid.UUID  `json:"course" binding:"required"`
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description"`
	Preview     *string    `json:"preview" binding:"omitempty,max=255"`
	VideoURL    *string    `json:"video_url" binding:"omitempty,url"`
	Price       *int64     `json:"price" binding:"required,gte=0"`
	Owner       *uuid.UUID `json:"owner"`
}

type PatchLessonRequest struct {
	CourseID    *uuid.UUID `json:"course"`
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description"`
	Preview     *string    `json:"preview" binding:"omitempty,max=255"`
	VideoURL    *string    `json:"video_url" binding:"omitempty,url"`
	Price       *int64     `json:"price" binding:"omitempty,gte=0"`
}

func (r LessonRequest) AsPatch() PatchLessonRequest {
	return PatchLessonRequest{
		CourseID:    &r.CourseID,
		Name:        &r.Name,
		Description: &r.Description,
		Preview:     r.Preview,
		VideoURL:    r.VideoURL,
		Price:       r.Price,
	}
}

type LessonListQuery struct {
	CourseID string `form:"course" binding:"omitempty,uuid"`
}
