package response_models

import (
	"github.com/google/uuid"

	"coursehub/internal/models/db_models"
)

type CourseResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Preview      *string          `json:"preview"`
	Price        int64            `json:"price"`
	OwnerID      *uuid.UUID       `json:"owner"`
	LessonsCount int64            `json:"lessons_count"`
	IsSubscribed bool             `json:"is_subscribed"`
	Lessons      []LessonResponse `json:"lessons,omitempty"`
	CreatedAt    int64            `json:"created_at"`
	UpdatedAt    int64            `json:"updated_at"`
}

type LessonResponse struct {
	ID          uuid.UUID  `json:"id"`
	CourseID    uuid.UUID  `json:"course"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Preview     *string    `json:"preview"`
	VideoURL    *string    `json:"video_url"`
	Price       int64      `json:"price"`
	OwnerID     *uuid.UUID `json:"owner"`
	CreatedAt   int64      `json:"created_at"`
	UpdatedAt   int64      `json:"updated_at"`
}

func NewCourseResponse(c *db_models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Preview:     c.Preview,
		Price:       c.Price,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if len(c.Lessons) > 0 {
		resp.LessonsCount = int64(len(c.Lessons))
		resp.Lessons = make([]LessonResponse, 0, len(c.Lessons))
		for i := range c.Lessons {
			resp.Lessons = append(resp.Lessons, NewLessonResponse(&c.Lessons[i]))
		}
	}
	return resp
}

func NewLessonResponse(l *db_models.Lesson) LessonResponse {
	return LessonResponse{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Name:        l.Name,
		Description: l.Description,
		Preview:     l.Preview,
		VideoURL:    l.VideoURL,
		Price:       l.Price,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
