package access

import (
	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

type Resource string

const (
	ResourceCourse  Resource = "course"
	ResourceLesson  Resource = "lesson"
	ResourcePayment Resource = "payment"
)

var (
	createDenied = map[Resource]string{
		ResourceCourse:  "You cannot create new courses!",
		ResourceLesson:  "You cannot create new lessons!",
		ResourcePayment: "You cannot create new payments!",
	}
	deleteDenied = map[Resource]string{
		ResourceCourse:  "You cannot delete courses!",
		ResourceLesson:  "You cannot delete lessons!",
		ResourcePayment: "You cannot delete payments!",
	}
)

// IsModerator never panics; anonymous actors are never moderators.
func IsModerator(a Actor) bool {
	return a.authenticated && a.role == db_models.RoleModerator
}

func CanModifyCourse(a Actor, course *db_models.Course) bool {
	return course != nil && a.Owns(course.OwnerID)
}

// CanModifyLesson also grants the owner of the lesson's course. course may be nil
// when the parent is unknown, in which case only direct ownership counts.
func CanModifyLesson(a Actor, lesson *db_models.Lesson, course *db_models.Course) bool {
	if lesson == nil {
		return false
	}
	if a.Owns(lesson.OwnerID) {
		return true
	}
	if course == nil {
		course = lesson.Course
	}
	return course != nil && course.ID == lesson.CourseID && a.Owns(course.OwnerID)
}

func CanModifyPayment(a Actor, payment *db_models.Payment) bool {
	return payment != nil && a.Owns(payment.OwnerID)
}

func RequireAuthenticated(a Actor) error {
	if a.IsAnonymous() {
		return utils.ErrUnauthenticated
	}
	return nil
}

// AuthorizeCreate rejects anonymous actors and moderators.
func AuthorizeCreate(a Actor, r Resource) error {
	if err := RequireAuthenticated(a); err != nil {
		return err
	}
	if IsModerator(a) {
		return utils.Denied(createDenied[r])
	}
	return nil
}

// AuthorizeDelete rejects anonymous actors and moderators before any lookup.
// Ownership is checked separately with RequireOwnership.
func AuthorizeDelete(a Actor, r Resource) error {
	if err := RequireAuthenticated(a); err != nil {
		return err
	}
	if IsModerator(a) {
		return utils.Denied(deleteDenied[r])
	}
	return nil
}

// AuthorizeUpdate lets moderators edit content they can see.
func AuthorizeUpdate(a Actor, r Resource, canModify bool) error {
	if err := RequireAuthenticated(a); err != nil {
		return err
	}
	if IsModerator(a) {
		return nil
	}
	return RequireOwnership(r, canModify)
}

func RequireOwnership(r Resource, canModify bool) error {
	if !canModify {
		return utils.Denied("You do not own this " + string(r) + "!")
	}
	return nil
}
