package repositories

import (
	"errors"

	"gorm.io/gorm"

	"coursehub/internal/access"
	"coursehub/pkg/utils"
)

// visibleTo is the single ownership filter shared by every owned resource.
// Lessons are also visible to the owner of their course.
func visibleTo(v access.Visibility, r access.Resource) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch v.Scope {
		case access.ScopeAll:
			return db
		case access.ScopeOwner:
			table := tableFor(r)
			if r == access.ResourceLesson {
				return db.Where(
					table+".owner_id = ? OR "+table+".course_id IN (?)",
					v.OwnerID,
					db.Session(&gorm.Session{NewDB: true}).Table("courses").Select("id").Where("owner_id = ?", v.OwnerID),
				)
			}
			return db.Where(table+".owner_id = ?", v.OwnerID)
		default:
			return db.Where("1 = 0")
		}
	}
}

func tableFor(r access.Resource) string {
	switch r {
	case access.ResourceCourse:
		return "courses"
	case access.ResourceLesson:
		return "lessons"
	default:
		return "payments"
	}
}

func paginate(p utils.Pagination) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.PageSize <= 0 {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.PageSize)
	}
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
