package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/match-play-scoring/internal/models"
)

// GetCourses returns a handler for GET /api/v1/courses — every course
// with its tee sets and hole data, for the admin course editor and the
// match setup screen.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		err := db.
			Preload("Tees", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
			Preload("Tees.Holes", func(db *gorm.DB) *gorm.DB { return db.Order("hole_number") }).
			Order("club_name, course_name").
			Find(&courses).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch courses"})
		}
		return c.JSON(courses)
	}
}

// TeeHoleEntry is one hole's reference data in a replace request.
type TeeHoleEntry struct {
	HoleNumber  int  `json:"hole_number"`
	Par         int  `json:"par"`
	StrokeIndex int  `json:"stroke_index"`
	Yardage     *int `json:"yardage"`
}

// ReplaceTeeHolesRequest is the body for PUT /api/v1/courses/tees/:id/holes.
type ReplaceTeeHolesRequest struct {
	Holes []TeeHoleEntry `json:"holes"`
}

// ReplaceTeeHoles returns a handler for PUT /api/v1/courses/tees/:id/holes.
//
// Replaces a tee set's hole-by-hole data wholesale. Stroke indexes must
// form a permutation of 1..N — a duplicated index would let one
// differential land two strokes on the same hole. Edits affect live
// (non-finalized) scorecards on the next read; finalized matches keep
// the course snapshot they froze.
func ReplaceTeeHoles(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teeID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tee id"})
		}

		var req ReplaceTeeHolesRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validateTeeHoles(req.Holes); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		var tee models.CourseTee
		if err := db.Where("id = ?", teeID).First(&tee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tee not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch tee"})
		}

		totalPar := 0
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("course_tee_id = ?", tee.ID).
				Delete(&models.TeeHole{}).Error; err != nil {
				return err
			}
			for _, entry := range req.Holes {
				hole := models.TeeHole{
					CourseTeeID: tee.ID,
					HoleNumber:  entry.HoleNumber,
					Par:         entry.Par,
					StrokeIndex: entry.StrokeIndex,
					Yardage:     entry.Yardage,
				}
				if err := tx.Create(&hole).Error; err != nil {
					return err
				}
				totalPar += entry.Par
			}
			return tx.Model(&models.CourseTee{}).Where("id = ?", tee.ID).
				Updates(map[string]interface{}{
					"par":        totalPar,
					"hole_count": len(req.Holes),
				}).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update tee holes"})
		}

		return c.JSON(fiber.Map{"holes": len(req.Holes), "par": totalPar})
	}
}

// validateTeeHoles checks the submitted card is coherent: sequential
// hole numbers from 1, plausible pars, and stroke indexes forming a
// permutation of 1..N.
func validateTeeHoles(holes []TeeHoleEntry) error {
	if len(holes) != 9 && len(holes) != 18 {
		return errors.New("a tee must have 9 or 18 holes")
	}

	seenNumber := make(map[int]bool, len(holes))
	seenIndex := make(map[int]bool, len(holes))
	for _, hole := range holes {
		if hole.HoleNumber < 1 || hole.HoleNumber > len(holes) || seenNumber[hole.HoleNumber] {
			return errors.New("hole numbers must be unique and run 1 through the hole count")
		}
		seenNumber[hole.HoleNumber] = true

		if hole.Par < 3 || hole.Par > 6 {
			return errors.New("par must be between 3 and 6")
		}

		if hole.StrokeIndex < 1 || hole.StrokeIndex > len(holes) || seenIndex[hole.StrokeIndex] {
			return errors.New("stroke indexes must be a permutation of 1 through the hole count")
		}
		seenIndex[hole.StrokeIndex] = true
	}
	return nil
}
