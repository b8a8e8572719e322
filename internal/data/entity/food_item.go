package entity

import (
	"strings"
)

type Course string

const (
	CourseStarter Course = "Starter"
	CourseMain    Course = "Main"
	CourseDessert Course = "Dessert"
)

// Courses lists the menu sections in display order
var Courses = []Course{CourseStarter, CourseMain, CourseDessert}

const DefaultAvailability = "Available"

// courseAliases maps lower-cased labels, including the French ones found in
// older menu exports, to their course.
var courseAliases = map[string]Course{
	"starter":     CourseStarter,
	"starters":    CourseStarter,
	"entrée":      CourseStarter,
	"entree":      CourseStarter,
	"main":        CourseMain,
	"mains":       CourseMain,
	"main course": CourseMain,
	"plat":        CourseMain,
	"dessert":     CourseDessert,
	"desserts":    CourseDessert,
}

// ParseCourse normalizes a label to a known course
func ParseCourse(label string) (Course, bool) {
	course, ok := courseAliases[strings.ToLower(strings.TrimSpace(label))]
	return course, ok
}

// Valid reports whether c is exactly one of the canonical courses
func (c Course) Valid() bool {
	switch c {
	case CourseStarter, CourseMain, CourseDessert:
		return true
	}
	return false
}

type FoodItem struct {
	ID            int64    `db:"id"`
	Name          string   `db:"name"`
	Variant       *string  `db:"variant"`
	Course        Course   `db:"course"`
	Ingredients   *string  `db:"ingredients"`
	Description   *string  `db:"description"`
	Price         *float64 `db:"price"`
	Category      *string  `db:"category"`
	CountryOrigin *string  `db:"country_origin"`
	Availability  string   `db:"availability"`
	Calories      *int     `db:"calories"`
}
