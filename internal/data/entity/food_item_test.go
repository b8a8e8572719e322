package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCourse(t *testing.T) {
	tests := []struct {
		label  string
		want   Course
		wantOK bool
	}{
		{"Starter", CourseStarter, true},
		{"  starter ", CourseStarter, true},
		{"Entrée", CourseStarter, true},
		{"Plat", CourseMain, true},
		{"main course", CourseMain, true},
		{"Main", CourseMain, true},
		{"DESSERT", CourseDessert, true},
		{"Side", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseCourse(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourseValid(t *testing.T) {
	for _, c := range Courses {
		assert.True(t, c.Valid())
	}
	assert.False(t, Course("starter").Valid())
	assert.False(t, Course("Plat").Valid())
}
