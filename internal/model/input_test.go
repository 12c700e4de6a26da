package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceFromText(t *testing.T) {
	t.Run("parses the exchange format", func(t *testing.T) {
		// Arrange
		content := "Number of students: 3\n" +
			"Number of exams: 2\n" +
			"Number of slots: 4\n" +
			"Number of rooms: 2\n" +
			"Room 0 capacity: 2\n" +
			"Room 1 capacity: 5\n" +
			"0 0\n" +
			"0 1\n" +
			"1 2\n"
		file := filepath.Join(t.TempDir(), "instance.txt")
		assert.Nil(t, os.WriteFile(file, []byte(content), 0666))

		// Act
		instance, err := InstanceFromText(file)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, 3, instance.Students)
		assert.Equal(t, 2, instance.Exams)
		assert.Equal(t, 4, instance.Slots)
		assert.Equal(t, 2, instance.Rooms)
		assert.Equal(t, []int{2, 5}, instance.RoomCapacities)
		assert.Equal(t, 2, instance.ExamSize(0))
		assert.Equal(t, []int{2}, instance.StudentsOf(1))
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "instance.txt")
		assert.Nil(t, os.WriteFile(file, []byte("Number of students: many\n"), 0666))

		_, err := InstanceFromText(file)

		assert.NotNil(t, err)
	})

	t.Run("rejects a malformed enrollment line", func(t *testing.T) {
		content := "Number of students: 1\n" +
			"Number of exams: 1\n" +
			"Number of slots: 1\n" +
			"Number of rooms: 1\n" +
			"Room 0 capacity: 1\n" +
			"0 zero\n"
		file := filepath.Join(t.TempDir(), "instance.txt")
		assert.Nil(t, os.WriteFile(file, []byte(content), 0666))

		_, err := InstanceFromText(file)

		assert.NotNil(t, err)
	})
}

func TestInputFromJSON(t *testing.T) {
	content := `{
		"numberOfStudents": 2,
		"numberOfExams": 2,
		"numberOfSlots": 3,
		"numberOfRooms": 1,
		"roomCapacities": [4],
		"examStudents": [[0, 0], [1, 0], [1, 1]]
	}`
	file := filepath.Join(t.TempDir(), "instance.json")
	assert.Nil(t, os.WriteFile(file, []byte(content), 0666))

	instance, err := InputFromJSON(file)

	assert.Nil(t, err)
	assert.Equal(t, 2, instance.Students)
	assert.Equal(t, 2, instance.Exams)
	assert.Equal(t, 3, instance.Slots)
	assert.Equal(t, []int{4}, instance.RoomCapacities)
	assert.Equal(t, [][2]int{{0, 1}}, instance.ClashPairs())
}
