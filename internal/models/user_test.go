package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func testUser() User {
	birth := NewDate(time.Date(2001, 5, 17, 0, 0, 0, 0, time.UTC))
	return User{
		ID:             42,
		Name:           "Ivan",
		Surname:        "Petrov",
		LastName:       "Sergeevich",
		Phone:          "+79990000000",
		Email:          "ivan@example.com",
		University:     "MSU",
		Birthdate:      &birth,
		Course:         "3",
		ShortStatus:    "busy",
		FullStatus:     "writing a thesis",
		AboutMe:        "gopher",
		Links:          "https://github.com/ivan",
		HashedPassword: "$2a$10$hash",
		CreatedAt:      time.Unix(1700000000, 0),
		UpdatedAt:      time.Unix(1700000000, 0),
	}
}

func TestApplyPatch_OnlyAboutMe(t *testing.T) {
	before := testUser()

	after := ApplyPatch(before, UserPatch{AboutMe: strPtr("x")})

	assert.Equal(t, "x", after.AboutMe)

	// все остальные поля должны остаться без изменений
	expected := testUser()
	expected.AboutMe = "x"
	assert.Equal(t, expected, after)
}

func TestApplyPatch_DoesNotMutateInput(t *testing.T) {
	before := testUser()
	newBirth := NewDate(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	after := ApplyPatch(before, UserPatch{
		Name:      strPtr("Petr"),
		Birthdate: &newBirth,
	})

	assert.Equal(t, "Ivan", before.Name)
	assert.Equal(t, "2001-05-17", before.Birthdate.String())
	assert.Equal(t, "Petr", after.Name)
	assert.Equal(t, "1999-01-01", after.Birthdate.String())
}

func TestApplyPatch_EmptyStringClearsField(t *testing.T) {
	after := ApplyPatch(testUser(), UserPatch{Links: strPtr("")})
	assert.Empty(t, after.Links)
}

func TestApplyPatch_EmptyPatch(t *testing.T) {
	assert.Equal(t, testUser(), ApplyPatch(testUser(), UserPatch{}))
}

func TestApplyPatch_NeverTouchesIdentityOrPassword(t *testing.T) {
	after := ApplyPatch(testUser(), UserPatch{
		Name: strPtr("A"), Surname: strPtr("B"), LastName: strPtr("C"),
		Phone: strPtr("1"), Email: strPtr("e@x.com"), University: strPtr("U"),
		Course: strPtr("1"), ShortStatus: strPtr("s"), FullStatus: strPtr("f"),
		AboutMe: strPtr("a"), Links: strPtr("l"),
	})

	assert.Equal(t, int64(42), after.ID)
	assert.Equal(t, "$2a$10$hash", after.HashedPassword)
}
