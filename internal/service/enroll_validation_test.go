package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zxun2/teammates/internal/models"
)

func validRequest(n int) models.EnrollRequest {
	return models.EnrollRequest{
		Section: fmt.Sprintf("Section %d", n%3),
		Team:    fmt.Sprintf("Team %d", n%3),
		Name:    fmt.Sprintf("Student %d", n),
		Email:   fmt.Sprintf("student%d@example.com", n),
	}
}

func TestCheckDataFieldsAcceptsValidBatch(t *testing.T) {
	requests := map[int]models.EnrollRequest{
		0: {Section: "A", Team: "T1", Name: "Alice", Email: "alice@example.com"},
		1: {Section: "B", Team: "T2", Name: "Bob", Email: "bob@example.com"},
	}

	result := CheckDataFields(requests)

	assert.Empty(t, result.InvalidRows)
	assert.Equal(t, "", result.ErrorMessage)
}

func TestCheckDataFieldsFlagsEmptyCompulsoryFields(t *testing.T) {
	requests := map[int]models.EnrollRequest{
		0: {Team: "T1", Name: "Alice", Email: "alice@example.com"},
		1: {Team: "", Name: "Bob", Email: "bob@example.com"},
		2: {Team: "T2", Name: "", Email: "carol@example.com"},
		3: {Team: "T3", Name: "Dave", Email: ""},
	}

	result := CheckDataFields(requests)

	// Section stays optional for small batches; row 0 is fine.
	assert.Equal(t, []int{1, 2, 3}, result.InvalidRows.sorted())
	assert.Equal(t, compulsoryFieldsErrorMessage, result.ErrorMessage)
}

func TestCheckDataFieldsSectionCompulsoryAtThreshold(t *testing.T) {
	requests := make(map[int]models.EnrollRequest, sectionCompulsoryThreshold)
	for i := 0; i < sectionCompulsoryThreshold; i++ {
		requests[i] = validRequest(i)
	}
	blank := requests[5]
	blank.Section = ""
	blank.Team = "Team solo"
	requests[5] = blank

	result := CheckDataFields(requests)

	assert.Equal(t, []int{5}, result.InvalidRows.sorted())
	assert.Equal(t, compulsoryFieldsErrorMessage, result.ErrorMessage)
}

func TestCheckDataFieldsSectionOptionalBelowThreshold(t *testing.T) {
	requests := make(map[int]models.EnrollRequest, sectionCompulsoryThreshold-1)
	for i := 0; i < sectionCompulsoryThreshold-1; i++ {
		req := validRequest(i)
		req.Section = ""
		requests[i] = req
	}

	result := CheckDataFields(requests)

	assert.Empty(t, result.InvalidRows)
}

func TestCheckDataFieldsFlagsBothDuplicateEmails(t *testing.T) {
	requests := map[int]models.EnrollRequest{
		0: {Section: "A", Team: "T1", Name: "Alice", Email: "same@example.com"},
		1: {Section: "A", Team: "T1", Name: "Bob", Email: "bob@example.com"},
		2: {Section: "A", Team: "T1", Name: "Carol", Email: "same@example.com"},
	}

	result := CheckDataFields(requests)

	// The row that first used the email is flagged together with the
	// duplicate.
	assert.Equal(t, []int{0, 2}, result.InvalidRows.sorted())
	assert.Equal(t, duplicateEmailErrorMessage, result.ErrorMessage)
}

func TestCheckDataFieldsFlagsTeamAcrossSections(t *testing.T) {
	requests := map[int]models.EnrollRequest{
		0: {Section: "A", Team: "T1", Name: "Alice", Email: "alice@example.com"},
		1: {Section: "B", Team: "T1", Name: "Bob", Email: "bob@example.com"},
		2: {Section: "A", Team: "T2", Name: "Carol", Email: "carol@example.com"},
	}

	result := CheckDataFields(requests)

	assert.Equal(t, []int{0, 1}, result.InvalidRows.sorted())
	assert.Equal(t, duplicateTeamErrorMessage, result.ErrorMessage)
}

func TestCheckDataFieldsSameTeamSameSectionIsValid(t *testing.T) {
	requests := map[int]models.EnrollRequest{
		0: {Section: "A", Team: "T1", Name: "Alice", Email: "alice@example.com"},
		1: {Section: "A", Team: "T1", Name: "Bob", Email: "bob@example.com"},
	}

	result := CheckDataFields(requests)

	assert.Empty(t, result.InvalidRows)
}

func TestCheckDataFieldsConcatenatesMessagesInRuleOrder(t *testing.T) {
	requests := map[int]models.EnrollRequest{
		0: {Section: "A", Team: "T1", Name: "", Email: "same@example.com"},
		1: {Section: "A", Team: "T1", Name: "Bob", Email: "same@example.com"},
		2: {Section: "B", Team: "T1", Name: "Carol", Email: "carol@example.com"},
	}

	result := CheckDataFields(requests)

	assert.Equal(t,
		compulsoryFieldsErrorMessage+duplicateEmailErrorMessage+duplicateTeamErrorMessage,
		result.ErrorMessage)
	assert.Equal(t, []int{0, 1, 2}, result.InvalidRows.sorted())
}

func TestCheckDataFieldsIsIdempotent(t *testing.T) {
	requests := map[int]models.EnrollRequest{
		0: {Section: "A", Team: "T1", Name: "Alice", Email: "same@example.com"},
		1: {Section: "A", Team: "T1", Name: "Bob", Email: "same@example.com"},
	}

	first := CheckDataFields(requests)
	second := CheckDataFields(requests)

	assert.Equal(t, first.InvalidRows.sorted(), second.InvalidRows.sorted())
	assert.Equal(t, first.ErrorMessage, second.ErrorMessage)
}
