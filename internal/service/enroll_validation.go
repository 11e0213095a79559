package service

import (
	"sort"

	"github.com/Zxun2/teammates/internal/models"
)

// Aggregate validation messages. Each rule contributes its sentence at
// most once per validation pass.
const (
	generalErrorMessage = `You may check that: "Section" and "Comment" are optional while "Team", "Name", and "Email" must be filled. "Section", "Team", "Name", and "Comment" should start with an alphabetical character, unless wrapped by curly brackets "{}", and should not contain vertical bar "|" and percentage sign "%". "Email" should contain some text followed by one "@" sign followed by some more text. "Team" should not have the same format as email to avoid mis-interpretation.`

	compulsoryFieldsErrorMessage = "Found empty compulsory fields and/or sections with more than 100 students. "
	duplicateEmailErrorMessage   = "Found duplicated emails. "
	duplicateTeamErrorMessage    = "Found duplicated teams in different sections. "
)

// sectionCompulsoryThreshold is the batch size at and beyond which the
// section field becomes mandatory for every row. The condition is
// batch-wide, not per row.
const sectionCompulsoryThreshold = 100

type rowSet map[int]struct{}

func (s rowSet) add(index int)      { s[index] = struct{}{} }
func (s rowSet) has(index int) bool { _, ok := s[index]; return ok }

// sorted returns the member indices in ascending order; never nil.
func (s rowSet) sorted() []int {
	out := make([]int, 0, len(s))
	for index := range s {
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

// FieldCheckResult aggregates the outcome of one validation pass.
type FieldCheckResult struct {
	InvalidRows  rowSet
	ErrorMessage string
}

// CheckDataFields runs the compulsory-field, duplicate-email, and
// team-consistency rules over the batch. The rules are independent and
// their invalid sets union; a row may be flagged by more than one rule.
// The result is a pure function of the input batch.
func CheckDataFields(requests map[int]models.EnrollRequest) *FieldCheckResult {
	result := &FieldCheckResult{InvalidRows: rowSet{}}
	checkCompulsoryFields(requests, result)
	checkEmailNotRepeated(requests, result)
	checkTeamsValid(requests, result)
	return result
}

func sortedKeys(requests map[int]models.EnrollRequest) []int {
	keys := make([]int, 0, len(requests))
	for index := range requests {
		keys = append(keys, index)
	}
	sort.Ints(keys)
	return keys
}

func checkCompulsoryFields(requests map[int]models.EnrollRequest, result *FieldCheckResult) {
	before := len(result.InvalidRows)
	sectionCompulsory := len(requests) >= sectionCompulsoryThreshold

	for _, index := range sortedKeys(requests) {
		request := requests[index]
		if (sectionCompulsory && request.Section == "") ||
			request.Team == "" ||
			request.Name == "" ||
			request.Email == "" {
			result.InvalidRows.add(index)
		}
	}

	if len(result.InvalidRows) > before {
		result.ErrorMessage += compulsoryFieldsErrorMessage
	}
}

func checkEmailNotRepeated(requests map[int]models.EnrollRequest, result *FieldCheckResult) {
	before := len(result.InvalidRows)
	firstRowByEmail := make(map[string]int)

	for _, index := range sortedKeys(requests) {
		request := requests[index]
		first, seen := firstRowByEmail[request.Email]
		if !seen {
			firstRowByEmail[request.Email] = index
			continue
		}
		// Both the duplicate and the row that established the email
		// are flagged, never only the later one.
		result.InvalidRows.add(index)
		result.InvalidRows.add(first)
	}

	if len(result.InvalidRows) > before {
		result.ErrorMessage += duplicateEmailErrorMessage
	}
}

func checkTeamsValid(requests map[int]models.EnrollRequest, result *FieldCheckResult) {
	before := len(result.InvalidRows)
	sectionByTeam := make(map[string]string)
	firstRowByTeam := make(map[string]int)

	for _, index := range sortedKeys(requests) {
		request := requests[index]
		section, seen := sectionByTeam[request.Team]
		if !seen {
			sectionByTeam[request.Team] = request.Section
			firstRowByTeam[request.Team] = index
			continue
		}
		if section != request.Section {
			// Symmetric with the email rule: the establishing row is
			// retroactively flagged together with the offender.
			result.InvalidRows.add(index)
			result.InvalidRows.add(firstRowByTeam[request.Team])
		}
	}

	if len(result.InvalidRows) > before {
		result.ErrorMessage += duplicateTeamErrorMessage
	}
}
