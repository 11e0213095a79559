package service

import (
	"fmt"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
)

// enrollResultSummary carries the classification of one submission cycle
// back to the orchestrator.
type enrollResultSummary struct {
	panels        []models.EnrollResultPanel
	newRows       rowSet
	modifiedRows  rowSet
	unchangedRows rowSet
	errorMessage  string
	notices       []dto.Notice
}

// buildEnrollResultPanels classifies every student touched by a submission
// into exactly one outcome category by diffing the platform's answers
// against the pre-submission roster snapshot. Equality is checked before
// existence: a full five-field match wins over an email-only match.
func buildEnrollResultPanels(courseID string, enrolled, roster []models.Student, requests map[int]models.EnrollRequest) *enrollResultSummary {
	lists := make(map[models.EnrollStatus][]models.Student, len(models.EnrollStatusOrder))
	for _, status := range models.EnrollStatusOrder {
		lists[status] = []models.Student{}
	}

	summary := &enrollResultSummary{
		newRows:       rowSet{},
		modifiedRows:  rowSet{},
		unchangedRows: rowSet{},
	}

	rowByEmail := make(map[string]int, len(requests))
	for _, index := range sortedKeys(requests) {
		rowByEmail[requests[index].Email] = index
	}

	// Roster students untouched by this submission.
	for _, existing := range roster {
		if findByEmail(enrolled, existing.Email) == nil {
			lists[models.EnrollStatusUnmodified] = append(lists[models.EnrollStatusUnmodified], existing)
		}
	}

	for _, student := range enrolled {
		switch {
		case findSameEnrollInformation(roster, student) != nil:
			lists[models.EnrollStatusModifiedUnchanged] = append(lists[models.EnrollStatusModifiedUnchanged], student)
			markRow(rowByEmail, student.Email, summary.unchangedRows)
		case findByEmail(roster, student.Email) != nil:
			lists[models.EnrollStatusModified] = append(lists[models.EnrollStatusModified], student)
			markRow(rowByEmail, student.Email, summary.modifiedRows)
		default:
			lists[models.EnrollStatusNew] = append(lists[models.EnrollStatusNew], student)
			markRow(rowByEmail, student.Email, summary.newRows)
		}
	}

	// Submitted rows that never made it into the platform's results. The
	// platform returned nothing for them, so the display student is
	// synthesized from the request itself.
	for _, index := range sortedKeys(requests) {
		request := requests[index]
		if findByEmail(enrolled, request.Email) != nil {
			continue
		}
		lists[models.EnrollStatusError] = append(lists[models.EnrollStatusError], models.Student{
			Email:       request.Email,
			CourseID:    courseID,
			Name:        request.Name,
			TeamName:    request.Team,
			SectionName: request.Section,
			Comments:    request.Comments,
			JoinState:   models.JoinStateNotJoined,
		})
	}

	messages := map[models.EnrollStatus]string{
		models.EnrollStatusError:             "%d student(s) failed to be enrolled:",
		models.EnrollStatusNew:               "%d student(s) added:",
		models.EnrollStatusModified:          "%d student(s) modified:",
		models.EnrollStatusModifiedUnchanged: "%d student(s) updated with no changes:",
		models.EnrollStatusUnmodified:        "%d student(s) remain unmodified:",
	}

	for _, status := range models.EnrollStatusOrder {
		summary.panels = append(summary.panels, models.EnrollResultPanel{
			Status:   status,
			Message:  fmt.Sprintf(messages[status], len(lists[status])),
			Students: lists[status],
		})
	}

	if len(lists[models.EnrollStatusError]) > 0 {
		summary.errorMessage = generalErrorMessage
		summary.notices = append(summary.notices, dto.Notice{
			Level:   dto.NoticeWarning,
			Message: "Some students failed to be enrolled, see the summary below.",
		})
	}

	return summary
}

func findByEmail(students []models.Student, email string) *models.Student {
	for i := range students {
		if students[i].Email == email {
			return &students[i]
		}
	}
	return nil
}

func findSameEnrollInformation(students []models.Student, candidate models.Student) *models.Student {
	for i := range students {
		if students[i].SameEnrollInformation(candidate) {
			return &students[i]
		}
	}
	return nil
}

func markRow(rowByEmail map[string]int, email string, set rowSet) {
	if index, ok := rowByEmail[email]; ok {
		set.add(index)
	}
}
