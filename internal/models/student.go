package models

// JoinState reflects whether a student has joined the course.
type JoinState string

// Possible join states.
const (
	JoinStateJoined    JoinState = "JOINED"
	JoinStateNotJoined JoinState = "NOT_JOINED"
)

// Student is a server-confirmed member of a course roster. Email is the
// identity key; the remaining enroll fields may change across submissions.
type Student struct {
	Email       string    `json:"email"`
	CourseID    string    `json:"courseId"`
	Name        string    `json:"name"`
	TeamName    string    `json:"teamName"`
	SectionName string    `json:"sectionName"`
	Comments    string    `json:"comments"`
	JoinState   JoinState `json:"joinState"`
}

// SameEnrollInformation reports whether both students carry identical
// enroll fields, email included.
func (s Student) SameEnrollInformation(o Student) bool {
	return s.Email == o.Email &&
		s.Name == o.Name &&
		s.TeamName == o.TeamName &&
		s.SectionName == o.SectionName &&
		s.Comments == o.Comments
}
