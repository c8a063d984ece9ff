package components

import "github.com/abhisek/boardprep/internal/quiz"

// SubjectIcon returns the emoji shown next to a subject.
func SubjectIcon(s quiz.Subject) string {
	switch s {
	case quiz.Mathematics:
		return "📐"
	case quiz.Science:
		return "🧪"
	case quiz.SocialScience:
		return "🌍"
	case quiz.Hindi:
		return "🕉️"
	case quiz.English:
		return "🔤"
	}
	return "📘"
}
