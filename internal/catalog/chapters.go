package catalog

import "github.com/abhisek/boardprep/internal/quiz"

var chaptersBySubject = map[quiz.Subject][]quiz.Chapter{
	quiz.Mathematics: {
		{ID: "m-c1", Name: "Real Numbers (वास्तविक संख्याएँ)", Description: "Euclid division lemma, Fundamental theorem of arithmetic", TotalQuestions: 15, Completed: true},
		{ID: "m-c2", Name: "Polynomials (बहुपद)", Description: "Zeros of a polynomial, Relationship between zeros and coefficients", TotalQuestions: 12},
		{ID: "m-c3", Name: "Trigonometry (त्रिकोणमिति)", Description: "Ratios, Identities and Heights & Distances", TotalQuestions: 20},
		{ID: "m-c4", Name: "Quadratic Equations (द्विघात समीकरण)", Description: "Standard form, Solution by factorization", TotalQuestions: 10},
	},
	quiz.Science: {
		{ID: "s-c1", Name: "Chemical Reactions (रासायनिक अभिक्रियाएँ)", Description: "Equations, Types of reactions", TotalQuestions: 15},
		{ID: "s-c2", Name: "Light (प्रकाश)", Description: "Reflection and Refraction, Spherical mirrors", TotalQuestions: 18},
		{ID: "s-c3", Name: "Life Processes (जैव प्रक्रम)", Description: "Nutrition, Respiration, Transportation", TotalQuestions: 25},
	},
	quiz.SocialScience: {
		{ID: "ss-c1", Name: "History: Europe (यूरोप में राष्ट्रवाद)", Description: "Rise of nationalism in Europe", TotalQuestions: 15},
		{ID: "ss-c2", Name: "Geography (भारत: संसाधन एवं उपयोग)", Description: "Natural resources of India and Bihar", TotalQuestions: 20},
	},
	quiz.Hindi: {
		{ID: "h-c1", Name: "Shram Vibhajan (श्रम विभाजन और जाति प्रथा)", Description: "B.R. Ambedkar's essay analysis", TotalQuestions: 10},
		{ID: "h-c2", Name: "Vyakaran (व्याकरण)", Description: "Nouns, Case, and Gender in Hindi", TotalQuestions: 30},
	},
	quiz.English: {
		{ID: "e-c1", Name: "The Pace for Living", Description: "R.C. Hutchinson's outlook on modern life", TotalQuestions: 12},
	},
}

// Subjects returns the exam subjects in display order.
func Subjects() []quiz.Subject {
	out := make([]quiz.Subject, len(quiz.AllSubjects))
	copy(out, quiz.AllSubjects)
	return out
}

// Chapters returns the chapters for a subject. The returned slice is a copy.
func Chapters(subject quiz.Subject) []quiz.Chapter {
	src := chaptersBySubject[subject]
	out := make([]quiz.Chapter, len(src))
	copy(out, src)
	return out
}

// FindChapter looks up a chapter by ID or exact name across all subjects.
func FindChapter(idOrName string) (quiz.Subject, quiz.Chapter, bool) {
	for _, subject := range quiz.AllSubjects {
		for _, ch := range chaptersBySubject[subject] {
			if ch.ID == idOrName || ch.Name == idOrName {
				return subject, ch, true
			}
		}
	}
	return "", quiz.Chapter{}, false
}
