package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior educator for the Bihar School Examination Board (BSEB). ` +
	`You specialize in creating practice material for Class 10 students. ` +
	`Your tone is encouraging and your questions are strictly aligned with the SCERT/NCERT Bihar syllabus.`

// buildUserMessage renders the batch request.
func buildUserMessage(input GenerateInput) string {
	scope := "for the general subject area"
	if input.Chapter != "" {
		scope = "specifically for the chapter: " + input.Chapter
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d high-quality MCQ questions for Bihar Board (BSEB) Class 10 students for the subject: %s, %s.\n\n",
		input.Count, input.Subject, scope)

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "1. Difficulty Level: %s. Ensure all questions strictly adhere to this level.\n", input.Difficulty)
	b.WriteString("2. Language: Mix of Hindi and English (Hinglish).\n")
	b.WriteString("3. Include detailed explanations in Hindi.\n")
	b.WriteString("4. Ensure all options are realistic and distinct.\n")
	b.WriteString("5. Give every question a unique id.\n\n")

	b.WriteString("Format for each question:\n")
	b.WriteString("- id: unique string\n")
	b.WriteString("- question: string\n")
	b.WriteString("- options: array of 4 strings\n")
	b.WriteString("- correctAnswerIndex: number (0-3)\n")
	b.WriteString("- explanation: string (detailed in Hindi)\n")
	fmt.Fprintf(&b, "- difficulty: string (must be %q)", input.Difficulty)

	return b.String()
}
