package service

import (
	"fmt"
	"strings"

	"studybuddy/internal/domain"
)

// maxSourceRunes bounds how much study material is embedded in a prompt.
const maxSourceRunes = 12000

func buildQuestionPrompt(req domain.QuestionRequest, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly tutor writing a multiple-choice quiz for a grade %s student studying %s.\n", req.Grade, req.Subject)
	fmt.Fprintf(&b, "Write %d %s questions.", count, strings.ToLower(req.Difficulty))

	if src := strings.TrimSpace(req.SourceText); src != "" {
		runes := []rune(src)
		if len(runes) > maxSourceRunes {
			src = string(runes[:maxSourceRunes])
		}
		b.WriteString(" Base every question on the study material below.\n\nStudy material:\n\"\"\"\n")
		b.WriteString(src)
		b.WriteString("\n\"\"\"\n")
	} else {
		b.WriteString("\n")
	}

	var weaknesses []string
	for _, fb := range req.RecentFeedback {
		weaknesses = append(weaknesses, fb.Weaknesses...)
	}
	if len(weaknesses) > 0 {
		fmt.Fprintf(&b, "\nThe student recently struggled with: %s. Include questions on these areas.\n", strings.Join(weaknesses, "; "))
	}

	b.WriteString(`
Respond with ONLY a JSON object in the following format:
{
    "questions": [
        {
            "text": "question text",
            "options": ["option 1", "option 2", "option 3", "option 4"],
            "correctAnswer": 0,
            "explanation": "why the correct option is right"
        }
    ],
    "topics": ["topic covered"],
    "improvementAreas": [{"topic": "topic", "description": "what to practise"}]
}

Rules:
1. Every question has exactly 4 options
2. correctAnswer is the 0-based index of the correct option
3. Do not wrap the JSON in code and do not add commentary`)
	return b.String()
}

func buildFeedbackPrompt(req domain.FeedbackRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly tutor reviewing a %s quiz taken by a grade %s student.\n", req.Subject, req.Grade)
	fmt.Fprintf(&b, "The student scored %.0f%%.\n\nAnswers:\n", req.Score*100)

	for _, a := range req.Answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(req.Questions) {
			continue
		}
		q := req.Questions[a.QuestionIndex]
		result := "incorrect"
		if a.Correct {
			result = "correct"
		}
		fmt.Fprintf(&b, "%d. %s\n   Chosen: %s\n   Correct: %s\n   Result: %s\n",
			a.QuestionIndex+1, q.Text, optionText(q, a.SelectedOption), optionText(q, q.CorrectAnswer), result)
	}
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "\nTopics: %s\n", strings.Join(req.Topics, ", "))
	}

	b.WriteString(`
Respond with ONLY a JSON object in the following format:
{
    "strengths": ["what the student did well"],
    "weaknesses": ["what the student should improve"],
    "recommendations": [{"topic": "topic", "action": "what to do next", "resources": ["resource"]}]
}`)
	return b.String()
}

func optionText(q domain.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return "(none)"
	}
	return q.Options[i]
}
