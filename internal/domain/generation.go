package domain

import "context"

// GenerationClient sends a prompt to a text generation service and returns the raw
// text it answered with. Transport failures are reported as TransportError.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuestionRequest describes the quiz to generate.
type QuestionRequest struct {
	Subject    string
	Grade      string
	Difficulty string
	SourceText string
	// RecentFeedback summarises earlier feedback for the subject so the generator can
	// focus on weak areas. It may be empty.
	RecentFeedback []FeedbackReport
}

// FeedbackRequest describes a graded quiz to assess.
type FeedbackRequest struct {
	Subject   string
	Grade     string
	Questions []Question
	Answers   []AnswerRecord
	Topics    []string
	Score     float64
}

// QuizGenerator produces normalized questions and feedback. Implementations own the
// prompt wording, the generation call and the output pipeline.
type QuizGenerator interface {
	GenerateQuestions(ctx context.Context, req QuestionRequest) (*QuestionSet, error)
	GenerateFeedback(ctx context.Context, req FeedbackRequest) (*FeedbackReport, error)
}
