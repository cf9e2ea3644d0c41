// Package pipeline turns free-form generation output into validated quiz data.
//
// Stages run in order: Sanitize, Extract (only for function-definition source),
// Repair and Normalize. Every stage is pure and safe for concurrent use.
package pipeline

import (
	"go.uber.org/zap"

	"studybuddy/internal/domain"
)

// Pipeline runs the stages and logs what each one did.
type Pipeline struct {
	logger *zap.Logger
}

// New creates a Pipeline. A nil logger disables logging.
func New(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{logger: logger}
}

// Decode runs every stage up to and including the strict parse. Output whose isolated
// object already parses is data, whatever its strings mention.
func (p *Pipeline) Decode(raw string) (Value, error) {
	stripped := StripFences(raw)

	candidate := IsolateObject(stripped)
	if !Valid(candidate) && LooksLikeSource(stripped) {
		extracted, err := Extract(stripped)
		if err != nil {
			p.logger.Warn("No data literal found in function-shaped output",
				zap.Int("raw_length", len(raw)))
			return Value{}, err
		}
		p.logger.Debug("Extracted data literal from function-shaped output",
			zap.String("extracted", extracted))
		candidate = extracted
	}

	repaired, err := Repair(candidate)
	if err != nil {
		p.logger.Warn("Failed to repair generated data",
			zap.Error(err),
			zap.String("candidate", candidate))
		return Value{}, err
	}
	if len(repaired.Applied) > 0 {
		p.logger.Info("Repaired generated data",
			zap.Strings("rules", repaired.Applied))
	}

	v, err := Parse(repaired.Text)
	if err != nil {
		return Value{}, domain.NewSyntaxRepairFailedError(err)
	}
	return v, nil
}

// QuestionSet decodes raw generation output into a normalized question set.
func (p *Pipeline) QuestionSet(raw, subject string) (*domain.QuestionSet, error) {
	v, err := p.Decode(raw)
	if err != nil {
		return nil, err
	}
	set, err := NormalizeQuestionSet(v, subject)
	if err != nil {
		p.logger.Warn("Generated question set rejected", zap.Error(err))
		return nil, err
	}
	return set, nil
}

// FeedbackReport decodes raw generation output into a normalized feedback report.
func (p *Pipeline) FeedbackReport(raw string) (*domain.FeedbackReport, error) {
	v, err := p.Decode(raw)
	if err != nil {
		return nil, err
	}
	report, err := NormalizeFeedbackReport(v)
	if err != nil {
		p.logger.Warn("Generated feedback report rejected", zap.Error(err))
		return nil, err
	}
	return report, nil
}
