package pipeline

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"studybuddy/internal/domain"
)

// feedbackSchema only enforces presence of the three top-level keys; values are
// coerced afterwards.
const feedbackSchema = `{
  "type": "object",
  "required": ["strengths", "weaknesses", "recommendations"]
}`

var feedbackSchemaLoader = gojsonschema.NewStringLoader(feedbackSchema)

// NormalizeQuestionSet coerces v into a QuestionSet, defaulting every missing or
// malformed field. It fails only when v has no questions at all.
func NormalizeQuestionSet(v Value, subject string) (*domain.QuestionSet, error) {
	if !v.IsObject() {
		return nil, domain.NewSchemaInvalidError("question set must be an object")
	}
	field, _ := v.Field("questions")
	items, ok := field.Array()
	if !ok || len(items) == 0 {
		return nil, domain.NewSchemaInvalidError("question set has no questions")
	}

	set := &domain.QuestionSet{
		Questions:        make([]domain.Question, 0, len(items)),
		Topics:           normalizeTopics(v, subject),
		ImprovementAreas: normalizeImprovementAreas(v, subject),
	}
	for i, item := range items {
		set.Questions = append(set.Questions, normalizeQuestion(item, i))
	}
	return set, nil
}

func normalizeQuestion(v Value, i int) domain.Question {
	q := domain.Question{
		Text:        fmt.Sprintf("Question %d", i+1),
		Explanation: fmt.Sprintf("Explanation for question %d", i+1),
	}
	if s, ok := v.String(); ok && strings.TrimSpace(s) != "" {
		q.Text = strings.TrimSpace(s)
	}
	if s := fieldText(v, "text", "question"); s != "" {
		q.Text = s
	}
	if s := fieldText(v, "explanation"); s != "" {
		q.Explanation = s
	}

	if opts, ok := v.Field("options"); ok {
		if arr, ok := opts.Array(); ok {
			for _, o := range arr {
				q.Options = append(q.Options, o.Text())
			}
		}
	}
	for len(q.Options) < domain.OptionsPerQuestion {
		q.Options = append(q.Options, fmt.Sprintf("Option %d", len(q.Options)+1))
	}

	if ca, ok := v.Field("correctAnswer", "correct_answer"); ok {
		if n, ok := ca.Int(); ok && n >= 0 && n < domain.OptionsPerQuestion {
			q.CorrectAnswer = n
		}
	}
	return q
}

func normalizeTopics(v Value, subject string) []string {
	var topics []string
	seen := make(map[string]bool)
	if field, ok := v.Field("topics"); ok {
		for _, t := range textList(field) {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		topics = []string{defaultTopic(subject)}
	}
	return topics
}

func normalizeImprovementAreas(v Value, subject string) []domain.ImprovementArea {
	var areas []domain.ImprovementArea
	if field, ok := v.Field("improvementAreas", "improvement_areas"); ok {
		items, isArray := field.Array()
		if !isArray && !field.IsNull() {
			items = []Value{field}
		}
		for _, item := range items {
			if item.IsObject() {
				topic := fieldText(item, "topic", "area", "name")
				desc := fieldText(item, "description", "details")
				if topic == "" && desc == "" {
					continue
				}
				if topic == "" {
					topic = defaultTopic(subject)
				}
				if desc == "" {
					desc = "Review " + topic
				}
				areas = append(areas, domain.ImprovementArea{Topic: topic, Description: desc})
				continue
			}
			if s := strings.TrimSpace(item.Text()); s != "" {
				areas = append(areas, domain.ImprovementArea{Topic: s, Description: "Review " + s})
			}
		}
	}
	if len(areas) == 0 {
		areas = []domain.ImprovementArea{{
			Topic:       defaultTopic(subject),
			Description: "Review the core concepts covered in this quiz",
		}}
	}
	return areas
}

func defaultTopic(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "General fundamentals"
	}
	return subject + " fundamentals"
}

// NormalizeFeedbackReport coerces v into a FeedbackReport. Unlike questions, an
// assessment is never synthesized: a missing top-level key is SchemaInvalid.
func NormalizeFeedbackReport(v Value) (*domain.FeedbackReport, error) {
	result, err := gojsonschema.Validate(feedbackSchemaLoader, gojsonschema.NewGoLoader(v.Raw()))
	if err != nil {
		return nil, domain.NewError(domain.CodeSchemaInvalid, "feedback report could not be checked", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, domain.NewSchemaInvalidError("feedback report is invalid: " + strings.Join(msgs, "; "))
	}

	strengths, _ := v.Field("strengths")
	weaknesses, _ := v.Field("weaknesses")
	recs, _ := v.Field("recommendations")

	report := &domain.FeedbackReport{
		Strengths:       textList(strengths),
		Weaknesses:      textList(weaknesses),
		Recommendations: []domain.Recommendation{},
	}

	items, ok := recs.Array()
	if !ok && !recs.IsNull() {
		items = []Value{recs}
	}
	for _, item := range items {
		if rec, ok := normalizeRecommendation(item); ok {
			report.Recommendations = append(report.Recommendations, rec)
		}
	}
	return report, nil
}

func normalizeRecommendation(v Value) (domain.Recommendation, bool) {
	if !v.IsObject() {
		s := strings.TrimSpace(v.Text())
		if s == "" {
			return domain.Recommendation{}, false
		}
		return domain.Recommendation{Topic: s, Action: s, Resources: []string{}}, true
	}
	rec := domain.Recommendation{
		Topic:     fieldText(v, "topic"),
		Action:    fieldText(v, "action", "suggestion"),
		Resources: []string{},
	}
	if res, ok := v.Field("resources"); ok {
		rec.Resources = textList(res)
	}
	if rec.Topic == "" && rec.Action == "" {
		return domain.Recommendation{}, false
	}
	return rec, true
}

// textList coerces an array, a single scalar or null into a list of non-blank strings.
func textList(v Value) []string {
	out := []string{}
	items, ok := v.Array()
	if !ok {
		if v.IsNull() {
			return out
		}
		items = []Value{v}
	}
	for _, item := range items {
		if s := strings.TrimSpace(item.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func fieldText(v Value, names ...string) string {
	f, ok := v.Field(names...)
	if !ok {
		return ""
	}
	if _, isObj := f.Raw().(map[string]interface{}); isObj {
		return ""
	}
	return strings.TrimSpace(f.Text())
}
