package seed

import (
	_ "embed"
	"fmt"
	"math/rand"

	"codezetta/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed question_bank.yaml
var defaultBank []byte

// BankQuestion is one multiple-choice entry of the seed question bank.
type BankQuestion struct {
	Question          string                    `yaml:"question"`
	Options           []string                  `yaml:"options"`
	CorrectIndex      int                       `yaml:"correctIndex"`
	TopicSlug         string                    `yaml:"topicSlug,omitempty"`
	Explanation       string                    `yaml:"explanation,omitempty"`
	LearningResources []domain.LearningResource `yaml:"learningResources,omitempty"`
}

// QuestionBank groups bank entries by subject name and level.
type QuestionBank map[string]map[domain.QuizLevel][]BankQuestion

// DefaultQuestionBank parses the bank compiled into the binary.
func DefaultQuestionBank() (QuestionBank, error) {
	return ParseQuestionBank(defaultBank)
}

// ParseQuestionBank decodes and validates a YAML question bank.
func ParseQuestionBank(data []byte) (QuestionBank, error) {
	var raw map[string]map[string][]BankQuestion
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	bank := make(QuestionBank, len(raw))
	for subject, levels := range raw {
		if !domain.IsKnownSubject(subject) {
			return nil, fmt.Errorf("question bank: unknown subject %q", subject)
		}
		bank[subject] = make(map[domain.QuizLevel][]BankQuestion, len(levels))
		for name, questions := range levels {
			level, ok := domain.ParseQuizLevel(name)
			if !ok {
				return nil, fmt.Errorf("question bank: unknown level %q for %s", name, subject)
			}
			for i, q := range questions {
				if q.Question == "" {
					return nil, fmt.Errorf("question bank: %s/%s #%d has no text", subject, name, i+1)
				}
				if len(q.Options) < 2 {
					return nil, fmt.Errorf("question bank: %s/%s #%d needs at least two options", subject, name, i+1)
				}
				if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
					return nil, fmt.Errorf("question bank: %s/%s #%d has correctIndex out of range", subject, name, i+1)
				}
			}
			bank[subject][level] = questions
		}
	}
	return bank, nil
}

// Questions builds count questions for one subject and level. Bank entries
// are shuffled and reused when there are fewer than count; a subject/level
// pair without entries gets generic placeholder questions.
func (b QuestionBank) Questions(subject string, level domain.QuizLevel, count int, rnd *rand.Rand) []domain.Question {
	entries := b[subject][level]
	questions := make([]domain.Question, 0, count)

	if len(entries) == 0 {
		for i := 1; i <= count; i++ {
			correct := i % 4
			q := domain.Question{
				Text: fmt.Sprintf("(%s) %s question #%d", level, subject, i),
				Type: domain.QuestionTypeMCQ,
			}
			for j, letter := range []string{"A", "B", "C", "D"} {
				q.Options = append(q.Options, domain.AnswerOption{
					Text:      fmt.Sprintf("Option %s for question %d", letter, i),
					IsCorrect: j == correct,
				})
			}
			questions = append(questions, q)
		}
		return questions
	}

	shuffled := make([]BankQuestion, len(entries))
	copy(shuffled, entries)
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	for i := 0; i < count; i++ {
		entry := shuffled[i%len(shuffled)]
		q := domain.Question{
			Text:              fmt.Sprintf("%s (Quiz Question %d)", entry.Question, i+1),
			Type:              domain.QuestionTypeMCQ,
			TopicSlug:         entry.TopicSlug,
			Explanation:       entry.Explanation,
			LearningResources: entry.LearningResources,
		}
		for j, text := range entry.Options {
			q.Options = append(q.Options, domain.AnswerOption{Text: text, IsCorrect: j == entry.CorrectIndex})
		}
		questions = append(questions, q)
	}
	return questions
}
