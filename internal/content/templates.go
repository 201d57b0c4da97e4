package content

import "codezetta/internal/domain"

// QuestionTemplate is one entry of a random-question bank. Text may contain
// the placeholders {subject} and {level}; both are filled with a randomly
// picked subject when a question is generated.
type QuestionTemplate struct {
	Text         string
	Options      [4]string
	CorrectIndex int
}

// QuestionTemplates maps each level to its template bank.
type QuestionTemplates struct {
	banks map[domain.QuizLevel][]QuestionTemplate
	// RandomSubjects are substituted into generated question text.
	RandomSubjects []string
}

func NewQuestionTemplates() *QuestionTemplates {
	return &QuestionTemplates{
		banks: map[domain.QuizLevel][]QuestionTemplate{
			domain.LevelBeginner: {
				{Text: "What is a basic concept in {subject}?", Options: [4]string{"Option A", "Option B", "Option C", "Option D"}, CorrectIndex: 0},
				{Text: "Which is the correct syntax for {level} level?", Options: [4]string{"Syntax A", "Syntax B", "Syntax C", "Syntax D"}, CorrectIndex: 1},
				{Text: "What does this {level} code do?", Options: [4]string{"Action A", "Action B", "Action C", "Action D"}, CorrectIndex: 2},
			},
			domain.LevelMiddle: {
				{Text: "What is an intermediate concept in {subject}?", Options: [4]string{"Concept A", "Concept B", "Concept C", "Concept D"}, CorrectIndex: 1},
				{Text: "How do you implement {level} patterns?", Options: [4]string{"Pattern A", "Pattern B", "Pattern C", "Pattern D"}, CorrectIndex: 2},
			},
			domain.LevelIntermediate: {
				{Text: "What is an advanced concept in {subject}?", Options: [4]string{"Advanced A", "Advanced B", "Advanced C", "Advanced D"}, CorrectIndex: 2},
				{Text: "How do you optimize {level} code?", Options: [4]string{"Optimization A", "Optimization B", "Optimization C", "Optimization D"}, CorrectIndex: 3},
			},
		},
		RandomSubjects: []string{"HTML", "CSS", "JavaScript", "React", "Angular", "NodeJS"},
	}
}

// Bank returns the templates for level; a nil slice for unknown levels.
func (t *QuestionTemplates) Bank(level domain.QuizLevel) []QuestionTemplate {
	return t.banks[level]
}
