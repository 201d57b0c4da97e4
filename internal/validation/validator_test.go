package validation_test

import (
	"errors"
	"strings"
	"testing"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_RegisterRequest(t *testing.T) {
	v := validation.NewValidator()

	ok := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret", SelectedSubjects: []string{"HTML", "React"}}
	assert.NoError(t, v.Struct(&ok))

	bad := dto.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "123", SelectedSubjects: []string{"COBOL"}}
	err := v.Struct(&bad)
	require.Error(t, err)

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Tag
	}
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "min", fields["password"])
	assert.Equal(t, "subjectname", fields["selectedSubjects[0]"])
}

func TestValidator_NestedQuizFieldPaths(t *testing.T) {
	v := validation.NewValidator()

	req := dto.CreateQuizRequest{
		SubjectID: "s1",
		Level:     "expert",
		Title:     "Flexbox",
		Questions: []dto.CreateQuestionRequest{
			{Text: "", Options: []dto.CreateOptionRequest{{Text: "a"}}},
		},
	}
	err := v.Struct(&req)
	require.Error(t, err)

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	byField := map[string]domain.ValidationError{}
	for _, fe := range verrs {
		byField[fe.Field] = fe
	}
	assert.Equal(t, "quizlevel", byField["level"].Tag)
	assert.Equal(t, "required", byField["questions[0].text"].Tag)
	assert.Equal(t, "questions[0].options must contain at least 2 items", byField["questions[0].options"].Message)
}

func TestValidator_ExactlyOneCorrectOption(t *testing.T) {
	v := validation.NewValidator()

	question := func(flags ...bool) dto.CreateQuestionRequest {
		q := dto.CreateQuestionRequest{Text: "Which tag makes a link?"}
		for i, f := range flags {
			q.Options = append(q.Options, dto.CreateOptionRequest{Text: string(rune('a' + i)), IsCorrect: f})
		}
		return q
	}
	req := func(q dto.CreateQuestionRequest) *dto.CreateQuizRequest {
		return &dto.CreateQuizRequest{SubjectID: "s1", Level: "beginner", Title: "Links", Questions: []dto.CreateQuestionRequest{q}}
	}

	assert.NoError(t, v.Struct(req(question(true, false, false))))

	for _, flags := range [][]bool{{false, false}, {true, true, false}} {
		err := v.Struct(req(question(flags...)))
		require.Error(t, err)
		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 1)
		assert.Equal(t, "onecorrect", verrs[0].Tag)
		assert.Equal(t, "questions[0].options must mark exactly one option as correct", verrs[0].Message)
	}
}

func TestValidator_EmptyAnswersAllowed(t *testing.T) {
	v := validation.NewValidator()

	assert.NoError(t, v.Struct(&dto.SubmitQuizRequest{}))
	assert.NoError(t, v.Struct(&dto.SubmitQuizRequest{Answers: []dto.SubmitAnswer{}}))
	assert.Error(t, v.Struct(&dto.SubmitQuizRequest{Answers: []dto.SubmitAnswer{{QuestionID: "q1"}}}))
}

func TestValidator_AnswerIDLength(t *testing.T) {
	v := validation.NewValidator()
	ulid := "01HZX3K9Q7M2W8T4B6N5R1C0DE"

	assert.NoError(t, v.Struct(&dto.SubmitQuizRequest{Answers: []dto.SubmitAnswer{
		{QuestionID: ulid, SelectedOptionID: ulid},
	}}))

	err := v.Struct(&dto.SubmitQuizRequest{Answers: []dto.SubmitAnswer{
		{QuestionID: ulid, SelectedOptionID: strings.Repeat("x", 1<<20)},
	}})
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "max", verrs[0].Tag)
}

func TestValidator_OptionalPointerFields(t *testing.T) {
	v := validation.NewValidator()

	assert.NoError(t, v.Struct(&dto.UpdateMeRequest{}))

	badURL := "nope"
	assert.Error(t, v.Struct(&dto.UpdateMeRequest{AvatarURL: &badURL}))

	theme := "neon"
	err := v.Struct(&dto.UpdateMeRequest{Preferences: &dto.PreferencesRequest{Theme: &theme}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preferences.theme must be one of [light dark system]")
}
