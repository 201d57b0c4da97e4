package dto

type CreateShareLinkRequest struct {
	AttemptID string `json:"attemptId" validate:"required"`
}

type ShareLinkResponse struct {
	URL           string `json:"url"`
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
}

type LinkedInPostRequest struct {
	AttemptID string `json:"attemptId" validate:"required"`
}

// SharedAttemptView is the data rendered on the public share page.
type SharedAttemptView struct {
	Title          string
	Description    string
	URL            string
	ImageURL       string
	UserName       string
	QuizTitle      string
	Subject        string
	Level          string
	Score          int
	TotalQuestions int
	Percentage     int
	PointsEarned   int
}
