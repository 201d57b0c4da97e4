package handler_test

import (
	"context"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/service"
)

// --- Manual Mocks ---

// MockAuthService
type MockAuthService struct {
	RegisterFunc            func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc               func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	MeFunc                  func(ctx context.Context, userID string) (*dto.UserResponse, error)
	ValidateJWTFunc         func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWTFunc           func(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshTokenFunc        func(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	SocialAuthURLFunc       func(provider, state string) (string, error)
	CompleteSocialLoginFunc func(ctx context.Context, provider, code string) (*dto.AuthResponse, error)
	SocialLoginFunc         func(ctx context.Context, profile *domain.SocialProfile) (*dto.AuthResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockAuthService.LoginFunc not implemented")
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	panic("MockAuthService.MeFunc not implemented")
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	panic("MockAuthService.ValidateJWTFunc not implemented")
}

func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	if m.CreateJWTFunc != nil {
		return m.CreateJWTFunc(ctx, user, ttl, tokenType)
	}
	panic("MockAuthService.CreateJWTFunc not implemented")
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshTokenString)
	}
	panic("MockAuthService.RefreshTokenFunc not implemented")
}

func (m *MockAuthService) SocialAuthURL(provider, state string) (string, error) {
	if m.SocialAuthURLFunc != nil {
		return m.SocialAuthURLFunc(provider, state)
	}
	panic("MockAuthService.SocialAuthURLFunc not implemented")
}

func (m *MockAuthService) CompleteSocialLogin(ctx context.Context, provider, code string) (*dto.AuthResponse, error) {
	if m.CompleteSocialLoginFunc != nil {
		return m.CompleteSocialLoginFunc(ctx, provider, code)
	}
	panic("MockAuthService.CompleteSocialLoginFunc not implemented")
}

func (m *MockAuthService) SocialLogin(ctx context.Context, profile *domain.SocialProfile) (*dto.AuthResponse, error) {
	if m.SocialLoginFunc != nil {
		return m.SocialLoginFunc(ctx, profile)
	}
	panic("MockAuthService.SocialLoginFunc not implemented")
}

// MockUserService
type MockUserService struct {
	GetMeFunc                  func(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateMeFunc               func(ctx context.Context, userID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
	UpdatePasswordFunc         func(ctx context.Context, userID string, req *dto.UpdatePasswordRequest) (*dto.MessageResponse, error)
	UpdateProfileFunc          func(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateSelectedSubjectsFunc func(ctx context.Context, userID string, req *dto.UpdateSelectedSubjectsRequest) (*dto.UserResponse, error)
	GetStatsFunc               func(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	GetProfileStatsFunc        func(ctx context.Context, userID string) (*dto.ProfileStatsResponse, error)
	GetProfileWithAttemptsFunc func(ctx context.Context, userID string) (*dto.ProfileWithAttemptsResponse, error)
	GetPointsFunc              func(ctx context.Context, userID string) (*dto.PointsResponse, error)
	GetAttemptsFunc            func(ctx context.Context, userID string) ([]dto.AttemptListItem, error)
	GetLeaderboardPositionFunc func(ctx context.Context, userID string) (*dto.LeaderboardPositionResponse, error)
	SyncPointsFunc             func(ctx context.Context, userID string) (*dto.SyncPointsResponse, error)
	GetByIDFunc                func(ctx context.Context, id string) (*dto.UserResponse, error)
	GetLeaderboardFunc         func(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

func (m *MockUserService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx, userID)
	}
	panic("MockUserService.GetMeFunc not implemented")
}

func (m *MockUserService) UpdateMe(ctx context.Context, userID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	if m.UpdateMeFunc != nil {
		return m.UpdateMeFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdateMeFunc not implemented")
}

func (m *MockUserService) UpdatePassword(ctx context.Context, userID string, req *dto.UpdatePasswordRequest) (*dto.MessageResponse, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdatePasswordFunc not implemented")
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdateProfileFunc not implemented")
}

func (m *MockUserService) UpdateSelectedSubjects(ctx context.Context, userID string, req *dto.UpdateSelectedSubjectsRequest) (*dto.UserResponse, error) {
	if m.UpdateSelectedSubjectsFunc != nil {
		return m.UpdateSelectedSubjectsFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdateSelectedSubjectsFunc not implemented")
}

func (m *MockUserService) GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, userID)
	}
	panic("MockUserService.GetStatsFunc not implemented")
}

func (m *MockUserService) GetProfileStats(ctx context.Context, userID string) (*dto.ProfileStatsResponse, error) {
	if m.GetProfileStatsFunc != nil {
		return m.GetProfileStatsFunc(ctx, userID)
	}
	panic("MockUserService.GetProfileStatsFunc not implemented")
}

func (m *MockUserService) GetProfileWithAttempts(ctx context.Context, userID string) (*dto.ProfileWithAttemptsResponse, error) {
	if m.GetProfileWithAttemptsFunc != nil {
		return m.GetProfileWithAttemptsFunc(ctx, userID)
	}
	panic("MockUserService.GetProfileWithAttemptsFunc not implemented")
}

func (m *MockUserService) GetPoints(ctx context.Context, userID string) (*dto.PointsResponse, error) {
	if m.GetPointsFunc != nil {
		return m.GetPointsFunc(ctx, userID)
	}
	panic("MockUserService.GetPointsFunc not implemented")
}

func (m *MockUserService) GetAttempts(ctx context.Context, userID string) ([]dto.AttemptListItem, error) {
	if m.GetAttemptsFunc != nil {
		return m.GetAttemptsFunc(ctx, userID)
	}
	panic("MockUserService.GetAttemptsFunc not implemented")
}

func (m *MockUserService) GetLeaderboardPosition(ctx context.Context, userID string) (*dto.LeaderboardPositionResponse, error) {
	if m.GetLeaderboardPositionFunc != nil {
		return m.GetLeaderboardPositionFunc(ctx, userID)
	}
	panic("MockUserService.GetLeaderboardPositionFunc not implemented")
}

func (m *MockUserService) SyncPoints(ctx context.Context, userID string) (*dto.SyncPointsResponse, error) {
	if m.SyncPointsFunc != nil {
		return m.SyncPointsFunc(ctx, userID)
	}
	panic("MockUserService.SyncPointsFunc not implemented")
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	panic("MockUserService.GetByIDFunc not implemented")
}

func (m *MockUserService) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, limit)
	}
	panic("MockUserService.GetLeaderboardFunc not implemented")
}

// MockSubjectService
type MockSubjectService struct {
	ListFunc         func(ctx context.Context) ([]dto.SubjectResponse, error)
	GetFunc          func(ctx context.Context, id string) (*dto.SubjectResponse, error)
	CreateFunc       func(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	FindOrCreateFunc func(ctx context.Context, name, description string) (*domain.Subject, error)
}

func (m *MockSubjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	panic("MockSubjectService.ListFunc not implemented")
}

func (m *MockSubjectService) Get(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockSubjectService.GetFunc not implemented")
}

func (m *MockSubjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	panic("MockSubjectService.CreateFunc not implemented")
}

func (m *MockSubjectService) FindOrCreate(ctx context.Context, name, description string) (*domain.Subject, error) {
	if m.FindOrCreateFunc != nil {
		return m.FindOrCreateFunc(ctx, name, description)
	}
	panic("MockSubjectService.FindOrCreateFunc not implemented")
}

// MockQuizService
type MockQuizService struct {
	ListFunc   func(ctx context.Context, filter domain.QuizFilter, userID string) ([]dto.QuizListItem, error)
	GetFunc    func(ctx context.Context, id string) (*dto.QuizDetailResponse, error)
	CreateFunc func(ctx context.Context, req *dto.CreateQuizRequest, creatorID string) (*dto.QuizDetailResponse, error)
	UpdateFunc func(ctx context.Context, id string, req *dto.UpdateQuizRequest, editorID string) (*dto.QuizDetailResponse, error)
	DeleteFunc func(ctx context.Context, id string) (*dto.DeleteQuizResponse, error)
}

func (m *MockQuizService) List(ctx context.Context, filter domain.QuizFilter, userID string) ([]dto.QuizListItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, userID)
	}
	panic("MockQuizService.ListFunc not implemented")
}

func (m *MockQuizService) Get(ctx context.Context, id string) (*dto.QuizDetailResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockQuizService.GetFunc not implemented")
}

func (m *MockQuizService) Create(ctx context.Context, req *dto.CreateQuizRequest, creatorID string) (*dto.QuizDetailResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req, creatorID)
	}
	panic("MockQuizService.CreateFunc not implemented")
}

func (m *MockQuizService) Update(ctx context.Context, id string, req *dto.UpdateQuizRequest, editorID string) (*dto.QuizDetailResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req, editorID)
	}
	panic("MockQuizService.UpdateFunc not implemented")
}

func (m *MockQuizService) Delete(ctx context.Context, id string) (*dto.DeleteQuizResponse, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockQuizService.DeleteFunc not implemented")
}

// MockAttemptService
type MockAttemptService struct {
	SubmitFunc                  func(ctx context.Context, quizID, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	ListMineFunc                func(ctx context.Context, userID string) ([]dto.AttemptListItem, error)
	GetDetailFunc               func(ctx context.Context, attemptID, userID string) (*dto.AttemptDetailResponse, error)
	CheckLevelCompletionFunc    func(ctx context.Context, level, userID string) (*dto.LevelCompletionResponse, error)
	GenerateRandomQuestionsFunc func(ctx context.Context, req *dto.GenerateRandomQuestionsRequest, userID string) (*dto.GenerateRandomQuestionsResponse, error)
}

func (m *MockAttemptService) Submit(ctx context.Context, quizID, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, quizID, userID, req)
	}
	panic("MockAttemptService.SubmitFunc not implemented")
}

func (m *MockAttemptService) ListMine(ctx context.Context, userID string) ([]dto.AttemptListItem, error) {
	if m.ListMineFunc != nil {
		return m.ListMineFunc(ctx, userID)
	}
	panic("MockAttemptService.ListMineFunc not implemented")
}

func (m *MockAttemptService) GetDetail(ctx context.Context, attemptID, userID string) (*dto.AttemptDetailResponse, error) {
	if m.GetDetailFunc != nil {
		return m.GetDetailFunc(ctx, attemptID, userID)
	}
	panic("MockAttemptService.GetDetailFunc not implemented")
}

func (m *MockAttemptService) CheckLevelCompletion(ctx context.Context, level, userID string) (*dto.LevelCompletionResponse, error) {
	if m.CheckLevelCompletionFunc != nil {
		return m.CheckLevelCompletionFunc(ctx, level, userID)
	}
	panic("MockAttemptService.CheckLevelCompletionFunc not implemented")
}

func (m *MockAttemptService) GenerateRandomQuestions(ctx context.Context, req *dto.GenerateRandomQuestionsRequest, userID string) (*dto.GenerateRandomQuestionsResponse, error) {
	if m.GenerateRandomQuestionsFunc != nil {
		return m.GenerateRandomQuestionsFunc(ctx, req, userID)
	}
	panic("MockAttemptService.GenerateRandomQuestionsFunc not implemented")
}

// MockSessionService
type MockSessionService struct {
	StartFunc     func(ctx context.Context, userID, quizID string) (*dto.SessionResponse, error)
	HeartbeatFunc func(ctx context.Context, userID, sessionID string) error
}

func (m *MockSessionService) Start(ctx context.Context, userID, quizID string) (*dto.SessionResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID, quizID)
	}
	panic("MockSessionService.StartFunc not implemented")
}

func (m *MockSessionService) Heartbeat(ctx context.Context, userID, sessionID string) error {
	if m.HeartbeatFunc != nil {
		return m.HeartbeatFunc(ctx, userID, sessionID)
	}
	panic("MockSessionService.HeartbeatFunc not implemented")
}

// MockShareService
type MockShareService struct {
	CreateShareLinkFunc  func(ctx context.Context, attemptID string) (*dto.ShareLinkResponse, error)
	GetAttemptBySlugFunc func(ctx context.Context, slug string) (*dto.SharedAttemptView, error)
	PostToLinkedInFunc   func(ctx context.Context, attemptID string) error
}

func (m *MockShareService) CreateShareLink(ctx context.Context, attemptID string) (*dto.ShareLinkResponse, error) {
	if m.CreateShareLinkFunc != nil {
		return m.CreateShareLinkFunc(ctx, attemptID)
	}
	panic("MockShareService.CreateShareLinkFunc not implemented")
}

func (m *MockShareService) GetAttemptBySlug(ctx context.Context, slug string) (*dto.SharedAttemptView, error) {
	if m.GetAttemptBySlugFunc != nil {
		return m.GetAttemptBySlugFunc(ctx, slug)
	}
	panic("MockShareService.GetAttemptBySlugFunc not implemented")
}

func (m *MockShareService) PostToLinkedIn(ctx context.Context, attemptID string) error {
	if m.PostToLinkedInFunc != nil {
		return m.PostToLinkedInFunc(ctx, attemptID)
	}
	panic("MockShareService.PostToLinkedInFunc not implemented")
}

// MockAIQuizService
type MockAIQuizService struct {
	GenerateQuizFunc func(ctx context.Context, req *dto.GenerateQuizRequest, userID string) (*dto.QuizDetailResponse, error)
}

func (m *MockAIQuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest, userID string) (*dto.QuizDetailResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req, userID)
	}
	panic("MockAIQuizService.GenerateQuizFunc not implemented")
}

var (
	_ service.AuthService = (*MockAuthService)(nil)
	_ service.UserService = (*MockUserService)(nil)
	_ service.SubjectService = (*MockSubjectService)(nil)
	_ service.QuizService = (*MockQuizService)(nil)
	_ service.AttemptService = (*MockAttemptService)(nil)
	_ service.SessionService = (*MockSessionService)(nil)
	_ service.ShareService = (*MockShareService)(nil)
	_ service.AIQuizService = (*MockAIQuizService)(nil)
)
