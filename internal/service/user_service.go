package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLeaderboardLimit = 20
	MaxLeaderboardLimit     = 100
	recentActivityLimit     = 10
)

// UserService defines the interface for user-related operations.
type UserService interface {
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, userID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
	UpdatePassword(ctx context.Context, userID string, req *dto.UpdatePasswordRequest) (*dto.MessageResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateSelectedSubjects(ctx context.Context, userID string, req *dto.UpdateSelectedSubjectsRequest) (*dto.UserResponse, error)
	GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	GetProfileStats(ctx context.Context, userID string) (*dto.ProfileStatsResponse, error)
	GetProfileWithAttempts(ctx context.Context, userID string) (*dto.ProfileWithAttemptsResponse, error)
	GetPoints(ctx context.Context, userID string) (*dto.PointsResponse, error)
	GetAttempts(ctx context.Context, userID string) ([]dto.AttemptListItem, error)
	GetLeaderboardPosition(ctx context.Context, userID string) (*dto.LeaderboardPositionResponse, error)
	SyncPoints(ctx context.Context, userID string) (*dto.SyncPointsResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type userServiceImpl struct {
	userRepo    domain.UserRepository
	attemptRepo domain.AttemptRepository
	leaderboard domain.LeaderboardStore
	bcryptCost  int
	now         func() time.Time
}

// NewUserService creates a new instance of UserService. leaderboard may be
// nil, in which case rankings are read from the database only.
func NewUserService(
	userRepo domain.UserRepository,
	attemptRepo domain.AttemptRepository,
	leaderboard domain.LeaderboardStore,
	bcryptCost int,
) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userServiceImpl{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		leaderboard: leaderboard,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

func (s *userServiceImpl) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	return user, nil
}

func (s *userServiceImpl) loadAttempts(ctx context.Context, userID string) ([]*domain.AttemptWithQuiz, error) {
	attempts, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list attempts", err)
	}
	return attempts, nil
}

func (s *userServiceImpl) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	if id == "me" {
		return nil, domain.NewNotFoundError("User not found")
	}
	return s.GetMe(ctx, id)
}

func (s *userServiceImpl) save(ctx context.Context, user *domain.User) (*dto.UserResponse, error) {
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewBadRequestError("Email already in use")
		}
		return nil, domain.NewInternalError("Failed to update user", err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) UpdateMe(ctx context.Context, userID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Preferences != nil {
		current := user.Preferences
		if current.IsZero() {
			current = domain.DefaultPreferences()
		}
		user.Preferences = current.Merge(req.Preferences.ToDomain())
	}
	return s.save(ctx, user)
}

func (s *userServiceImpl) UpdatePassword(ctx context.Context, userID string, req *dto.UpdatePasswordRequest) (*dto.MessageResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasPassword() {
		return nil, domain.NewBadRequestError("Password change not available for social-only accounts")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, domain.NewBadRequestError("Current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return nil, domain.NewInternalError("Failed to update password", err)
	}
	logger.Get().Info("User password updated", zap.String("userID", userID))
	return &dto.MessageResponse{Message: "Password updated successfully"}, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil && *req.Email != user.Email {
		owner, err := s.userRepo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, domain.NewInternalError("Failed to look up user", err)
		}
		if owner != nil && owner.ID != userID {
			return nil, domain.NewBadRequestError("Email already in use")
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	return s.save(ctx, user)
}

func (s *userServiceImpl) UpdateSelectedSubjects(ctx context.Context, userID string, req *dto.UpdateSelectedSubjectsRequest) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, name := range req.SelectedSubjects {
		if !domain.IsKnownSubject(name) {
			return nil, domain.NewBadRequestError("Unknown subject: " + name)
		}
	}
	user.SelectedSubjects = append([]string{}, req.SelectedSubjects...)
	return s.save(ctx, user)
}

func (s *userServiceImpl) GetPoints(ctx context.Context, userID string) (*dto.PointsResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.PointsResponse{TotalPoints: user.TotalPoints}, nil
}

func (s *userServiceImpl) GetAttempts(ctx context.Context, userID string) ([]dto.AttemptListItem, error) {
	attempts, err := s.loadAttempts(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttemptListItem, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, dto.NewAttemptListItem(a))
	}
	return out, nil
}

func (s *userServiceImpl) GetProfileWithAttempts(ctx context.Context, userID string) (*dto.ProfileWithAttemptsResponse, error) {
	var (
		user     *domain.User
		attempts []dto.AttemptListItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.loadUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		attempts, err = s.GetAttempts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.ProfileWithAttemptsResponse{UserResponse: dto.NewUserResponse(user), Attempts: attempts}, nil
}

func (s *userServiceImpl) GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	attempts, err := s.loadAttempts(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserStatsResponse{TotalQuizzesTaken: len(attempts)}
	for _, a := range attempts {
		resp.TotalQuestionsAnswered += a.TotalQuestions
		resp.TotalCorrectAnswers += a.CorrectAnswersCount
	}
	resp.StreakDays = streakDays(attempts, s.now())
	resp.PerSubjectStats = perSubjectStats(attempts)
	return resp, nil
}

// streakDays counts consecutive local calendar days with at least one
// finished attempt, walking back from today.
func streakDays(attempts []*domain.AttemptWithQuiz, now time.Time) int {
	days := make(map[time.Time]bool, len(attempts))
	for _, a := range attempts {
		t := a.FinishedAt
		if t.IsZero() {
			t = a.StartedAt
		}
		if t.IsZero() {
			continue
		}
		days[startOfDay(t.In(now.Location()))] = true
	}

	streak := 0
	for day := startOfDay(now); days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type subjectAccumulator struct {
	quizzesTaken int
	percentSum   float64
	totalPoints  int
}

// perSubjectStats averages per-attempt percentages by subject. Attempts whose
// quiz was deleted are skipped.
func perSubjectStats(attempts []*domain.AttemptWithQuiz) []dto.PerSubjectStats {
	acc := make(map[string]*subjectAccumulator)
	var order []string
	for _, a := range attempts {
		if !a.QuizExists() {
			continue
		}
		name := a.SubjectName
		if name == "" {
			name = "Unknown"
		}
		st, ok := acc[name]
		if !ok {
			st = &subjectAccumulator{}
			acc[name] = st
			order = append(order, name)
		}
		st.quizzesTaken++
		if a.TotalQuestions > 0 {
			st.percentSum += float64(a.CorrectAnswersCount) / float64(a.TotalQuestions) * 100
		}
		st.totalPoints += a.PointsEarned
	}

	out := make([]dto.PerSubjectStats, 0, len(order))
	for _, name := range order {
		st := acc[name]
		avg := 0
		if st.quizzesTaken > 0 {
			avg = int(st.percentSum/float64(st.quizzesTaken) + 0.5)
		}
		out = append(out, dto.PerSubjectStats{
			Subject:      name,
			QuizzesTaken: st.quizzesTaken,
			AverageScore: avg,
			TotalPoints:  st.totalPoints,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPoints > out[j].TotalPoints })
	return out
}

func (s *userServiceImpl) GetProfileStats(ctx context.Context, userID string) (*dto.ProfileStatsResponse, error) {
	var (
		user     *domain.User
		attempts []*domain.AttemptWithQuiz
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.loadUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		attempts, err = s.loadAttempts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	above, err := s.userRepo.CountWithPointsAbove(ctx, user.TotalPoints)
	if err != nil {
		return nil, domain.NewInternalError("Failed to compute leaderboard position", err)
	}

	stats := dto.ProfileStatistics{TotalQuizzes: len(attempts), LeaderboardPosition: above + 1}
	for _, a := range attempts {
		stats.TotalQuestions += a.TotalQuestions
		stats.TotalCorrectAnswers += a.CorrectAnswersCount
		stats.TotalPointsEarned += a.PointsEarned
		if p := a.Percentage(); p > stats.BestScore {
			stats.BestScore = p
		}
	}
	stats.AverageScore = domain.RoundPercent(stats.TotalCorrectAnswers, stats.TotalQuestions)

	var subjectPerf, levelPerf performanceTable
	recent := make([]dto.RecentActivity, 0, recentActivityLimit)
	for _, a := range attempts {
		if a.QuizExists() {
			if a.SubjectName != "" {
				subjectPerf.add(dto.PerformanceStat{Subject: a.SubjectName}, a.SubjectName, a)
			}
			levelPerf.add(dto.PerformanceStat{Level: string(a.Level)}, string(a.Level), a)
		}
		if len(recent) < recentActivityLimit {
			title := a.QuizTitle
			if !a.QuizExists() {
				title = "Unknown Quiz"
			}
			recent = append(recent, dto.RecentActivity{
				QuizID:         a.QuizID,
				QuizTitle:      title,
				Score:          a.Score,
				TotalQuestions: a.TotalQuestions,
				CorrectAnswers: a.CorrectAnswersCount,
				PointsEarned:   a.PointsEarned,
				Percentage:     a.Percentage(),
				FinishedAt:     a.FinishedAt,
			})
		}
	}

	return &dto.ProfileStatsResponse{
		User: dto.ProfileUserSummary{
			ID:          user.ID,
			Name:        user.Name,
			Email:       dto.NewUserResponse(user).Email,
			Role:        string(user.Role),
			TotalPoints: user.TotalPoints,
			CreatedAt:   user.CreatedAt,
		},
		Statistics:         stats,
		SubjectPerformance: subjectPerf.result(),
		LevelPerformance:   levelPerf.result(),
		RecentActivity:     recent,
		Achievements:       achievements(stats, user.TotalPoints),
	}, nil
}

// performanceTable groups attempts by key in first-seen order.
type performanceTable struct {
	index map[string]int
	rows  []dto.PerformanceStat
}

func (t *performanceTable) add(seed dto.PerformanceStat, key string, a *domain.AttemptWithQuiz) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	i, ok := t.index[key]
	if !ok {
		i = len(t.rows)
		t.index[key] = i
		t.rows = append(t.rows, seed)
	}
	row := &t.rows[i]
	row.Attempts++
	row.TotalQuestions += a.TotalQuestions
	row.CorrectAnswers += a.CorrectAnswersCount
	row.TotalPoints += a.PointsEarned
}

func (t *performanceTable) result() []dto.PerformanceStat {
	out := make([]dto.PerformanceStat, 0, len(t.rows))
	for _, row := range t.rows {
		row.AverageScore = domain.RoundPercent(row.CorrectAnswers, row.TotalQuestions)
		out = append(out, row)
	}
	return out
}

func achievements(stats dto.ProfileStatistics, totalPoints int) []dto.Achievement {
	rules := []struct {
		earned bool
		badge  dto.Achievement
	}{
		{stats.TotalQuizzes >= 1, dto.Achievement{Name: "First Quiz", Icon: "🎯"}},
		{stats.TotalQuizzes >= 10, dto.Achievement{Name: "Quiz Master", Icon: "🏆"}},
		{stats.TotalQuizzes >= 50, dto.Achievement{Name: "Quiz Legend", Icon: "👑"}},
		{stats.BestScore >= 100, dto.Achievement{Name: "Perfect Score", Icon: "💯"}},
		{stats.AverageScore >= 80, dto.Achievement{Name: "Excellent Student", Icon: "⭐"}},
		{totalPoints >= 100, dto.Achievement{Name: "Centurion", Icon: "💪"}},
		{totalPoints >= 500, dto.Achievement{Name: "Point Collector", Icon: "💰"}},
		{totalPoints >= 1000, dto.Achievement{Name: "Point Master", Icon: "🌟"}},
	}
	out := make([]dto.Achievement, 0, len(rules))
	for _, r := range rules {
		if r.earned {
			out = append(out, r.badge)
		}
	}
	return out
}

func (s *userServiceImpl) GetLeaderboardPosition(ctx context.Context, userID string) (*dto.LeaderboardPositionResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var above, total int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		above, err = s.userRepo.CountWithPointsAbove(gctx, user.TotalPoints)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.userRepo.CountAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to compute leaderboard position", err)
	}

	percentile := 100
	if total > 0 {
		percentile = domain.RoundPercent(total-above, total)
	}
	return &dto.LeaderboardPositionResponse{
		Position:    above + 1,
		TotalUsers:  total,
		Percentile:  percentile,
		TotalPoints: user.TotalPoints,
	}, nil
}

func (s *userServiceImpl) SyncPoints(ctx context.Context, userID string) (*dto.SyncPointsResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	points, count, err := s.attemptRepo.SumPointsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to sum attempt points", err)
	}
	if err := s.userRepo.SetPoints(ctx, userID, points); err != nil {
		return nil, domain.NewInternalError("Failed to update points", err)
	}
	s.mirrorScore(ctx, userID, points)

	logger.Get().Info("User points recomputed from attempts",
		zap.String("userID", userID), zap.Int("previous", user.TotalPoints), zap.Int("calculated", points))
	return &dto.SyncPointsResponse{
		PreviousPoints:   user.TotalPoints,
		CalculatedPoints: points,
		AttemptsCount:    count,
	}, nil
}

// mirrorScore copies a points total into the leaderboard store. Failures are
// logged only; the database stays authoritative.
func (s *userServiceImpl) mirrorScore(ctx context.Context, userID string, points int) {
	if s.leaderboard == nil {
		return
	}
	if err := s.leaderboard.SetScore(ctx, userID, points); err != nil {
		logger.Get().Warn("Failed to update leaderboard score", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *userServiceImpl) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	if s.leaderboard != nil {
		entries, err := s.leaderboardFromStore(ctx, limit)
		if err == nil {
			return entries, nil
		}
		logger.Get().Warn("Leaderboard store unavailable, reading from database", zap.Error(err))
	}

	users, err := s.userRepo.ListTopByPoints(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load leaderboard", err)
	}
	out := make([]dto.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		out = append(out, leaderboardEntry(len(out)+1, u, u.TotalPoints))
	}
	return out, nil
}

// leaderboardFromStore reads the top ids from the sorted set. The set is
// rebuilt from the database when it was never seeded or when it holds fewer
// members than there are users.
func (s *userServiceImpl) leaderboardFromStore(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	stale, err := s.leaderboardStale(ctx)
	if err != nil {
		return nil, err
	}
	if stale {
		scores, err := s.userRepo.ListAllScores(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.leaderboard.Replace(ctx, scores); err != nil {
			return nil, err
		}
		logger.Get().Info("Rebuilt leaderboard from database", zap.Int("members", len(scores)))
		if len(scores) == 0 {
			return []dto.LeaderboardEntry{}, nil
		}
	}

	top, err := s.leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(top))
	for _, sc := range top {
		ids = append(ids, sc.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]dto.LeaderboardEntry, 0, len(top))
	for _, sc := range top {
		u, ok := byID[sc.UserID]
		if !ok {
			continue
		}
		out = append(out, leaderboardEntry(len(out)+1, u, sc.Points))
	}
	return out, nil
}

func (s *userServiceImpl) leaderboardStale(ctx context.Context) (bool, error) {
	seeded, err := s.leaderboard.Seeded(ctx)
	if err != nil {
		return false, err
	}
	if !seeded {
		return true, nil
	}
	size, err := s.leaderboard.Size(ctx)
	if err != nil {
		return false, err
	}
	users, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return false, err
	}
	return size < int64(users), nil
}

func leaderboardEntry(rank int, u *domain.User, points int) dto.LeaderboardEntry {
	var avatar *string
	if u.AvatarURL != "" {
		a := u.AvatarURL
		avatar = &a
	}
	return dto.LeaderboardEntry{
		Rank:        rank,
		UserID:      u.ID,
		Name:        u.Name,
		AvatarURL:   avatar,
		TotalPoints: points,
	}
}
