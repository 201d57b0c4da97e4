package main

import (
	"context"
	"fmt"
	"os"

	"codezetta/internal/config"
	"codezetta/internal/database"
	"codezetta/internal/logger"
	"codezetta/internal/repository"
	"codezetta/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:           "seed_initial_data",
		Short:         "Seed the admin account, subjects and quiz catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pw := os.Getenv("SEED_ADMIN_PASSWORD"); pw != "" && !cmd.Flags().Changed("admin-password") {
				opts.AdminPassword = pw
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.AdminName, "admin-name", opts.AdminName, "display name of the admin account")
	f.StringVar(&opts.AdminEmail, "admin-email", opts.AdminEmail, "email of the admin account")
	f.StringVar(&opts.AdminPassword, "admin-password", opts.AdminPassword, "password of the admin account (or SEED_ADMIN_PASSWORD)")
	f.IntVar(&opts.QuizzesPerLevel, "quizzes-per-level", opts.QuizzesPerLevel, "quizzes to create per subject and level")
	f.IntVar(&opts.QuestionsPerQuiz, "questions", opts.QuestionsPerQuiz, "questions per quiz")
	f.IntVar(&opts.TimerMinutes, "timer", opts.TimerMinutes, "timer in minutes for each quiz")
	return cmd
}

func run(ctx context.Context, opts seed.Options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Get()

	if cfg.Auth.BcryptCost > 0 {
		opts.BcryptCost = cfg.Auth.BcryptCost
	}

	bank, err := seed.DefaultQuestionBank()
	if err != nil {
		return err
	}

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	seeder := seed.NewSeeder(
		repository.NewSQLXUserRepository(db),
		repository.NewSQLXSubjectRepository(db),
		repository.NewSQLXQuizRepository(db),
		repository.NewTransactionManagerAdapter(db),
		bank,
		opts,
	)
	result, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("Initial data seeding process completed",
		zap.Bool("adminCreated", result.AdminCreated),
		zap.Int("quizzes", result.QuizzesCreated),
		zap.Int("questions", result.QuestionsCreated))
	return nil
}
