package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"utfpr.edu.br/menfin/internal/auth"
	"utfpr.edu.br/menfin/internal/locale"
	"utfpr.edu.br/menfin/internal/store"
	"utfpr.edu.br/menfin/internal/validation"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday"` // dd/mm/yyyy
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token          string      `json:"token"`
	User           *store.User `json:"user"`
	OnboardingDone bool        `json:"onboarding_done"`
}

type OnboardingRequest struct {
	Remuneration   string `json:"remuneration"`
	NegativeCredit string `json:"negative_credit"`
	HasDependents  string `json:"has_dependents"`
	KnowledgeLevel string `json:"knowledge_level"`
	MainGoal       string `json:"main_goal"`
	Readiness      string `json:"readiness"`
}

type AccountService struct {
	dbStore RecordStore
}

func NewAccountService(db RecordStore) *AccountService {
	return &AccountService{dbStore: db}
}

func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*store.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	var errs validation.Errors
	errs.Check("name", req.Name, validation.Required)
	errs.Check("birthday", req.Birthday, validation.Required, validation.Date)
	errs.Check("email", req.Email, validation.Required, validation.Email)
	errs.Check("username", req.Username, validation.Required, validation.LettersOnly)
	errs.Check("password", req.Password, validation.Required, validation.MinLength(8), validation.MaxBytes(72), validation.PasswordComplexity)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	existing, err := s.dbStore.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, validation.Field("username", validation.MsgUserTaken)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	birthday, _ := locale.ParseDate(req.Birthday)
	user := &store.User{
		Name:         req.Name,
		Birthday:     birthday,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.dbStore.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, validation.Field("username", validation.MsgUserTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("Registered user %s with id %d", user.Username, user.ID)
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var errs validation.Errors
	errs.Check("username", username, validation.Required)
	errs.Check("password", password, validation.Required)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user, err := s.dbStore.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, validation.Field("username", validation.MsgUserNotFound)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, validation.Field("password", validation.MsgWrongPassword)
	}

	token, err := auth.GenerateJWT(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	profile, err := s.dbStore.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &LoginResult{Token: token, User: user, OnboardingDone: profile != nil}, nil
}

func (s *AccountService) CompleteOnboarding(ctx context.Context, userID int64, req OnboardingRequest) (*store.Profile, error) {
	var errs validation.Errors
	errs.Check("remuneration", req.Remuneration, validation.Required, validation.Money)
	errs.Check("negative_credit", req.NegativeCredit, validation.Required, validation.OneOf(store.ParseYesNo))
	errs.Check("has_dependents", req.HasDependents, validation.Required, validation.OneOf(store.ParseYesNo))
	errs.Check("knowledge_level", req.KnowledgeLevel, validation.Required, validation.OneOf(store.ParseKnowledgeLevel))
	errs.Check("main_goal", req.MainGoal, validation.Required)
	errs.Check("readiness", req.Readiness, validation.Required, validation.OneOf(store.ParseReadiness))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	income, _ := locale.ParseAmount(req.Remuneration)
	negative, _ := store.ParseYesNo(req.NegativeCredit)
	dependents, _ := store.ParseYesNo(req.HasDependents)
	knowledge, _ := store.ParseKnowledgeLevel(req.KnowledgeLevel)
	readiness, _ := store.ParseReadiness(req.Readiness)

	profile := &store.Profile{
		UserID:         userID,
		MonthlyIncome:  income,
		NegativeCredit: negative,
		HasDependents:  dependents,
		KnowledgeLevel: knowledge,
		MainGoal:       strings.TrimSpace(req.MainGoal),
		Readiness:      readiness,
	}
	if err := s.dbStore.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// Profile returns nil when the user has not onboarded yet.
func (s *AccountService) Profile(ctx context.Context, userID int64) (*store.Profile, error) {
	return s.dbStore.GetProfile(ctx, userID)
}

func (s *AccountService) User(ctx context.Context, userID int64) (*store.User, error) {
	return s.dbStore.GetUserByID(ctx, userID)
}
