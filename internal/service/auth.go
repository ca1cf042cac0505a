package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tallytrace/finance-service/internal/models"
	"github.com/tallytrace/finance-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user with a hashed password and mails a
// verification link. Email failure is logged, not returned: the account is
// created either way.
func (s *Service) Register(email, password, firstName, lastName, defaultCurrency string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrInvalidInput)
	}
	if _, err := s.repo.FindUserByEmail(email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if defaultCurrency == "" {
		defaultCurrency = "PHP"
	}
	user := &models.User{
		Email:           email,
		PasswordHash:    string(hashedPassword),
		FirstName:       firstName,
		LastName:        lastName,
		DefaultCurrency: defaultCurrency,
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	if err := s.sendVerificationEmail(user); err != nil {
		s.log.Warnf("Failed to send verification email to %s: %v", user.Email, err)
	}
	s.publisher.PublishUserRegistered(user.ID, user.Email)

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", fmt.Errorf("account is inactive: %w", ErrAccessDenied)
	}
	if !user.IsVerified {
		return "", fmt.Errorf("email not verified: %w", ErrAccessDenied)
	}

	if err := s.repo.TouchLastLogin(user.ID); err != nil {
		s.log.Warnf("Failed to update last login for %s: %v", user.Email, err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetUser returns the user's profile
func (s *Service) GetUser(userID int64) (*models.User, error) {
	return s.repo.FindUserByID(userID)
}

// UpdateProfile saves profile fields for the user
func (s *Service) UpdateProfile(userID int64, firstName, lastName, defaultCurrency string) (*models.User, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if defaultCurrency != "" {
		user.DefaultCurrency = defaultCurrency
	}
	if err := s.repo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CompleteOnboarding marks the user's onboarding finished
func (s *Service) CompleteOnboarding(userID int64) (*models.User, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.OnboardingCompleted = true
	if err := s.repo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyEmail redeems a verification token
func (s *Service) VerifyEmail(tokenValue string) error {
	token, err := s.repo.FindEmailToken(tokenValue, models.EmailTokenTypeVerify)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("invalid or expired token: %w", ErrInvalidInput)
		}
		return err
	}
	if token.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.repo.DeleteEmailTokens(token.UserID, models.EmailTokenTypeVerify)
		return fmt.Errorf("token has expired: %w", ErrInvalidInput)
	}

	if err := s.repo.MarkUserVerified(token.UserID); err != nil {
		return err
	}
	if err := s.repo.DeleteEmailTokens(token.UserID, models.EmailTokenTypeVerify); err != nil {
		s.log.Warnf("Failed to clean up verification tokens for user %d: %v", token.UserID, err)
	}
	s.log.Infof("Email verified for user %d", token.UserID)
	return nil
}

// ResendVerification re-sends the verification email. It never discloses
// whether the address is registered.
func (s *Service) ResendVerification(email string) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil || user.IsVerified {
		return
	}
	if err := s.sendVerificationEmail(user); err != nil {
		s.log.Warnf("Failed to resend verification email to %s: %v", email, err)
	}
}

// RequestPasswordReset mails a reset link. It never discloses whether the
// address is registered.
func (s *Service) RequestPasswordReset(email string) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil || !user.IsActive {
		return
	}

	token, err := s.createEmailToken(user.ID, models.EmailTokenTypeReset, s.config.ResetExpireHours)
	if err != nil {
		s.log.Errorf("Failed to create reset token for %s: %v", email, err)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.FrontendBaseURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, user.FirstName, resetURL); err != nil {
		s.log.Warnf("Failed to send reset email to %s: %v", email, err)
	}
}

// ResetPassword redeems a reset token and replaces the password
func (s *Service) ResetPassword(tokenValue, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required: %w", ErrInvalidInput)
	}
	token, err := s.repo.FindEmailToken(tokenValue, models.EmailTokenTypeReset)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("invalid or expired token: %w", ErrInvalidInput)
		}
		return err
	}
	if token.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.repo.DeleteEmailTokens(token.UserID, models.EmailTokenTypeReset)
		return fmt.Errorf("token has expired: %w", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdateUserPassword(token.UserID, string(hashedPassword)); err != nil {
		return err
	}
	if err := s.repo.DeleteEmailTokens(token.UserID, models.EmailTokenTypeReset); err != nil {
		s.log.Warnf("Failed to clean up reset tokens for user %d: %v", token.UserID, err)
	}
	s.log.Infof("Password reset for user %d", token.UserID)
	return nil
}

func (s *Service) sendVerificationEmail(user *models.User) error {
	token, err := s.createEmailToken(user.ID, models.EmailTokenTypeVerify, s.config.VerifyExpireHours)
	if err != nil {
		return err
	}
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.config.FrontendBaseURL, token)
	return s.mailer.SendVerification(user.Email, user.FirstName, verifyURL)
}

func (s *Service) createEmailToken(userID int64, tokenType string, expireHours int) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := &models.EmailToken{
		UserID:    userID,
		Token:     hex.EncodeToString(buf),
		TokenType: tokenType,
		ExpiresAt: time.Now().UTC().Add(time.Duration(expireHours) * time.Hour),
	}
	if err := s.repo.ReplaceEmailToken(token); err != nil {
		return "", err
	}
	return token.Token, nil
}
