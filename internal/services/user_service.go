package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for user accounts.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	logrus.Info("Registering new user")

	if user.Email == "" || user.Username == "" || user.HashedPassword == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("missing required user fields")
	}

	if !emailRegex.MatchString(user.Email) {
		logrus.WithField("email", user.Email).Warn("Invalid email format during registration")
		return nil, fmt.Errorf("invalid email format")
	}

	// Check if the email is already registered
	existingUser, _ := s.repo.GetUserByEmail(ctx, user.Email)
	if existingUser != nil {
		logrus.WithField("email", user.Email).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.HashedPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user.HashedPassword = string(hashedPwd)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if user.Role == "" {
		user.Role = "user"
	}
	if user.Profile.Timezone == "" {
		user.Profile.Timezone = "UTC"
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithField("userID", createdUser.ID.Hex()).Info("User registered in service layer")
	return createdUser, nil
}

// AuthenticateUser verifies credentials and returns the matching user.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("User not found during authentication")
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Password mismatch during authentication")
		return nil, fmt.Errorf("invalid credentials")
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logrus.WithField("userID", id).WithError(err).Warn("Invalid user ID in GetUser")
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// UpdateProfile replaces the user's health profile settings.
func (s *UserService) UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	if profile.HeightCM != 0 && (profile.HeightCM < 50 || profile.HeightCM > 300) {
		logrus.WithField("heightCM", profile.HeightCM).Warn("Height out of accepted bounds")
		return nil, fmt.Errorf("height must be between 50 and 300 cm")
	}
	if profile.Timezone == "" {
		profile.Timezone = "UTC"
	}

	if err := s.repo.UpdateProfile(ctx, objID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}

	logrus.WithField("userID", id).Info("Profile updated in service layer")
	return s.repo.GetUserByID(ctx, objID)
}
