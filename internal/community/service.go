package community

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duartesilva/plantshop/internal/apperr"
	"github.com/duartesilva/plantshop/internal/media"
)

const (
	challengeImageBucket = "challenges"
	postImageBucket      = "posts"
)

// Store is the document persistence consumed by the service.
type Store interface {
	CreateChallenge(ctx context.Context, challenge *DailyChallenge) error
	GetChallenge(ctx context.Context, id string) (*DailyChallenge, error)
	GetChallengeByDate(ctx context.Context, date time.Time) (*DailyChallenge, error)
	UpdateChallenge(ctx context.Context, challenge *DailyChallenge) error
	DeleteChallenge(ctx context.Context, id string) error
	ListChallenges(ctx context.Context) ([]DailyChallenge, error)

	CreatePost(ctx context.Context, post *CommunityPost) error
	GetPost(ctx context.Context, id string) (*CommunityPost, error)
	UpdatePost(ctx context.Context, post *CommunityPost) error
	ListPosts(ctx context.Context) ([]CommunityPost, error)
}

type Service struct {
	store  Store
	files  media.Store
	logger *zap.Logger
}

func NewService(store Store, files media.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		files:  files,
		logger: logger,
	}
}

// truncateToDay normalizes a timestamp to its UTC calendar day.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func storedImageName(fileName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}

// SubmitGuess records one guess for the challenge and reports whether it
// was correct. Each user gets exactly one guess per challenge; matching
// is case-insensitive on the trimmed text.
func (s *Service) SubmitGuess(ctx context.Context, challengeID, userID, userName, guessText string) (bool, error) {
	if strings.TrimSpace(guessText) == "" {
		return false, apperr.New(apperr.KindPrecondition, "empty guess")
	}

	challenge, err := s.store.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return false, apperr.Wrap(apperr.KindNotFound, "challenge not found", err)
		}
		return false, err
	}

	if challenge.HasGuessed(userID) {
		s.logger.Warn("repeated guess attempt",
			zap.String("user_id", userID),
			zap.String("challenge_id", challengeID),
		)
		return false, apperr.New(apperr.KindConflict, "guess already submitted for this challenge")
	}

	isCorrect := strings.EqualFold(
		strings.TrimSpace(guessText),
		strings.TrimSpace(challenge.CorrectPlantName),
	)

	challenge.Guesses = append(challenge.Guesses, ChallengeGuess{
		UserID:    userID,
		UserName:  userName,
		Guess:     guessText,
		Timestamp: time.Now().UTC(),
		IsCorrect: isCorrect,
	})

	if err := s.store.UpdateChallenge(ctx, challenge); err != nil {
		return false, err
	}

	s.logger.Info("guess submitted",
		zap.String("user_id", userID),
		zap.String("challenge_id", challengeID),
		zap.Bool("correct", isCorrect),
	)

	return isCorrect, nil
}

// TodaysChallenge returns the player view of today's challenge.
func (s *Service) TodaysChallenge(ctx context.Context, currentUserID string) (*ChallengeView, error) {
	challenge, err := s.store.GetChallengeByDate(ctx, truncateToDay(time.Now()))
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "no challenge for today", err)
		}
		return nil, err
	}

	view := challenge.View(currentUserID)
	return &view, nil
}

func (s *Service) ChallengeDetails(ctx context.Context, challengeID, currentUserID string) (*ChallengeView, error) {
	challenge, err := s.store.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "challenge not found", err)
		}
		return nil, err
	}

	view := challenge.View(currentUserID)
	return &view, nil
}

// ChallengeArchive lists every challenge as the player view, newest
// date first.
func (s *Service) ChallengeArchive(ctx context.Context, currentUserID string) ([]ChallengeView, error) {
	challenges, err := s.store.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ChallengeView, 0, len(challenges))
	for i := range challenges {
		views = append(views, challenges[i].View(currentUserID))
	}
	return views, nil
}

// Admin reads: these expose the correct answer and all guesses.

func (s *Service) Challenge(ctx context.Context, challengeID string) (*DailyChallenge, error) {
	challenge, err := s.store.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "challenge not found", err)
		}
		return nil, err
	}
	return challenge, nil
}

func (s *Service) ChallengeByDate(ctx context.Context, date time.Time) (*DailyChallenge, error) {
	challenge, err := s.store.GetChallengeByDate(ctx, truncateToDay(date))
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "challenge not found", err)
		}
		return nil, err
	}
	return challenge, nil
}

func (s *Service) AllChallenges(ctx context.Context) ([]DailyChallenge, error) {
	return s.store.ListChallenges(ctx)
}

// CreateChallenge schedules the challenge for date's calendar day. Only
// one challenge may exist per day.
func (s *Service) CreateChallenge(ctx context.Context, date time.Time, correctPlantName string, image *media.File) (*DailyChallenge, error) {
	if strings.TrimSpace(correctPlantName) == "" {
		return nil, apperr.New(apperr.KindPrecondition, "the correct plant name is required")
	}
	if image == nil {
		return nil, apperr.New(apperr.KindPrecondition, "an image is required to create a challenge")
	}

	day := truncateToDay(date)

	name := storedImageName(image.FileName)
	imageURL, err := s.files.Upload(ctx, image.Reader, name, image.ContentType, challengeImageBucket)
	if err != nil {
		return nil, fmt.Errorf("upload challenge image: %w", err)
	}

	challenge := &DailyChallenge{
		ID:               uuid.NewString(),
		ChallengeDate:    day,
		ImageURL:         imageURL,
		CorrectPlantName: correctPlantName,
		Guesses:          []ChallengeGuess{},
	}

	if err := s.store.CreateChallenge(ctx, challenge); err != nil {
		if errors.Is(err, ErrChallengeExists) {
			return nil, apperr.Wrap(apperr.KindConflict,
				fmt.Sprintf("a challenge already exists for %s", day.Format("2006-01-02")), err)
		}
		return nil, err
	}

	s.logger.Info("daily challenge created", zap.String("challenge_id", challenge.ID), zap.Time("date", day))

	return challenge, nil
}

func (s *Service) DeleteChallenge(ctx context.Context, challengeID string) error {
	challenge, err := s.Challenge(ctx, challengeID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteChallenge(ctx, challengeID); err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return apperr.Wrap(apperr.KindNotFound, "challenge not found", err)
		}
		return err
	}

	if challenge.ImageURL != "" {
		if err := s.files.Delete(ctx, challenge.ImageURL, challengeImageBucket); err != nil {
			s.logger.Warn("failed to delete challenge image", zap.Error(err), zap.String("url", challenge.ImageURL))
		}
	}

	return nil
}

func (s *Service) Posts(ctx context.Context) ([]CommunityPost, error) {
	return s.store.ListPosts(ctx)
}

func (s *Service) Post(ctx context.Context, postID string) (*CommunityPost, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, "post not found", err)
		}
		return nil, err
	}
	return post, nil
}

func (s *Service) CreatePost(ctx context.Context, authorID, authorName, title, description string, image *media.File) (*CommunityPost, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.New(apperr.KindPrecondition, "post title is required")
	}
	if image == nil {
		return nil, apperr.New(apperr.KindPrecondition, "an image is required to create a post")
	}

	name := storedImageName(image.FileName)
	imageURL, err := s.files.Upload(ctx, image.Reader, name, image.ContentType, postImageBucket)
	if err != nil {
		return nil, fmt.Errorf("upload post image: %w", err)
	}

	post := &CommunityPost{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		AuthorName:  authorName,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   time.Now().UTC(),
		Comments:    []PostComment{},
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("community post created", zap.String("post_id", post.ID), zap.String("author_id", authorID))

	return post, nil
}

func (s *Service) AddComment(ctx context.Context, postID, authorID, authorName, text string) (*PostComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.KindPrecondition, "empty comment")
	}

	post, err := s.Post(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := PostComment{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	post.Comments = append(post.Comments, comment)

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("comment added", zap.String("post_id", postID), zap.String("author_id", authorID))

	return &comment, nil
}
