package community

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeExists   = errors.New("challenge already exists for that date")
	ErrPostNotFound      = errors.New("post not found")
)

const challengeDateLayout = "2006-01-02"

// RedisStore keeps challenges and posts as JSON documents, with sorted-set
// indexes for date-ordered listings and a per-date key reserving one
// challenge per calendar day.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore(redisURL, namespace string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	return &RedisStore{client: client, namespace: namespace}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) challengeKey(id string) string {
	return fmt.Sprintf("%s:challenges:%s", s.namespace, id)
}

func (s *RedisStore) challengeDateKey(date time.Time) string {
	return fmt.Sprintf("%s:challenges:date:%s", s.namespace, date.UTC().Format(challengeDateLayout))
}

func (s *RedisStore) challengeIndexKey() string {
	return fmt.Sprintf("%s:challenges:index", s.namespace)
}

func (s *RedisStore) postKey(id string) string {
	return fmt.Sprintf("%s:posts:%s", s.namespace, id)
}

func (s *RedisStore) postIndexKey() string {
	return fmt.Sprintf("%s:posts:index", s.namespace)
}

// CreateChallenge stores a new challenge, reserving its calendar day.
func (s *RedisStore) CreateChallenge(ctx context.Context, challenge *DailyChallenge) error {
	reserved, err := s.client.SetNX(ctx, s.challengeDateKey(challenge.ChallengeDate), challenge.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("reserve challenge date: %w", err)
	}
	if !reserved {
		return ErrChallengeExists
	}

	if err := s.writeChallenge(ctx, challenge); err != nil {
		return err
	}

	err = s.client.ZAdd(ctx, s.challengeIndexKey(), &redis.Z{
		Score:  float64(challenge.ChallengeDate.UTC().Unix()),
		Member: challenge.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("index challenge: %w", err)
	}

	return nil
}

func (s *RedisStore) writeChallenge(ctx context.Context, challenge *DailyChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, s.challengeKey(challenge.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

func (s *RedisStore) GetChallenge(ctx context.Context, id string) (*DailyChallenge, error) {
	data, err := s.client.Get(ctx, s.challengeKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	challenge := &DailyChallenge{}
	if err := json.Unmarshal([]byte(data), challenge); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	return challenge, nil
}

func (s *RedisStore) GetChallengeByDate(ctx context.Context, date time.Time) (*DailyChallenge, error) {
	id, err := s.client.Get(ctx, s.challengeDateKey(date)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("get challenge date index: %w", err)
	}
	return s.GetChallenge(ctx, id)
}

// UpdateChallenge replaces the stored document. The whole document is
// rewritten; callers load, mutate and save.
func (s *RedisStore) UpdateChallenge(ctx context.Context, challenge *DailyChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}

	set, err := s.client.SetXX(ctx, s.challengeKey(challenge.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("update challenge: %w", err)
	}
	if !set {
		return ErrChallengeNotFound
	}
	return nil
}

func (s *RedisStore) DeleteChallenge(ctx context.Context, id string) error {
	challenge, err := s.GetChallenge(ctx, id)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.challengeKey(id), s.challengeDateKey(challenge.ChallengeDate)).Err(); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	if err := s.client.ZRem(ctx, s.challengeIndexKey(), id).Err(); err != nil {
		return fmt.Errorf("unindex challenge: %w", err)
	}
	return nil
}

// ListChallenges returns all challenges, newest date first.
func (s *RedisStore) ListChallenges(ctx context.Context) ([]DailyChallenge, error) {
	ids, err := s.client.ZRevRange(ctx, s.challengeIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list challenge index: %w", err)
	}

	var challenges []DailyChallenge
	for _, id := range ids {
		challenge, err := s.GetChallenge(ctx, id)
		if err != nil {
			if errors.Is(err, ErrChallengeNotFound) {
				continue
			}
			return nil, err
		}
		challenges = append(challenges, *challenge)
	}
	return challenges, nil
}

func (s *RedisStore) CreatePost(ctx context.Context, post *CommunityPost) error {
	if err := s.writePost(ctx, post); err != nil {
		return err
	}

	err := s.client.ZAdd(ctx, s.postIndexKey(), &redis.Z{
		Score:  float64(post.CreatedAt.UTC().Unix()),
		Member: post.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("index post: %w", err)
	}
	return nil
}

func (s *RedisStore) writePost(ctx context.Context, post *CommunityPost) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}
	if err := s.client.Set(ctx, s.postKey(post.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("store post: %w", err)
	}
	return nil
}

func (s *RedisStore) GetPost(ctx context.Context, id string) (*CommunityPost, error) {
	data, err := s.client.Get(ctx, s.postKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := &CommunityPost{}
	if err := json.Unmarshal([]byte(data), post); err != nil {
		return nil, fmt.Errorf("unmarshal post: %w", err)
	}
	return post, nil
}

func (s *RedisStore) UpdatePost(ctx context.Context, post *CommunityPost) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	set, err := s.client.SetXX(ctx, s.postKey(post.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if !set {
		return ErrPostNotFound
	}
	return nil
}

// ListPosts returns all posts, newest first.
func (s *RedisStore) ListPosts(ctx context.Context) ([]CommunityPost, error) {
	ids, err := s.client.ZRevRange(ctx, s.postIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list post index: %w", err)
	}

	var posts []CommunityPost
	for _, id := range ids {
		post, err := s.GetPost(ctx, id)
		if err != nil {
			if errors.Is(err, ErrPostNotFound) {
				continue
			}
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, nil
}
