package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
)

type DB int
type ReleaseLock func() error

var ErrNotFound = errors.New("document not found")

type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
}

type Config struct {
	LockExpirationSeconds   int     `envconfig:"SUBJ_REDIS_LOCK_EXPIRATION" default:"3"`
	Host                    string  `envconfig:"SUBJ_REDIS_HOST" required:"true"`
	Port                    string  `envconfig:"SUBJ_REDIS_PORT" default:"6379"`
	HASentinelPort          string  `envconfig:"SUBJ_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"SUBJ_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"SUBJ_REDIS_AUTH_PASSWORD" default:""`
	AuthRequired            bool    `envconfig:"SUBJ_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"SUBJ_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"SUBJ_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

func NewClient(db DB) (*Client, error) {
	cfg, err := readEnvironment()
	if err != nil {
		return nil, err
	}
	var client redis.UniversalClient
	if cfg.HAMode {
		client = CreateClusterClient(cfg, db)
	} else {
		client = CreateClient(cfg, db)
	}
	return &Client{
		client:         client,
		lockExpiration: time.Duration(cfg.LockExpirationSeconds) * time.Second,
	}, nil
}

func CreateClusterClient(cfg *Config, db DB) *redis.ClusterClient {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.HASentinelPort)
	timeout := time.Duration(float64(cfg.HASentinelSocketTimeout) * float64(time.Second))
	options := redis.FailoverOptions{
		SentinelAddrs: []string{addr},
		ReadTimeout:   timeout,
		WriteTimeout:  timeout,
		MaxRetries:    6,
		DB:            int(db),
		MasterName:    cfg.HASentinelMasterName,
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewFailoverClusterClient(&options)
}

func CreateClient(cfg *Config, db DB) *redis.Client {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	options := redis.Options{
		Addr:       addr,
		MaxRetries: 6,
		DB:         int(db),
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewClient(&options)
}

func (client *Client) getRaw(ctx context.Context, redisKey string) ([]byte, error) {
	b, err := client.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, redisKey)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetDocument decodes the JSON stored under redisKey into doc. Fields doc does not
// declare are ignored.
func (client *Client) GetDocument(ctx context.Context, redisKey string, doc interface{}) error {
	b, err := client.getRaw(ctx, redisKey)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, doc); err != nil {
		return fmt.Errorf("document %s is not valid JSON: %w", redisKey, err)
	}
	return nil
}

// UpdateDocument loads redisKey into doc under a lock, calls update and stores the
// changes. Only fields changed by update are written, so fields doc does not declare
// survive.
func (client *Client) UpdateDocument(ctx context.Context, redisKey string, doc interface{}, update func()) (err error) {
	releaseLock, err := client.Lock(ctx, redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := releaseLock(); err == nil {
			err = releaseErr
		}
	}()

	raw, err := client.getRaw(ctx, redisKey)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("document %s is not valid JSON: %w", redisKey, err)
	}
	before, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	update()
	after, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	merged, err := mergeDocument(raw, before, after)
	if err != nil {
		return fmt.Errorf("failed to merge document %s: %w", redisKey, err)
	}
	return client.client.Set(ctx, redisKey, merged, 0).Err()
}

// mergeDocument applies the difference between before and after to raw.
func mergeDocument(raw, before, after []byte) ([]byte, error) {
	patch, err := jsonpatch.CreateMergePatch(before, after)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(raw, patch)
}

func (client *Client) Lock(ctx context.Context, redisKey string) (ReleaseLock, error) {
	lockCl := redislock.New(client.client)
	str := redislock.LimitRetry(redislock.LinearBackoff(time.Second), 20)
	lockKey := fmt.Sprintf("lock:%s", redisKey)
	lock, err := lockCl.Obtain(ctx, lockKey, client.lockExpiration, &redislock.Options{RetryStrategy: str})
	if err != nil {
		return nil, err
	}
	return func() error {
		return lock.Release(context.Background())
	}, nil
}

func (client *Client) SaveDoc(ctx context.Context, redisKey string, document interface{}) error {
	b, err := json.Marshal(document)
	if err != nil {
		return err
	}
	return client.client.Set(ctx, redisKey, b, 0).Err()
}

// GetResult reads a cached analysis response.
func (client *Client) GetResult(ctx context.Context, key string) (string, bool, error) {
	value, err := client.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetResult caches an analysis response. A zero ttl keeps it until evicted.
func (client *Client) SetResult(ctx context.Context, key string, value string, ttl time.Duration) error {
	return client.client.Set(ctx, key, value, ttl).Err()
}

func (client *Client) Close() error {
	return client.client.Close()
}

func readEnvironment() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
