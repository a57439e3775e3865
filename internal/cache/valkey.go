package cache

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"travelapp/internal/config"
)

// ValkeyClient кэширует справочные данные и ускоряет проверку Basic Auth
type ValkeyClient struct {
	client  *redis.Client
	cityTTL time.Duration
}

func NewValkeyClient(cfg config.CacheConfig) (*ValkeyClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	return &ValkeyClient{client: client, cityTTL: cfg.CityTTL}, nil
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

// GetUserIDByAuth ищет пользователя по значению заголовка Basic Auth.
// Ключ в хэше users: base64(email:sha256(password)).
func (v *ValkeyClient) GetUserIDByAuth(ctx context.Context, email, password string) (int64, error) {
	hash := sha256.Sum256([]byte(password))
	key := base64.StdEncoding.EncodeToString([]byte(email + ":" + hex.EncodeToString(hash[:])))

	val, err := v.client.HGet(ctx, "users", key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get user from cache: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in cache: %w", err)
	}
	return userID, nil
}

// SetUserAuth сохраняет соответствие учётных данных и ID пользователя
func (v *ValkeyClient) SetUserAuth(ctx context.Context, email, password string, userID int64) error {
	hash := sha256.Sum256([]byte(password))
	key := base64.StdEncoding.EncodeToString([]byte(email + ":" + hex.EncodeToString(hash[:])))
	return v.client.HSet(ctx, "users", key, strconv.FormatInt(userID, 10)).Err()
}

// GetCities возвращает закэшированный список городов для автодополнения
func (v *ValkeyClient) GetCities(ctx context.Context, prefix string) ([]string, error) {
	val, err := v.client.Get(ctx, cityKey(prefix)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cities from cache: %w", err)
	}

	var cities []string
	if err := json.Unmarshal([]byte(val), &cities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached cities: %w", err)
	}
	return cities, nil
}

func (v *ValkeyClient) SetCities(ctx context.Context, prefix string, cities []string) error {
	data, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("failed to marshal cities: %w", err)
	}
	return v.client.Set(ctx, cityKey(prefix), data, v.cityTTL).Err()
}

func cityKey(prefix string) string {
	return "cities:" + strings.ToLower(prefix)
}
