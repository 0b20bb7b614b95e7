package alias

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/KirkDiggler/chair/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// aliasesKey is the hash of facade role ID -> actual role ID
	aliasesKey = "lfg:aliases"
)

var (
	// ErrAliasNotFound is returned when a facade role has no alias
	ErrAliasNotFound = errors.New("alias not found")

	// ErrInvalidRoleID is returned when a role ID isn't a Discord snowflake
	ErrInvalidRoleID = errors.New("role ID must be an unsigned decimal number")
)

// Config holds configuration for the Redis alias repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed alias repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// ValidateRoleID checks that id is a decimal snowflake
func ValidateRoleID(id string) error {
	if id == "" {
		return ErrInvalidRoleID
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRoleID, id)
	}
	return nil
}

// SaveAlias adds or replaces the alias for a facade role
func (r *redisRepository) SaveAlias(ctx context.Context, input *SaveAliasInput) error {
	if input == nil || input.Alias == nil {
		return errors.New("input and alias cannot be nil")
	}
	if err := ValidateRoleID(input.Alias.FacadeRoleID); err != nil {
		return err
	}
	if err := ValidateRoleID(input.Alias.ActualRoleID); err != nil {
		return err
	}

	err := r.client.HSet(ctx, aliasesKey, input.Alias.FacadeRoleID, input.Alias.ActualRoleID).Err()
	if err != nil {
		return fmt.Errorf("failed to save alias: %w", err)
	}

	return nil
}

// GetAlias retrieves the alias for a facade role
func (r *redisRepository) GetAlias(ctx context.Context, input *GetAliasInput) (*models.RoleAlias, error) {
	if input == nil || input.FacadeRoleID == "" {
		return nil, errors.New("input and facade role ID cannot be empty")
	}

	actual, err := r.client.HGet(ctx, aliasesKey, input.FacadeRoleID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAliasNotFound
		}
		return nil, fmt.Errorf("failed to get alias: %w", err)
	}

	return &models.RoleAlias{
		FacadeRoleID: input.FacadeRoleID,
		ActualRoleID: actual,
	}, nil
}

// DeleteAlias removes the alias for a facade role
func (r *redisRepository) DeleteAlias(ctx context.Context, input *DeleteAliasInput) error {
	if input == nil || input.FacadeRoleID == "" {
		return errors.New("input and facade role ID cannot be empty")
	}

	removed, err := r.client.HDel(ctx, aliasesKey, input.FacadeRoleID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}
	if removed == 0 {
		return ErrAliasNotFound
	}

	return nil
}

// ListAliases retrieves the whole alias table
func (r *redisRepository) ListAliases(ctx context.Context, input *ListAliasesInput) (*ListAliasesOutput, error) {
	entries, err := r.client.HGetAll(ctx, aliasesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}

	aliases := make([]*models.RoleAlias, 0, len(entries))
	for facade, actual := range entries {
		aliases = append(aliases, &models.RoleAlias{
			FacadeRoleID: facade,
			ActualRoleID: actual,
		})
	}

	sort.Slice(aliases, func(i, j int) bool {
		return aliases[i].FacadeRoleID < aliases[j].FacadeRoleID
	})

	return &ListAliasesOutput{
		Aliases: aliases,
	}, nil
}
