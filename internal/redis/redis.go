package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"petstore_manager/internal/models"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Business hours cache. The config is read on every check-in/check-out, so the
// active row is kept here and invalidated on admin updates.
func (c *Client) SetBusinessHours(hours *models.BusinessHours, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("failed to marshal business hours: %w", err)
	}
	return c.rdb.Set(ctx, "config:business_hours", jsonData, ttl).Err()
}

func (c *Client) GetBusinessHours() (*models.BusinessHours, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "config:business_hours").Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("business hours not cached")
		}
		return nil, fmt.Errorf("failed to get business hours: %w", err)
	}

	var hours models.BusinessHours
	if err := json.Unmarshal([]byte(val), &hours); err != nil {
		return nil, fmt.Errorf("failed to unmarshal business hours: %w", err)
	}
	return &hours, nil
}

func (c *Client) InvalidateBusinessHours() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "config:business_hours").Err()
}

// Attendance status cache, keyed per user and work date so the dashboard can
// show today's status without re-reading the attendance table.
func (c *Client) SetAttendanceStatus(userID uint, workDate, status string, ttl time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf("attendance:%d:%s", userID, workDate)
	return c.rdb.Set(ctx, key, status, ttl).Err()
}

func (c *Client) GetAttendanceStatus(userID uint, workDate string) (string, error) {
	ctx := context.Background()
	key := fmt.Sprintf("attendance:%d:%s", userID, workDate)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("attendance status not cached")
		}
		return "", fmt.Errorf("failed to get attendance status: %w", err)
	}
	return val, nil
}

// Report cache for the dashboard summary payloads.
func (c *Client) SetReport(name string, report interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return c.rdb.Set(ctx, "report:"+name, jsonData, ttl).Err()
}

func (c *Client) GetReport(name string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "report:"+name).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("report not cached")
		}
		return fmt.Errorf("failed to get report: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
