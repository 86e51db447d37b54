package oracle

import (
	"context"
	"errors"
	"strconv"
	"time"

	domain "custodian-bank/internal/domain/oracle"

	"github.com/redis/go-redis/v9"
)

const rateKey = "oracle:native-credit-rate"

// RedisOracle reads the operator-published exchange rate from redis. A rate
// older than maxAge is refused rather than used to size collateral.
type RedisOracle struct {
	rdb    *redis.Client
	maxAge time.Duration
}

func NewRedisOracle(rdb *redis.Client, maxAge time.Duration) *RedisOracle {
	return &RedisOracle{rdb: rdb, maxAge: maxAge}
}

func (o *RedisOracle) Rate(ctx context.Context) (int64, error) {
	fields, err := o.rdb.HGetAll(ctx, rateKey).Result()
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, domain.ErrUnavailable
	}
	rate, err := strconv.ParseInt(fields["rate"], 10, 64)
	if err != nil || rate <= 0 {
		return 0, domain.ErrUnavailable
	}
	publishedAt, err := strconv.ParseInt(fields["published_at"], 10, 64)
	if err != nil {
		return 0, domain.ErrUnavailable
	}
	if o.maxAge > 0 && time.Since(time.Unix(publishedAt, 0)) > o.maxAge {
		return 0, domain.ErrStaleRate
	}
	return rate, nil
}

// Publish stores a new rate with the current timestamp.
func (o *RedisOracle) Publish(ctx context.Context, rate int64) error {
	if rate <= 0 {
		return errors.New("oracle: rate must be positive")
	}
	return o.rdb.HSet(ctx, rateKey,
		"rate", strconv.FormatInt(rate, 10),
		"published_at", strconv.FormatInt(time.Now().Unix(), 10),
	).Err()
}
