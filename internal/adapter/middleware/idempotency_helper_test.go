package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func Test_sha256Hex(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)
	if got, want := sha256Hex(data), hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("sha256Hex = %s, want %s", got, want)
	}
}

func Test_redisKey(t *testing.T) {
	acct := strings.Repeat("b", 32)
	reqID := strings.Repeat("a", 32)
	k := redisKey("POST", "/bank/deposits", acct, reqID)
	if !strings.HasPrefix(k, "idemp:ax:post:/bank/deposits:") {
		t.Fatalf("key prefix mismatch: %q", k)
	}
	if !strings.Contains(k, ":"+acct+":") || !strings.HasSuffix(k, reqID) {
		t.Fatalf("key missing account/request segments: %q", k)
	}
}

func Test_validReqID(t *testing.T) {
	valid := []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		strings.Repeat("a", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
	}
	for _, s := range valid {
		if !validReqID(s) {
			t.Errorf("validReqID(%q) = false, want true", s)
		}
	}
	invalid := []string{
		"",
		strings.Repeat("a", 31),
		strings.Repeat("a", 33),
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88", // bad UUID version
	}
	for _, s := range invalid {
		if validReqID(s) {
			t.Errorf("validReqID(%q) = true, want false", s)
		}
	}
}

func Test_parseRequestAt(t *testing.T) {
	sec := time.Now().UTC().Unix()
	got, err := parseRequestAt(strconv.FormatInt(sec, 10))
	if err != nil {
		t.Fatalf("epoch seconds: %v", err)
	}
	if !got.Equal(time.Unix(sec, 0).UTC()) {
		t.Fatalf("epoch seconds = %v, want %v", got, time.Unix(sec, 0).UTC())
	}

	ms := time.Now().UTC().UnixMilli()
	got, err = parseRequestAt(strconv.FormatInt(ms, 10))
	if err != nil {
		t.Fatalf("epoch millis: %v", err)
	}
	if !got.Equal(time.UnixMilli(ms).UTC()) {
		t.Fatalf("epoch millis = %v, want %v", got, time.UnixMilli(ms).UTC())
	}

	got, err = parseRequestAt("2025-09-05T10:00:00+07:00")
	if err != nil {
		t.Fatalf("rfc3339 with offset: %v", err)
	}
	if want := time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("rfc3339 = %v, want %v", got, want)
	}

	for _, raw := range []string{"", "not-a-time", "2025-09-05T10:00:00", "1736123456abc"} {
		if _, err := parseRequestAt(raw); err == nil {
			t.Errorf("parseRequestAt(%q): expected error", raw)
		}
	}
}

func Test_acquireLock_FetchRecord(t *testing.T) {
	rdb := newMiniRedis(t)
	ctx := context.Background()

	key := redisKey("POST", "/bank/deposits", strings.Repeat("b", 32), strings.Repeat("a", 32))
	pending := record{
		Pending:     true,
		BodySHA256:  sha256Hex([]byte(`{"a":1}`)),
		RequestID:   strings.Repeat("a", 32),
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}

	ok, err := acquireLock(ctx, rdb, key, pending)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > lockTTL {
		t.Fatalf("lock TTL out of range: %v", ttl)
	}

	ok, err = acquireLock(ctx, rdb, key, pending)
	if err != nil {
		t.Fatalf("second acquire err: %v", err)
	}
	if ok {
		t.Fatal("second acquire succeeded, want held")
	}

	got, err := fetchRecord(ctx, rdb, key)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !got.Pending || got.RequestID != pending.RequestID || got.BodySHA256 != pending.BodySHA256 {
		t.Fatalf("fetched record mismatch: %+v", got)
	}
}

func Test_storeResult_RoundTrip(t *testing.T) {
	rdb := newMiniRedis(t)
	ctx := context.Background()

	key := redisKey("POST", "/bank/loans", strings.Repeat("b", 32), strings.Repeat("a", 32))
	final := record{
		Code:        201,
		Body:        []byte(`{"ok":true}`),
		BodySHA256:  sha256Hex([]byte(`{"ok":true}`)),
		RequestID:   strings.Repeat("a", 32),
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := storeResult(ctx, rdb, key, final, 5*time.Second); err != nil {
		t.Fatalf("store: %v", err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > 5*time.Second {
		t.Fatalf("result TTL out of range: %v", ttl)
	}
	got, err := fetchRecord(ctx, rdb, key)
	if err != nil {
		t.Fatalf("fetch after store: %v", err)
	}
	if got.Pending || got.Code != 201 || string(got.Body) != `{"ok":true}` {
		t.Fatalf("stored record mismatch: %+v", got)
	}
}
