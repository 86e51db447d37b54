package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	adapterOracle "custodian-bank/internal/adapter/oracle"
)

func newAdminEnv(t *testing.T) (*testEnv, *adapterOracle.RedisOracle) {
	t.Helper()
	env := newTestEnv(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	oracle := adapterOracle.NewRedisOracle(rdb, time.Minute)

	ah := NewAdminHandler(env.engine, oracle)
	admin := env.e.Group("/admin")
	admin.PUT("/return-rate", ah.SetReturnRate)
	admin.PUT("/oracle-rate", ah.SetOracleRate)
	admin.POST("/wallets/topup", ah.TopUpWallet)
	admin.POST("/accounts", ah.CreateAccount)
	return env, oracle
}

func TestAdmin_SetReturnRate(t *testing.T) {
	env, _ := newAdminEnv(t)

	rec := env.do(t, http.MethodPut, "/admin/return-rate", `{"rate":25}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("set rate: %d body=%s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/bank/state", "", "")
	var state map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state["yearly_return_rate"].(float64) != 25 {
		t.Fatalf("rate = %v, want 25", state["yearly_return_rate"])
	}

	// out of range fails the validator
	rec = env.do(t, http.MethodPut, "/admin/return-rate", `{"rate":101}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("rate 101: %d, want 400", rec.Code)
	}
}

func TestAdmin_SetOracleRate(t *testing.T) {
	env, oracle := newAdminEnv(t)

	rec := env.do(t, http.MethodPut, "/admin/oracle-rate", `{"rate":7}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("publish: %d body=%s", rec.Code, rec.Body.String())
	}
	rate, err := oracle.Rate(context.Background())
	if err != nil || rate != 7 {
		t.Fatalf("published rate = %d/%v, want 7/nil", rate, err)
	}

	rec = env.do(t, http.MethodPut, "/admin/oracle-rate", `{"rate":0}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero rate: %d, want 400", rec.Code)
	}
}

func TestAdmin_TopUpWallet(t *testing.T) {
	env, _ := newAdminEnv(t)

	body := `{"account_id":"` + testAccount + `","amount":5000}`
	rec := env.do(t, http.MethodPost, "/admin/wallets/topup", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("topup: %d body=%s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/bank/positions", "", testAccount)
	var pos map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &pos); err != nil {
		t.Fatalf("decode positions: %v", err)
	}
	if pos["wallet_balance"].(float64) != 5_000 {
		t.Fatalf("wallet = %v, want 5000", pos["wallet_balance"])
	}

	rec = env.do(t, http.MethodPost, "/admin/wallets/topup", `{"account_id":"bad","amount":100}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad account id: %d, want 400", rec.Code)
	}
}

func TestAdmin_CreateAccount(t *testing.T) {
	env, _ := newAdminEnv(t)

	rec := env.do(t, http.MethodPost, "/admin/accounts", `{"initial_balance":2500}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account: %d body=%s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	accountID, _ := resp["account_id"].(string)
	if len(accountID) != 32 || strings.ToLower(accountID) != accountID {
		t.Fatalf("account id %q is not 32-char lowercase hex", accountID)
	}

	rec = env.do(t, http.MethodGet, "/bank/positions", "", accountID)
	var pos map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &pos); err != nil {
		t.Fatalf("decode positions: %v", err)
	}
	if pos["wallet_balance"].(float64) != 2_500 {
		t.Fatalf("wallet = %v, want 2500", pos["wallet_balance"])
	}
}

func TestRequireOperatorGatesGroup(t *testing.T) {
	e := echo.New()
	g := e.Group("/admin", RequireOperator("secret"))
	g.PUT("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPut, "/admin/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/admin/ping", nil)
	req.Header.Set("Ax-Operator-Token", "secret")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: %d, want 200", rec.Code)
	}
}
