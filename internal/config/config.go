package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Operator auth for administrative routes (rate updates, top-ups).
	OperatorToken string

	// Bank parameters. Amounts are native-asset smallest units; rates are
	// integer percents. All fixed at boot except YearlyReturnRate, which the
	// operator may change at runtime.
	MinDeposit          int64
	YearlyReturnRate    int64
	CollateralRatioPct  int64
	LoanFeePct          int64
	BlockSeconds        int64
	SecondsPerYear      int64
	OracleMaxAgeSecs    int64
	ClockGenesisUnix    int64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt64(k string, d int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "custodian"),
		MySQLUser: getenv("MYSQL_USER", "custodian"),
		MySQLPass: getenv("MYSQL_PASS", "custodian"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		OperatorToken: getenv("OPERATOR_TOKEN", ""),

		MinDeposit:         getenvInt64("MIN_DEPOSIT", 1_000),
		YearlyReturnRate:   getenvInt64("YEARLY_RETURN_RATE", 10),
		CollateralRatioPct: getenvInt64("COLLATERAL_RATIO_PCT", 150),
		LoanFeePct:         getenvInt64("LOAN_FEE_PCT", 10),
		BlockSeconds:       getenvInt64("BLOCK_SECONDS", 15),
		SecondsPerYear:     getenvInt64("SECONDS_PER_YEAR", 31_536_000),
		OracleMaxAgeSecs:   getenvInt64("ORACLE_MAX_AGE_SECONDS", 300),
		ClockGenesisUnix:   getenvInt64("CLOCK_GENESIS_UNIX", 0),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.OperatorToken == "" {
		return errors.New("missing OPERATOR_TOKEN")
	}
	if c.MinDeposit <= 0 {
		return errors.New("MIN_DEPOSIT must be positive")
	}
	if c.YearlyReturnRate < 1 || c.YearlyReturnRate > 100 {
		return errors.New("YEARLY_RETURN_RATE must be in [1,100]")
	}
	if c.CollateralRatioPct < 100 {
		return errors.New("COLLATERAL_RATIO_PCT must be at least 100")
	}
	if c.LoanFeePct < 0 || c.LoanFeePct > 100 {
		return errors.New("LOAN_FEE_PCT must be in [0,100]")
	}
	if c.BlockSeconds <= 0 {
		return errors.New("BLOCK_SECONDS must be positive")
	}
	if c.SecondsPerYear <= 0 {
		return errors.New("SECONDS_PER_YEAR must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
