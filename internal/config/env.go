package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config files can say "10m" or "24h".
// Bare integers are accepted as nanoseconds.
type Duration time.Duration

func (d Duration) Duration() time.Duration { return time.Duration(d) }
func (d Duration) String() string          { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("duration must be a string like \"10m\" or an integer")
	}
	*d = Duration(n)
	return nil
}

// Env holds runtime configuration. Values come from an optional YAML file
// (CONFIG_FILE, default config.yml), overridden by environment variables.
type Env struct {
	AppAddr string `yaml:"app_addr"`
	GinMode string `yaml:"gin_mode"`

	DB DBConfig `yaml:"db"`

	JWTSecret  string   `yaml:"jwt_secret" validate:"required,min=16"`
	AccessTTL  Duration `yaml:"access_ttl"`
	RefreshTTL Duration `yaml:"refresh_ttl"`

	OTPTTL         Duration `yaml:"otp_ttl"`
	OTPCooldown    Duration `yaml:"otp_cooldown"`
	OTPMaxAttempts int      `yaml:"otp_max_attempts" validate:"gte=1,lte=10"`
}

type DBConfig struct {
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Host     string `yaml:"host" validate:"required,hostname_port"`
	Name     string `yaml:"name" validate:"required"`
}

// LoadEnv reads the YAML config when present, applies env overrides and
// defaults, then validates the result.
func LoadEnv() (Env, error) {
	env := Env{
		AppAddr: ":8080",
		DB: DBConfig{
			User: "root",
			Host: "127.0.0.1:3306",
			Name: "manara",
		},
		JWTSecret:      "super-secret-key-change-me",
		AccessTTL:      Duration(1 * time.Hour),
		RefreshTTL:     Duration(7 * 24 * time.Hour),
		OTPTTL:         Duration(10 * time.Minute),
		OTPCooldown:    Duration(60 * time.Second),
		OTPMaxAttempts: 3,
	}

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		path = "config.yml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &env); err != nil {
			return Env{}, err
		}
	}

	if err := applyEnvOverrides(&env); err != nil {
		return Env{}, err
	}

	v := validator.New()
	if err := v.Struct(env); err != nil {
		return Env{}, err
	}
	return env, nil
}

func applyEnvOverrides(env *Env) error {
	set := func(dst *string, key string) {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			*dst = val
		}
	}
	set(&env.AppAddr, "APP_ADDR")
	set(&env.GinMode, "GIN_MODE")
	set(&env.DB.User, "DB_USER")
	set(&env.DB.Password, "DB_PASSWORD")
	set(&env.DB.Host, "DB_HOST")
	set(&env.DB.Name, "DB_NAME")
	set(&env.JWTSecret, "JWT_SECRET")

	setDuration := func(dst *Duration, key string) error {
		val := strings.TrimSpace(os.Getenv(key))
		if val == "" {
			return nil
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = Duration(d)
		return nil
	}
	if err := setDuration(&env.AccessTTL, "ACCESS_TTL"); err != nil {
		return err
	}
	if err := setDuration(&env.RefreshTTL, "REFRESH_TTL"); err != nil {
		return err
	}
	if err := setDuration(&env.OTPTTL, "OTP_TTL"); err != nil {
		return err
	}
	if err := setDuration(&env.OTPCooldown, "OTP_COOLDOWN"); err != nil {
		return err
	}

	if val := strings.TrimSpace(os.Getenv("OTP_MAX_ATTEMPTS")); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("OTP_MAX_ATTEMPTS: %w", err)
		}
		env.OTPMaxAttempts = n
	}
	return nil
}
