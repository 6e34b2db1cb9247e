package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/vskurikhin/go-doc-sync/logger"
)

type Config struct {
	Logger      LoggerConfig      `json:"logger" yaml:"logger"`
	Source      SourceConfig      `json:"source" yaml:"source"`
	Destination DestinationConfig `json:"destination" yaml:"destination"`
	Sync        SyncConfig        `json:"sync" yaml:"sync"`
	Metric      MetricConfig      `json:"metric" yaml:"metric"`
	DebugMode   bool              `json:"debugMode" yaml:"debugMode"`
}

// SourceConfig locates the change-ordered document collection. Password may be
// left empty and filled from the secret provider via PasswordSecret.
type SourceConfig struct {
	Host           string `json:"host" yaml:"host"`
	Port           int    `json:"port" yaml:"port"`
	Username       string `json:"username" yaml:"username"`
	Password       string `json:"password" yaml:"password"`
	PasswordSecret string `json:"passwordSecret" yaml:"passwordSecret"`
	Database       string `json:"database" yaml:"database"`
	Collection     string `json:"collection" yaml:"collection"`
}

// DestinationConfig locates the warehouse. The passcode is a time-limited
// credential embedded in the DSN; PasscodeSecret names it in the secret store.
type DestinationConfig struct {
	Host           string `json:"host" yaml:"host"`
	Port           int    `json:"port" yaml:"port"`
	Username       string `json:"username" yaml:"username"`
	Passcode       string `json:"passcode" yaml:"passcode"`
	PasscodeSecret string `json:"passcodeSecret" yaml:"passcodeSecret"`
	Database       string `json:"database" yaml:"database"`
	Table          string `json:"table" yaml:"table"`
}

type SyncConfig struct {
	Entity     string        `json:"entity" yaml:"entity"`
	BatchSize  int           `json:"batchSize" yaml:"batchSize"`
	Interval   time.Duration `json:"interval" yaml:"interval"`
	RunTimeout time.Duration `json:"runTimeout" yaml:"runTimeout"`
}

type MetricConfig struct {
	Port int `json:"port" yaml:"port"`
}

type LoggerConfig struct {
	Logger   logger.Logger `json:"-" yaml:"-"`         // custom logger
	LogLevel slog.Level    `json:"level" yaml:"level"` // if custom logger is nil, set the slog log level
}

func (c *SourceConfig) DSN() string {
	encodedUsername := url.QueryEscape(c.Username)
	encodedPassword := url.QueryEscape(c.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", encodedUsername, encodedPassword, c.Host, c.Port, c.Database)
}

func (c *DestinationConfig) DSN() string {
	encodedUsername := url.QueryEscape(c.Username)
	encodedPasscode := url.QueryEscape(c.Passcode)
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", encodedUsername, encodedPasscode, c.Host, c.Port, c.Database)
}

func (c *Config) SetDefault() {
	if c.Source.Port == 0 {
		c.Source.Port = 5432
	}

	if c.Destination.Port == 0 {
		c.Destination.Port = 5432
	}

	if c.Destination.Table == "" {
		c.Destination.Table = c.Sync.Entity
	}

	if c.Sync.BatchSize == 0 {
		c.Sync.BatchSize = 1000
	}

	if c.Sync.Interval == 0 {
		c.Sync.Interval = 5 * time.Minute
	}

	if c.Sync.RunTimeout == 0 {
		c.Sync.RunTimeout = 2 * time.Minute
	}

	if c.Metric.Port == 0 {
		c.Metric.Port = 8080
	}

	if c.Logger.Logger == nil {
		c.Logger.Logger = logger.NewSlog(c.Logger.LogLevel)
	}
}

func (c *Config) Validate() error {
	var err error
	if isEmpty(c.Source.Host) {
		err = errors.Join(err, errors.New("source host cannot be empty"))
	}

	if isEmpty(c.Source.Username) {
		err = errors.Join(err, errors.New("source username cannot be empty"))
	}

	if isEmpty(c.Source.Database) {
		err = errors.Join(err, errors.New("source database cannot be empty"))
	}

	if isEmpty(c.Source.Collection) {
		err = errors.Join(err, errors.New("source collection cannot be empty"))
	}

	if isEmpty(c.Source.Password) && isEmpty(c.Source.PasswordSecret) {
		err = errors.Join(err, errors.New("source password or passwordSecret must be set"))
	}

	if isEmpty(c.Destination.Host) {
		err = errors.Join(err, errors.New("destination host cannot be empty"))
	}

	if isEmpty(c.Destination.Username) {
		err = errors.Join(err, errors.New("destination username cannot be empty"))
	}

	if isEmpty(c.Destination.Database) {
		err = errors.Join(err, errors.New("destination database cannot be empty"))
	}

	if isEmpty(c.Destination.Passcode) && isEmpty(c.Destination.PasscodeSecret) {
		err = errors.Join(err, errors.New("destination passcode or passcodeSecret must be set"))
	}

	if isEmpty(c.Sync.Entity) {
		err = errors.Join(err, errors.New("sync entity cannot be empty"))
	}

	if c.Sync.BatchSize < 0 {
		err = errors.Join(err, errors.New("sync batchSize cannot be negative"))
	}

	return err
}

func (c *Config) Print() {
	cfg := *c
	cfg.Source.Password = "*******"
	cfg.Destination.Passcode = "*******"
	b, _ := json.Marshal(cfg)
	fmt.Println("used config: " + string(b))
}

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
