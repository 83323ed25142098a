package pkgconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Viper struct {
	v *viper.Viper
}

// NewViper reads the YAML file at path. A .env file in the working directory, when
// present, is loaded into the environment first so it can override file values.
func NewViper(path string) (*Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return &Viper{v: v}, nil
}

func (c *Viper) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Viper) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Viper) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Viper) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *Viper) Close() error {
	return nil
}
