package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL (got %q)", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive (got %v)", c.API.Timeout)
	}

	if !c.LocalStore.InMemory && strings.TrimSpace(c.LocalStore.Path) == "" {
		return fmt.Errorf("local_store.path is required unless in_memory is set")
	}

	if c.Annotations.PageSize <= 0 {
		return fmt.Errorf("annotations.page_size must be positive (got %d)", c.Annotations.PageSize)
	}
	if c.Annotations.MaxPending <= 0 {
		return fmt.Errorf("annotations.max_pending must be positive (got %d)", c.Annotations.MaxPending)
	}

	return nil
}
