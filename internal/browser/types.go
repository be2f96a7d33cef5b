// internal/browser/types.go
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/datalens/linkedscout/internal/utils"
)

// FailureReason classifies why a page fetch failed.
type FailureReason string

const (
	// ReasonTimeout means the readiness selector never appeared within the
	// navigation timeout.
	ReasonTimeout FailureReason = "timeout"

	// ReasonSession means the browser process or DevTools session faulted.
	ReasonSession FailureReason = "session"
)

// FetchError reports a failed page fetch. It is fatal to the single fetch;
// the caller decides whether the surrounding unit of work fails with it.
type FetchError struct {
	URL    string
	Reason FailureReason
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed (%s): %v", e.URL, e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a fetch timeout.
func IsTimeout(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Reason == ReasonTimeout
}

// Config holds browser session settings. Every fetch launches and tears down
// its own session from these settings.
type Config struct {
	Headless          bool           `yaml:"headless" json:"headless"`
	NavigationTimeout utils.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
	SettleMin         utils.Duration `yaml:"settle_min" json:"settle_min"`
	SettleMax         utils.Duration `yaml:"settle_max" json:"settle_max"`
	ViewportWidth     int            `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight    int            `yaml:"viewport_height" json:"viewport_height"`
	UserAgents        []string       `yaml:"user_agents,omitempty" json:"user_agents,omitempty"`
}

// DefaultConfig returns browser settings suitable for scraping public
// LinkedIn pages.
func DefaultConfig() *Config {
	return &Config{
		Headless:          true,
		NavigationTimeout: utils.Duration(25 * time.Second),
		SettleMin:         utils.Duration(1500 * time.Millisecond),
		SettleMax:         utils.Duration(4 * time.Second),
		ViewportWidth:     1280,
		ViewportHeight:    800,
	}
}
