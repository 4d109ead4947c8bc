package engine

import (
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// Time budget per move when no clock or movetime is given.
	ThinkTime time.Duration `yaml:"think_time"`
	// Zero means no limit besides the maximum search height.
	MaxDepth int `yaml:"max_depth"`
	// Entry count above which the cache is cleared before the next search.
	CacheCeiling int `yaml:"cache_ceiling"`
	// Check and promotion extensions allowed along one line.
	ExtensionLimit int `yaml:"extension_limit"`
	// Deepest height at which the clock is polled between sibling moves.
	StopCheckHeight  int  `yaml:"stop_check_height"`
	UseTransCache    bool `yaml:"use_trans_cache"`
	ProgressMinNodes int  `yaml:"progress_min_nodes"`

	Logger zerolog.Logger `yaml:"-"`
}

func NewOptions() Options {
	return Options{
		ThinkTime:        2 * time.Second,
		MaxDepth:         0,
		CacheCeiling:     1_000_000,
		ExtensionLimit:   4,
		StopCheckHeight:  2,
		UseTransCache:    true,
		ProgressMinNodes: 0,
		Logger:           zerolog.Nop(),
	}
}
