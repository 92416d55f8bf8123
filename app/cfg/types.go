package cfg

import "time"

type Cfg struct {
	// Storage
	DBPath      string
	OutletsFile string

	// Application configuration
	Port            string
	WorkerCount     int
	RefreshInterval int // seconds
	MinRefreshGap   int // seconds
	APIAccessKey    string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	LogFormat string
	Version   string
}

func (c *Cfg) GetRefreshInterval() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Second
}

func (c *Cfg) GetMinRefreshGap() time.Duration {
	return time.Duration(c.MinRefreshGap) * time.Second
}
