package config

const (
	defaultConfigPath = "~/.config/shelf/config.toml"
	defaultDataDir    = "~/.local/share/shelf"
	defaultLogDir     = "~/.local/share/shelf/logs"
	defaultAPIBind    = "127.0.0.1:7515"
	defaultUserAgent  = "Shelf/dev"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultMinScore   = 0
	defaultMaxScore   = 10
)

// Remote site defaults.
const (
	DefaultOrigin         = "https://shikimori.one"
	DefaultAcceptedPrefix = "https://shikimori.one/animes/"
)

// DefaultPosterSelector is the structural path from the page root to the
// poster <source> element on an anime page.
const DefaultPosterSelector = "#animes_show > section > div > div.menu-slide-outer.x199 > div > div > " +
	"div:nth-child(1) > div.b-db_entry > div.c-image > div.cc.block > div.c-poster > div > picture > source"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Scraper: Scraper{
			Origin:         DefaultOrigin,
			AcceptedPrefix: DefaultAcceptedPrefix,
			Selector:       DefaultPosterSelector,
			UserAgent:      defaultUserAgent,
		},
		Catalog: Catalog{
			MinScore: defaultMinScore,
			MaxScore: defaultMaxScore,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
