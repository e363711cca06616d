package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/staticblog"
	"github.com/eringen/staticblog/storage"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile  string
	verbose  bool
	siteConf staticblog.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:   "staticblog",
	Short: "Run and serve a static blog",
	Long: `staticblog serves a static blog directory (page shells, posts.json and
pages/*.md), renders its pages the way a browser would, and manages the
stored theme preference.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the staticblog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "staticblog %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./staticblog.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.AddCommand(versionCmd)
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("site_dir", "public")
	v.SetDefault("index_path", "posts.json")
	v.SetDefault("pages_dir", "pages")
	v.SetDefault("storage_path", "data/storage.db")
	v.SetDefault("highlight_style", "github")
	v.SetDefault("search_delay", staticblog.DefaultSearchDelay)
	v.SetDefault("fetch_timeout", 10*time.Second)
	v.SetDefault("index_cache_ttl", 5*time.Minute)
	v.SetDefault("comments.repo", "")
	v.SetDefault("comments.repo_id", "")
	v.SetDefault("comments.category", "")
	v.SetDefault("comments.category_id", "")
	v.SetDefault("comments.mapping", "pathname")
	v.SetDefault("comments.strict", false)
	v.SetDefault("comments.reactions", true)
	v.SetDefault("comments.emit_metadata", true)
	v.SetDefault("comments.input_position", "top")
	v.SetDefault("comments.lang", "en")
	v.SetDefault("comments.loading", "lazy")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("staticblog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("STATICBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&siteConf); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// newApp builds the App for the loaded config with the sqlite local storage
// and a logger writing to stderr.
func newApp(opts ...staticblog.Option) (*staticblog.App, func(), error) {
	lg := log.New("staticblog")
	lg.SetOutput(os.Stderr)
	lg.SetHeader("${time_rfc3339} ${level} ${prefix}")
	if verbose {
		lg.SetLevel(log.DEBUG)
	} else {
		lg.SetLevel(log.INFO)
	}

	cfg := siteConf
	if cfg.StoragePath == "" {
		cfg.StoragePath = "data/storage.db"
	}
	store, err := storage.NewSQLite(cfg.StoragePath, originOf(cfg.URL))
	if err != nil {
		return nil, nil, err
	}

	base := []staticblog.Option{staticblog.WithLogger(lg), staticblog.WithStorage(store)}
	app := staticblog.New(cfg, append(base, opts...)...)
	return app, func() { store.Close() }, nil
}
