package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eringen/staticblog"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site directory",
	Long: `serve hosts the site directory with the page shells, posts.json and
pages/*.md, plus a generated feed.xml and sitemap.xml. With --watch the
cached post index is dropped whenever posts.json changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			siteConf.Addr = serveAddr
		}
		app, closeApp, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp()

		srv := app.NewServer()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serveWatch {
			stopWatch, err := watchIndex(ctx, app, srv.Cache)
			if err != nil {
				return err
			}
			defer stopWatch()
		}

		app.Logger.Infof("serving %s on %s", app.Config.SiteDir, app.Config.Addr)
		return srv.Start(ctx)
	},
}

// watchIndex invalidates cache when the post index file changes.
func watchIndex(ctx context.Context, app *staticblog.App, cache *staticblog.IndexCache) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	indexFile := filepath.Join(app.Config.SiteDir, filepath.FromSlash(app.Config.IndexPath))
	if err := watcher.Add(filepath.Dir(indexFile)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(indexFile) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					app.Logger.Infof("%s changed (%s), dropping cached index", event.Name, event.Op)
					cache.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				app.Logger.Warnf("watcher: %v", err)
			}
		}
	}()
	return func() { watcher.Close() }, nil
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload posts.json on change")
	rootCmd.AddCommand(serveCmd)
}
