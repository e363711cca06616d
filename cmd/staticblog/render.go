package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/staticblog"
	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/views"
)

var (
	renderRemote string
	renderTag    string
	renderDark   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a page the way a browser would and print it",
}

var renderIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Render the post listing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if renderTag != "" {
			q.Set("tag", renderTag)
		}
		return renderPage(cmd, views.IndexPage, q)
	},
}

var renderPostCmd = &cobra.Command{
	Use:   "post <file>",
	Short: "Render a single post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderPage(cmd, views.PostPage, url.Values{"p": {args[0]}})
	},
}

func renderPage(cmd *cobra.Command, shell string, query url.Values) error {
	app, closeApp, err := newApp()
	if err != nil {
		return err
	}
	defer closeApp()

	if renderRemote != "" {
		f, err := app.NewHTTPFetcher(renderRemote)
		if err != nil {
			return err
		}
		app.Fetcher = f
	}

	doc, err := staticblog.LoadShell(app.Config.SiteDir, shell)
	if err != nil {
		return err
	}
	pageURL := staticblog.BuildURL(app.Config.URL, shell)
	if len(query) > 0 {
		pageURL += "?" + query.Encode()
	}
	win, err := dom.NewWindow(doc, pageURL)
	if err != nil {
		return fmt.Errorf("page url: %w", err)
	}
	win.MatchMedia(themeQuery).Set(renderDark)

	switch shell {
	case views.PostPage:
		page := app.OpenPost(cmd.Context(), win)
		app.Logger.Debugf("post %q: %s", page.File, page.State)
	default:
		page := app.OpenIndex(cmd.Context(), win)
		app.Logger.Debugf("index: %d posts", len(page.Filter.Posts()))
	}

	var out string
	win.Do(func() { out = doc.String() })
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// originOf reduces a site URL to scheme://host, the scope of its local
// storage.
func originOf(site string) string {
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return strings.TrimRight(site, "/")
	}
	return u.Scheme + "://" + u.Host
}

func init() {
	renderCmd.PersistentFlags().StringVar(&renderRemote, "remote", "", "fetch resources from this published site URL instead of the site directory")
	renderCmd.PersistentFlags().BoolVar(&renderDark, "dark", false, "report a dark OS color scheme")
	renderIndexCmd.Flags().StringVar(&renderTag, "tag", "", "active tag filter")
	renderCmd.AddCommand(renderIndexCmd, renderPostCmd)
	rootCmd.AddCommand(renderCmd)
}
