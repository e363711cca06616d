package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/staticblog"
	"github.com/eringen/staticblog/dom"
	"github.com/eringen/staticblog/theme"
	"github.com/eringen/staticblog/views"
)

const themeQuery = theme.DarkQuery

var themeDark bool

var themeCmd = &cobra.Command{
	Use:   "theme [get|toggle|set <light|dark>|reset]",
	Short: "Show or change the stored theme preference",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, closeApp, err := newApp()
		if err != nil {
			return err
		}
		defer closeApp()

		doc, err := staticblog.LoadShell(app.Config.SiteDir, views.IndexPage)
		if err != nil {
			return err
		}
		win, err := dom.NewWindow(doc, app.Config.URL)
		if err != nil {
			return err
		}
		win.MatchMedia(themeQuery).Set(themeDark)

		ctrl := theme.New(win, app.Storage)
		current := ctrl.Init()

		action := "get"
		if len(args) > 0 {
			action = args[0]
		}
		switch action {
		case "get":
			if len(args) > 1 {
				return fmt.Errorf("get takes no value")
			}
		case "toggle":
			if current, err = ctrl.Toggle(); err != nil {
				return err
			}
		case "set":
			if len(args) != 2 {
				return fmt.Errorf("set needs light or dark")
			}
			t, ok := theme.Parse(args[1])
			if !ok {
				return fmt.Errorf("unknown theme %q", args[1])
			}
			if err := ctrl.Set(t); err != nil {
				return err
			}
			current = t
		case "reset":
			if current, err = ctrl.Reset(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown action %q", action)
		}

		source := "system"
		if _, ok := ctrl.Saved(); ok {
			source = "saved"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", current, source)
		return nil
	},
}

func init() {
	themeCmd.Flags().BoolVar(&themeDark, "dark", false, "report a dark OS color scheme")
	rootCmd.AddCommand(themeCmd)
}
