package main

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/spontanique/eventscout/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newSearchCommandApp(action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name: "eventscout",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: action,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Required: true,
					},
					&cli.StringFlag{
						Name:  "extractor-host",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "extractor-model",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "location",
						Value: "Copenhagen",
					},
					&cli.BoolFlag{
						Name: "no-ai",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   20,
					},
				},
			},
		},
	}
}

func TestSearchCommandFlags(t *testing.T) {
	app := newSearchCommandApp(func(c *cli.Context) error { return nil })

	t.Run("db is required", func(t *testing.T) {
		err := app.Run([]string{"eventscout", "search", "jazz"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("extractor-host has default value", func(t *testing.T) {
		cmd := app.Commands[0]
		var hostFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "extractor-host" {
				hostFlag = f
				break
			}
		}
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("location defaults to Copenhagen", func(t *testing.T) {
		cmd := app.Commands[0]
		var locationFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "location" {
				locationFlag = f
				break
			}
		}
		require.NotNil(t, locationFlag)
		assert.Equal(t, "Copenhagen", locationFlag.Value)
	})

	t.Run("limit defaults to 20", func(t *testing.T) {
		cmd := app.Commands[0]
		var limitFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "limit" {
				limitFlag = f
				break
			}
		}
		require.NotNil(t, limitFlag)
		assert.Equal(t, 20, limitFlag.Value)
	})

	t.Run("query args reach the action", func(t *testing.T) {
		var got []string
		app := newSearchCommandApp(func(c *cli.Context) error {
			got = c.Args().Slice()
			return nil
		})
		err := app.Run([]string{"eventscout", "search", "--db", "/tmp/test", "jazz", "tonight"})
		require.NoError(t, err)
		assert.Equal(t, []string{"jazz", "tonight"}, got)
	})
}

func TestImportCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "eventscout",
		Commands: []*cli.Command{
			{
				Name:   "import",
				Action: func(c *cli.Context) error { return nil },
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "feed",
						Aliases:  []string{"f"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "platform",
						Aliases:  []string{"p"},
						Required: true,
					},
				},
			},
		},
	}

	t.Run("feed is required", func(t *testing.T) {
		err := app.Run([]string{"eventscout", "import", "--db", "/tmp/test", "--platform", "billetto"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed")
	})

	t.Run("platform is required", func(t *testing.T) {
		err := app.Run([]string{"eventscout", "import", "--db", "/tmp/test", "--feed", "/tmp/feed.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "platform")
	})
}

func TestSearchOptionsFromIntent(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	t.Run("categories carry over", func(t *testing.T) {
		intent := &ai.SearchIntent{
			Categories:     []string{"music", "nightlife"},
			TimePreference: "anytime",
		}
		opts := searchOptionsFromIntent(intent, now)
		assert.Equal(t, []string{"music", "nightlife"}, opts.Categories)
		assert.Nil(t, opts.Price)
		assert.Nil(t, opts.Time)
	})

	t.Run("narrowed price range becomes a window", func(t *testing.T) {
		intent := &ai.SearchIntent{
			PriceRange:     ai.PriceRange{Min: 0, Max: 200},
			TimePreference: "anytime",
		}
		opts := searchOptionsFromIntent(intent, now)
		require.NotNil(t, opts.Price)
		assert.Equal(t, 0.0, opts.Price.Min)
		assert.Equal(t, 200.0, opts.Price.Max)
	})

	t.Run("wide-open price range is ignored", func(t *testing.T) {
		intent := &ai.SearchIntent{
			PriceRange:     ai.PriceRange{Min: 0, Max: 10000},
			TimePreference: "anytime",
		}
		opts := searchOptionsFromIntent(intent, now)
		assert.Nil(t, opts.Price)
	})

	t.Run("zero max price is ignored", func(t *testing.T) {
		intent := &ai.SearchIntent{TimePreference: "anytime"}
		opts := searchOptionsFromIntent(intent, now)
		assert.Nil(t, opts.Price)
	})

	t.Run("time preference becomes a window", func(t *testing.T) {
		intent := &ai.SearchIntent{TimePreference: "tonight"}
		opts := searchOptionsFromIntent(intent, now)
		require.NotNil(t, opts.Time)
		assert.True(t, opts.Time.Contains(time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)))
		assert.False(t, opts.Time.Contains(time.Date(2025, 6, 3, 20, 0, 0, 0, time.UTC)))
	})

	t.Run("anytime leaves the time window open", func(t *testing.T) {
		intent := &ai.SearchIntent{TimePreference: "anytime"}
		opts := searchOptionsFromIntent(intent, now)
		assert.Nil(t, opts.Time)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		testCases := []string{
			"DEBUG",
			"Info",
			"WaRn",
			"ERROR",
		}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				level := c.String("log-level")
				assert.Equal(t, "debug", level)
				return nil
			},
		}

		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()
	os.Exit(code)
}
