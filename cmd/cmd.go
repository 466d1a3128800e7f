// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the local store and create a config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles session operations against the backend
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign in, sign out and check session status",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with username and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "End the backend session and clear the local marker",
				Action: r.AuthLogout,
			},
			{
				Name:  "signup",
				Usage: "Register a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
					&cli.StringFlag{Name: "name", Usage: "First name"},
					&cli.StringFlag{Name: "surname", Usage: "Last name"},
				},
				Action: r.AuthSignup,
			},
			{
				Name:   "status",
				Usage:  "Check whether the stored session is still valid",
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistsCommand handles playlist operations
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
					&cli.BoolFlag{Name: "cached", Usage: "Read from the local store instead of the backend"},
				},
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist in its resolved display order",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "create",
				Usage: "Create a playlist, optionally seeded with song IDs",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
					&cli.StringArgs{Name: "songs", Min: 0, Max: -1},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "move",
				Usage: "Move a song to a new position and save the order",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "from",
						Usage:    "Current position of the song (1-based)",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "to",
						Usage:    "Target position (1-based)",
						Required: true,
					},
				},
				Action: r.PlaylistMove,
			},
			{
				Name:  "add",
				Usage: "Add songs to a playlist by song ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArgs{Name: "songs", Min: 1, Max: -1},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "queue",
				Usage: "Print the play queue: stream URLs in resolved order",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "Song ID to start the queue at",
					},
				},
				Action: r.PlaylistQueue,
			},
			{
				Name:  "export",
				Usage: "Export a playlist's resolved order to a file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: text, csv or markdown",
						Value: "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory path",
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// songsCommand handles song library operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Song library operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all songs with album detail",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
					&cli.BoolFlag{Name: "cached", Usage: "Read from the local store instead of the backend"},
				},
				Action: r.SongList,
			},
			{
				Name:   "genres",
				Usage:  "List available genres",
				Action: r.SongGenres,
			},
			{
				Name:  "upload",
				Usage: "Upload a new song with album metadata",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "album", Usage: "Album title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Album artist", Required: true},
					&cli.IntFlag{Name: "year", Usage: "Album year"},
					&cli.StringFlag{Name: "genre"},
					&cli.StringFlag{Name: "audio", Usage: "Path to the audio file", Required: true},
					&cli.StringFlag{Name: "image", Usage: "Path to the album image"},
				},
				Action: r.SongUpload,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}
