package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spolify/spolify/internal/models"
	"github.com/spolify/spolify/internal/order"
	"github.com/spolify/spolify/internal/pages"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	HomeView
	SongListView
	PlaylistView
	ReorderView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	pages    *pages.Controllers
	width    int
	height   int
	username textinput.Model
	password textinput.Model
	focus    int

	playlistList list.Model
	playlists    []models.Playlist
	songList     list.Model
	songs        []models.SongWithAlbum

	creating  bool
	nameInput textinput.Model

	playlist models.Playlist
	resolved []models.SongWithAlbum
	pager    *order.Pager
	session  *order.Reorder
	cursor   int

	status string
	err    error
	help   help.Model
	keys   keyMap
}

type sessionRestoredMsg struct {
	user *models.User
	err  error
}

type signedInMsg struct {
	user *models.User
	err  error
}

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type songsFetchedMsg struct {
	songs []models.SongWithAlbum
	err   error
}

type orderResolvedMsg struct {
	playlist models.Playlist
	songs    []models.SongWithAlbum
	err      error
}

type orderSavedMsg struct {
	err error
}

type playlistCreatedMsg struct {
	playlist *models.Playlist
	err      error
}

type signedOutMsg struct{}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, controllers *pages.Controllers) *Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	name := textinput.New()
	name.Placeholder = "playlist name"

	return &Model{
		ctx:       ctx,
		view:      LoginView,
		pages:     controllers,
		username:  username,
		password:  password,
		nameInput: name,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init asks the backend whether the stored session is still valid; a valid
// one skips the login screen entirely.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.restoreSession())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case HomeView:
			return m.handleHomeKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case PlaylistView:
			return m.handlePlaylistKeys(msg)
		case ReorderView:
			return m.handleReorderKeys(msg)
		}

	case sessionRestoredMsg:
		if msg.err != nil {
			m.view = LoginView
			return m, nil
		}
		m.view = HomeView
		return m, m.fetchPlaylists()

	case signedInMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = HomeView
		return m, m.fetchPlaylists()

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Your Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = HomeView
			return m, nil
		}
		m.songs = msg.songs
		items := make([]list.Item, len(msg.songs))
		for i, swa := range msg.songs {
			items[i] = songItem{song: swa}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = "Your Songs"
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = SongListView
		return m, nil

	case orderResolvedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = HomeView
			return m, nil
		}
		m.err = nil
		m.status = ""
		m.playlist = msg.playlist
		m.resolved = msg.songs
		m.pager = order.NewPager(len(msg.songs), order.DefaultPageSize)
		m.view = PlaylistView
		return m, nil

	case orderSavedMsg:
		if m.session == nil {
			// The reorder screen was left while the save was in flight;
			// the snapshot is already restored, so the late result has
			// nothing to apply to.
			return m, nil
		}
		if msg.err != nil {
			// The attempted order stays on screen; the session snapshot is
			// untouched, so esc still rolls everything back.
			m.status = styles.err.Render(fmt.Sprintf("Save failed: %v", msg.err))
			return m, nil
		}
		m.session.Commit()
		m.resolved = m.session.Items()
		m.session = nil
		m.pager = order.NewPager(len(m.resolved), order.DefaultPageSize)
		m.status = styles.ok.Render("Order saved")
		m.view = PlaylistView
		return m, nil

	case signedOutMsg:
		m.view = LoginView
		m.err = nil
		m.status = ""
		m.password.SetValue("")
		return m, nil

	case playlistCreatedMsg:
		m.creating = false
		m.nameInput.SetValue("")
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = styles.ok.Render(fmt.Sprintf("Created %q", msg.playlist.Name))
		return m, m.fetchPlaylists()
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoginView:
		return m.renderLogin()
	case HomeView:
		return m.renderHome()
	case SongListView:
		return m.renderSongList()
	case PlaylistView:
		return m.renderPlaylist()
	case ReorderView:
		return m.renderReorder()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.focus = (m.focus + 1) % 2
		if m.focus == 0 {
			m.username.Focus()
			m.password.Blur()
		} else {
			m.username.Blur()
			m.password.Focus()
		}
		return m, nil
	case "enter":
		return m, m.signIn(m.username.Value(), m.password.Value())
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creating {
		switch msg.String() {
		case "enter":
			return m, m.createPlaylist(m.nameInput.Value())
		case "esc":
			m.creating = false
			m.nameInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				return m, m.resolveOrder(pl.playlist.ID)
			}
		}
	case "S":
		return m, m.fetchSongs()
	case "n":
		m.creating = true
		m.nameInput.Focus()
		return m, textinput.Blink
	case "x":
		return m, m.signOut()
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = HomeView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = HomeView
		m.status = ""
		return m, nil
	case "left", "h":
		m.pager.Prev()
		return m, nil
	case "right", "l":
		m.pager.Next()
		return m, nil
	case "r":
		m.session = order.NewReorder(m.resolved)
		m.cursor = 0
		m.status = ""
		m.view = ReorderView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleReorderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.session.Cancel()
		m.session = nil
		m.status = ""
		m.view = PlaylistView
		return m, nil
	case " ":
		if m.session.State() == order.Dragging {
			m.session.Drop()
		} else {
			m.session.Grab(m.cursor)
		}
		return m, nil
	case "up", "k":
		if m.session.State() == order.Dragging {
			m.session.MoveUp()
			m.cursor = m.session.Grabbed()
		} else if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.session.State() == order.Dragging {
			m.session.MoveDown()
			m.cursor = m.session.Grabbed()
		} else if m.cursor < len(m.session.Items())-1 {
			m.cursor++
		}
		return m, nil
	case "s":
		if m.session.State() == order.Dragging {
			m.session.Drop()
		}
		return m, m.saveOrder()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) restoreSession() tea.Cmd {
	return func() tea.Msg {
		user, err := m.pages.Restore(m.ctx)
		return sessionRestoredMsg{user: user, err: err}
	}
}

func (m *Model) signIn(username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.pages.SignIn(m.ctx, username, password)
		return signedInMsg{user: user, err: err}
	}
}

func (m *Model) signOut() tea.Cmd {
	return func() tea.Msg {
		m.pages.SignOut(m.ctx)
		return signedOutMsg{}
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.pages.PlaylistListing(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.pages.SongListing(m.ctx)
		return songsFetchedMsg{songs: songs, err: err}
	}
}

func (m *Model) resolveOrder(playlistID int64) tea.Cmd {
	return func() tea.Msg {
		playlist, songs, err := m.pages.ResolvedOrder(m.ctx, playlistID)
		return orderResolvedMsg{playlist: playlist, songs: songs, err: err}
	}
}

func (m *Model) saveOrder() tea.Cmd {
	payload := m.session.Payload()
	playlistID := m.playlist.ID
	return func() tea.Msg {
		_, err := m.pages.SaveOrder(m.ctx, playlistID, payload)
		return orderSavedMsg{err: err}
	}
}

func (m *Model) createPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.pages.CreateNamedPlaylist(m.ctx, name)
		return playlistCreatedMsg{playlist: playlist, err: err}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Spolify")
	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.err.Render(fmt.Sprintf("Sign in failed: %v", m.err))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s%s\n\n%s", title, m.username.View(), m.password.View(), errLine, helpView)
}

func (m *Model) renderHome() string {
	if m.creating {
		title := styles.title.Render("New Playlist")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
		return fmt.Sprintf("%s\n%s\n\n%s", title, m.nameInput.View(), helpView)
	}

	var status string
	if m.err != nil {
		status = "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	} else if m.status != "" {
		status = "\n" + m.status
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.songs, m.keys.create, m.keys.logout, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", m.playlistList.View(), status, helpView)
}

func (m *Model) renderSongList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderPlaylist() string {
	title := styles.title.Render(m.playlist.Name)

	if len(m.resolved) == 0 {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\nThis playlist is empty.\n\n%s", title, helpView)
	}

	var b strings.Builder
	start, end := m.pager.Bounds()
	for i := start; i < end; i++ {
		swa := m.resolved[i]
		fmt.Fprintf(&b, "  %d. %s - %s (%d)\n", i+1, swa.Album.Artist, swa.Song.Title, swa.Album.Year)
	}

	footer := styles.help.Render(fmt.Sprintf("Page %d of %d", m.pager.Page()+1, m.pager.Pages()))
	var status string
	if m.status != "" {
		status = "\n" + m.status
	}

	helpKeys := []key.Binding{m.keys.left, m.keys.right, m.keys.reorder, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s%s\n\n%s", title, b.String(), footer, status, helpView)
}

func (m *Model) renderReorder() string {
	title := styles.title.Render(fmt.Sprintf("Reorder %q", m.playlist.Name))

	var b strings.Builder
	grabbed := m.session.Grabbed()
	for i, swa := range m.session.Items() {
		line := fmt.Sprintf("%s - %s", swa.Album.Artist, swa.Song.Title)
		switch {
		case i == grabbed:
			line = styles.grabbed.Render("⇅ " + line)
		case i == m.cursor:
			line = styles.cursor.Render("> " + line)
		default:
			line = "  " + line
		}
		fmt.Fprintf(&b, "%s\n", line)
	}

	var status string
	if m.status != "" {
		status = "\n" + m.status
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.grab, m.keys.save, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, b.String(), status, helpView)
}
