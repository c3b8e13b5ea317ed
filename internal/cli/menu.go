package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eposter/internal/config"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const timedLoopTitle = "Timed poster loop"

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose a poster or the timed loop interactively",
	Run:   runMenu,
}

func init() {
	addLaunchFlags(menuCmd)
	rootCmd.AddCommand(menuCmd)
}

type menuItem struct {
	title string
	path  string // empty for the timed loop entry
}

func (i menuItem) Title() string { return i.title }

func (i menuItem) Description() string {
	if i.path == "" {
		return "cycle through every cached poster"
	}
	return i.path
}

func (i menuItem) FilterValue() string { return i.title }

type menuModel struct {
	list   list.Model
	choice *menuItem
}

func newMenuModel(items []list.Item) menuModel {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "e-poster"
	l.SetShowStatusBar(false)
	return menuModel{list: l}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(menuItem); ok {
				m.choice = &item
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m menuModel) View() string { return m.list.View() }

// listPosters returns the cached poster images. os.ReadDir already sorts
// by filename, matching the order the viewer cycles in.
func listPosters(cacheDir string) ([]menuItem, error) {
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // viewer has not cached anything yet
		}
		return nil, fmt.Errorf("failed to read cache dir: %w", err)
	}

	var items []menuItem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			items = append(items, menuItem{
				title: entry.Name(),
				path:  filepath.Join(cacheDir, entry.Name()),
			})
		}
	}
	return items, nil
}

func runMenu(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	posters, err := listPosters(cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	items := make([]list.Item, 0, len(posters)+1)
	items = append(items, menuItem{title: timedLoopTitle})
	for _, p := range posters {
		items = append(items, p)
	}

	p := tea.NewProgram(newMenuModel(items), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
		os.Exit(1)
	}

	m, ok := final.(menuModel)
	if !ok || m.choice == nil {
		return // user backed out, nothing to launch
	}
	launchViewer(m.choice.path)
}
