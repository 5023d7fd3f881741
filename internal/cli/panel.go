package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/pipeline"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Panel styles
var (
	panelSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	panelNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	panelDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	panelOKStyle       = lipgloss.NewStyle().Foreground(colorGreen)
)

// panelRow is one line of the settings panel.
type panelRow int

const (
	rowPrefix panelRow = iota
	rowSamples
	rowLayers
	rowAnimate
	rowMeshes
	rowMaterials
	rowLights
	rowFrames
	rowScene
	rowExport
	rowRender
	numRows
)

var rowCategories = map[panelRow]config.Category{
	rowMeshes:    config.CategoryMeshes,
	rowMaterials: config.CategoryMaterials,
	rowLights:    config.CategoryLights,
	rowFrames:    config.CategoryFrames,
	rowScene:     config.CategoryScene,
}

// runFunc starts an export (and a detached render) with cfg.
type runFunc func(cfg config.Config, render bool) tea.Cmd

// runDoneMsg reports a finished export started from the panel.
type runDoneMsg struct {
	result *pipeline.Result
	render bool
	err    error
}

// panelModel is the bubbletea model of the export settings panel. Every
// key press is turned into a [config.Command] and applied to cfg, so the
// panel never edits the configuration directly.
type panelModel struct {
	cfg     config.Config
	cursor  panelRow
	layer   int // selected column of the layer row
	editing bool
	input   string
	status  string
	failed  bool
	busy    bool
	run     runFunc
	logger  *log.Logger
}

func newPanelModel(cfg config.Config, run runFunc, logger *log.Logger) panelModel {
	return panelModel{cfg: cfg, run: run, logger: logger}
}

func (m panelModel) Init() tea.Cmd {
	return nil
}

func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if msg.String() == "q" || msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m, tea.Quit
		}
		if m.move(msg.String()) {
			return m, nil
		}
		if msg.String() == "enter" && m.cursor == rowPrefix {
			m.editing = true
			m.input = m.cfg.Prefix
			return m, nil
		}
		if cmd := m.keyCommand(msg.String()); cmd != nil {
			return m.apply(cmd)
		}
	case runDoneMsg:
		m.busy = false
		m.failed = msg.err != nil
		switch {
		case msg.err != nil:
			m.status = errors.UserMessage(msg.err)
			m.logger.Error("export failed", "err", msg.err)
		case msg.render:
			m.status = fmt.Sprintf("Exported %d files, renderer started", len(msg.result.Export.Files))
		default:
			m.status = fmt.Sprintf("Exported %d files", len(msg.result.Export.Files))
		}
	}
	return m, nil
}

func (m panelModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		return m.apply(config.FilenameChanged{Prefix: m.input})
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// move handles cursor keys and reports whether key was one.
func (m *panelModel) move(key string) bool {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < numRows-1 {
			m.cursor++
		}
	case "left", "h":
		if m.cursor != rowLayers {
			return false
		}
		if m.layer > 0 {
			m.layer--
		}
	case "right", "l":
		if m.cursor != rowLayers {
			return false
		}
		if m.layer < scene.NumLayers-1 {
			m.layer++
		}
	default:
		return false
	}
	return true
}

// keyCommand maps a key on the current row to a command, or nil.
func (m panelModel) keyCommand(key string) config.Command {
	switch key {
	case "a":
		return config.AllLayersSelected{}
	case "n":
		return config.NoLayersSelected{}
	case "e":
		return config.ExportRequested{}
	case "r":
		return config.RenderRequested{}
	}

	switch m.cursor {
	case rowSamples:
		switch key {
		case "left", "h", "-":
			return config.SamplesChanged{Samples: m.cfg.Samples - 1}
		case "right", "l", "+":
			return config.SamplesChanged{Samples: m.cfg.Samples + 1}
		}
		return nil
	}

	if key != " " && key != "enter" {
		return nil
	}
	switch m.cursor {
	case rowLayers:
		return config.LayerToggled{Layer: m.layer}
	case rowAnimate:
		return config.AnimationToggled{}
	case rowExport:
		return config.ExportRequested{}
	case rowRender:
		return config.RenderRequested{}
	}
	if c, ok := rowCategories[m.cursor]; ok {
		return config.CategoryToggled{Category: c}
	}
	return nil
}

// apply executes cmd. Rejected commands leave the configuration unchanged
// and are shown in the status line.
func (m panelModel) apply(cmd config.Command) (tea.Model, tea.Cmd) {
	switch cmd.(type) {
	case config.ExportRequested, config.RenderRequested:
		if m.busy {
			return m, nil
		}
		_, render := cmd.(config.RenderRequested)
		m.busy = true
		m.failed = false
		m.status = "Exporting..."
		return m, m.run(m.cfg, render)
	}

	next, err := m.cfg.Apply(cmd)
	if err != nil {
		m.logger.Warn("command rejected", "command", cmd.String(), "err", err)
		m.status = errors.UserMessage(err)
		m.failed = true
		return m, nil
	}
	m.cfg = next
	m.status = cmd.String()
	m.failed = false
	return m, nil
}

func (m panelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ray Tracer Export"))
	b.WriteString("\n")
	b.WriteString(panelDimStyle.Render("↑/↓ navigate  ←/→ adjust  space toggle  a/n all/no layers  e export  r render  q quit"))
	b.WriteString("\n\n")

	for row := panelRow(0); row < numRows; row++ {
		cursor := "  "
		style := panelNormalStyle
		if row == m.cursor {
			cursor = "▸ "
			style = panelSelectedStyle
		}
		label, value := m.rowText(row)
		if label == "" {
			b.WriteString(cursor + style.Render(value) + "\n")
			continue
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%-10s", label)) + " " + value + "\n")
		if row == rowAnimate || row == rowScene {
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		switch {
		case m.failed:
			b.WriteString(panelErrorStyle.Render(iconError + " " + m.status))
		case m.busy:
			b.WriteString(panelDimStyle.Render(m.status))
		default:
			b.WriteString(panelOKStyle.Render(iconSuccess + " " + m.status))
		}
	}
	return b.String()
}

func (m panelModel) rowText(row panelRow) (label, value string) {
	switch row {
	case rowPrefix:
		if m.editing {
			return "Filename", StyleHighlight.Render(m.input + "_")
		}
		return "Filename", StyleValue.Render(m.cfg.Prefix)
	case rowSamples:
		return "Rays/px", StyleNumber.Render(fmt.Sprint(m.cfg.Samples))
	case rowLayers:
		return "Layers", m.layerGrid()
	case rowAnimate:
		return "Animate", checkbox(m.cfg.Animate)
	case rowExport:
		return "", "[ Export ]"
	case rowRender:
		return "", "[ Render ]"
	}
	c := rowCategories[row]
	return strings.ToUpper(c.String()[:1]) + c.String()[1:], checkbox(m.cfg.Export.Enabled(c))
}

// layerGrid draws the layer buttons as two groups of ten.
func (m panelModel) layerGrid() string {
	var b strings.Builder
	for i := 0; i < scene.NumLayers; i++ {
		if i == 10 {
			b.WriteString(" ")
		}
		cell := "□"
		if m.cfg.Layers.Has(i) {
			cell = "■"
		}
		if m.cursor == rowLayers && i == m.layer {
			cell = panelSelectedStyle.Render(cell)
		} else {
			cell = panelNormalStyle.Render(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return panelOKStyle.Render("[x]")
	}
	return panelDimStyle.Render("[ ]")
}

// panelCommand creates the interactive settings panel.
func (c *CLI) panelCommand() *cobra.Command {
	var (
		flags configFlags
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "panel [scene]",
		Short: "Adjust export settings interactively",
		Long: `Open an interactive panel with the export settings of a scene: filename
prefix, rays per pixel, visible layers, animation and output categories.
Exports and detached renders run from the panel with the current settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			host, err := loadScene(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			return c.runPanel(cmd.Context(), host, cfg, dir)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "output-dir", "o", "", "directory for the exported files")

	return cmd
}

func (c *CLI) runPanel(ctx context.Context, host scene.Host, cfg config.Config, dir string) error {
	// The panel owns the terminal; log lines are shown once it closes.
	var logBuf bytes.Buffer
	logger := newLogger(&logBuf, c.Logger.GetLevel())
	runner := pipeline.NewRunner(logger)

	run := func(cfg config.Config, render bool) tea.Cmd {
		return func() tea.Msg {
			res, err := runner.Execute(ctx, host, pipeline.Options{Config: cfg, Dir: dir, Render: render})
			if err == nil && res.Process != nil {
				_ = res.Process.Release()
			}
			return runDoneMsg{result: res, render: render, err: err}
		}
	}

	p := tea.NewProgram(newPanelModel(cfg, run, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	os.Stderr.Write(logBuf.Bytes())
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("panel: %w", err)
	}
	return nil
}
