package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stablearb/arbgate/business/opportunity/domain"
	"github.com/stablearb/arbgate/internal/wsconn"
)

// statePollInterval is how often the monitor re-reads the connection
// state for the status line.
const statePollInterval = time.Second

// Model is the stream monitor: a table of the latest opportunity batch
// fed by the gateway's WebSocket stream.
type Model struct {
	client *wsconn.Client
	keys   KeyMap
	help   help.Model
	table  table.Model

	state      wsconn.State
	lastBatch  time.Time
	batchCount int
	count      int
	err        error
	width      int
	height     int
}

// New creates a monitor subscribed to the given stream URL.
func New(streamURL string) Model {
	columns := []table.Column{
		{Title: "Pair", Width: 12},
		{Title: "Price", Width: 10},
		{Title: "Rate", Width: 10},
		{Title: "Dev (bps)", Width: 10},
		{Title: "Profit", Width: 10},
		{Title: "Side", Width: 6},
		{Title: "Conf", Width: 5},
		{Title: "Max Size", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorPrimary)
	t.SetStyles(styles)

	return Model{
		client: wsconn.New(wsconn.DefaultConfig(streamURL)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		table:  t,
		state:  wsconn.StateDisconnected,
	}
}

// Init connects the stream and starts the receive loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.connect(), m.pollState())
}

func (m Model) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(context.Background()); err != nil {
			return ErrorMsg{Err: err}
		}
		return StateMsg{State: m.client.State()}
	}
}

func (m Model) waitForBatch() tea.Cmd {
	return func() tea.Msg {
		data, open := <-m.client.Messages()
		if !open {
			return StateMsg{State: wsconn.StateDisconnected}
		}

		var result domain.ScanResult
		if err := json.Unmarshal(data, &result); err != nil {
			return ErrorMsg{Err: err}
		}
		return BatchMsg{Result: &result}
	}
}

func (m Model) pollState() tea.Cmd {
	return tea.Tick(statePollInterval, func(time.Time) tea.Msg {
		return StateMsg{State: m.client.State()}
	})
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.client.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.table.SetRows(nil)
			m.count = 0
			m.err = nil
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case StateMsg:
		wasConnected := m.state == wsconn.StateConnected
		m.state = msg.State
		cmds := []tea.Cmd{m.pollState()}
		if !wasConnected && msg.State == wsconn.StateConnected {
			cmds = append(cmds, m.waitForBatch())
		}
		return m, tea.Batch(cmds...)

	case BatchMsg:
		m.err = nil
		m.lastBatch = time.Now()
		m.batchCount++
		m.count = msg.Result.Count
		m.table.SetRows(batchRows(msg.Result))
		return m, m.waitForBatch()

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func batchRows(result *domain.ScanResult) []table.Row {
	rows := make([]table.Row, 0, len(result.Opportunities))
	for _, opp := range result.Opportunities {
		base := opp.BaseOpportunity
		pair := base.Pair.BaseAssetSymbol + "/" + base.Pair.QuoteAssetSymbol
		rows = append(rows, table.Row{
			pair,
			base.StablecoinPrice,
			base.FiatRate,
			strconv.FormatInt(base.DeviationBps, 10),
			base.EstimatedProfit,
			base.TradeDirection,
			strconv.FormatInt(opp.ConfidenceScore, 10),
			opp.MaxTradeSize,
		})
	}
	return rows
}

// View renders the monitor.
func (m Model) View() string {
	title := TitleStyle.Render("arbgate monitor")

	status := m.statusLine()
	body := BoxStyle.Render(m.table.View())
	helpView := HelpStyle.Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, title, status, body, helpView)
}

func (m Model) statusLine() string {
	style := stateStyle(m.state == wsconn.StateConnected, m.state == wsconn.StateReconnecting)
	parts := style.Render(string(m.state))

	if m.batchCount > 0 {
		parts += MutedValue.Render(fmt.Sprintf(
			"  batches: %d  opportunities: %d  last: %s",
			m.batchCount, m.count, m.lastBatch.Format("15:04:05")))
	}
	if m.err != nil {
		parts += "  " + StatusDisconnected.Render(m.err.Error())
	}
	return HelpStyle.Render(parts)
}
