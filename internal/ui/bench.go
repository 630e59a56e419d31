package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/abi-test/internal/rpc"
)

// BenchStatus is the probe state of one endpoint.
type BenchStatus int

const (
	BenchProbing BenchStatus = iota
	BenchDone
	BenchError
)

// BenchRow holds the probe result for one RPC endpoint.
type BenchRow struct {
	URL     string
	Status  BenchStatus
	Latency time.Duration
	Block   uint64
	ErrMsg  string
	Winner  bool
}

// BenchResultMsg carries one finished probe.
type BenchResultMsg rpc.BenchmarkResult

type benchTickMsg struct{}

// BenchModel is the Bubble Tea model for the live RPC endpoint benchmark.
// Probes run concurrently through ProbeFn; rows fill in as they finish and
// are ranked by the picker once every probe is in.
type BenchModel struct {
	Title     string
	Algorithm rpc.Algorithm
	Rows      []BenchRow
	Done      int
	Frame     int
	Ranked    bool
	Quitting  bool

	// ProbeFn starts the probe of one URL. "r" re-runs failed probes.
	ProbeFn func(url string) tea.Cmd
}

// NewBenchModel creates a model with one probing row per URL.
func NewBenchModel(title string, algo rpc.Algorithm, urls []string, probe func(string) tea.Cmd) BenchModel {
	rows := make([]BenchRow, len(urls))
	for i, u := range urls {
		rows[i] = BenchRow{URL: u}
	}
	return BenchModel{Title: title, Algorithm: algo, Rows: rows, ProbeFn: probe}
}

// ProbeCmd returns a command probing url with rpc.Benchmark.
func ProbeCmd(url string) tea.Cmd {
	return func() tea.Msg {
		res := rpc.Benchmark(context.Background(), []string{url})
		return BenchResultMsg(res[0])
	}
}

func (m BenchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{benchTick()}
	if m.ProbeFn != nil {
		for _, row := range m.Rows {
			cmds = append(cmds, m.ProbeFn(row.URL))
		}
	}
	return tea.Batch(cmds...)
}

func benchTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return benchTickMsg{}
	})
}

func (m BenchModel) failCount() int {
	n := 0
	for _, row := range m.Rows {
		if row.Status == BenchError {
			n++
		}
	}
	return n
}

func (m BenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit
		case "r":
			if m.ProbeFn == nil {
				return m, nil
			}
			var cmds []tea.Cmd
			for i := range m.Rows {
				if m.Rows[i].Status == BenchError {
					m.Rows[i].Status = BenchProbing
					m.Rows[i].ErrMsg = ""
					m.Done--
					m.Ranked = false
					cmds = append(cmds, m.ProbeFn(m.Rows[i].URL))
				}
			}
			return m, tea.Batch(cmds...)
		}

	case benchTickMsg:
		m.Frame = (m.Frame + 1) % len(spinFrames)
		if m.Done >= len(m.Rows) && !m.Ranked {
			m.rank()
		}
		return m, benchTick()

	case BenchResultMsg:
		for i := range m.Rows {
			row := &m.Rows[i]
			if row.URL != msg.URL || row.Status != BenchProbing {
				continue
			}
			if msg.Err != nil {
				row.Status = BenchError
				row.ErrMsg = trimErr(msg.Err.Error())
			} else {
				row.Status = BenchDone
				row.Latency = msg.Latency
				row.Block = msg.BlockNumber
			}
			m.Done++
			break
		}
	}
	return m, nil
}

// rank sorts healthy endpoints fastest first and marks the one the picker
// would choose.
func (m *BenchModel) rank() {
	m.Ranked = true
	sort.SliceStable(m.Rows, func(i, j int) bool {
		a, b := m.Rows[i], m.Rows[j]
		if (a.Status == BenchError) != (b.Status == BenchError) {
			return b.Status == BenchError
		}
		return a.Latency < b.Latency
	})

	endpoints := make([]rpc.Endpoint, len(m.Rows))
	for i, row := range m.Rows {
		m.Rows[i].Winner = false
		endpoints[i] = rpc.Endpoint{
			URL:         row.URL,
			Latency:     row.Latency,
			BlockNumber: row.Block,
			Healthy:     row.Status == BenchDone,
			Checked:     true,
		}
	}
	winner, err := rpc.NewPicker(m.Algorithm).Pick(endpoints)
	if err != nil {
		return
	}
	for i := range m.Rows {
		if m.Rows[i].URL == winner.URL {
			m.Rows[i].Winner = true
		}
	}
}

// Winner returns the URL the picker chose, or "" before ranking or when no
// endpoint is healthy.
func (m BenchModel) Winner() string {
	for _, row := range m.Rows {
		if row.Winner {
			return row.URL
		}
	}
	return ""
}

func (m BenchModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder
	spin := spinFrames[m.Frame]

	sb.WriteString(StyleTitle.Render(fmt.Sprintf("  RPC Benchmark  ·  %s  ·  %s", m.Title, m.Algorithm)) + "\n")

	if m.Done >= len(m.Rows) {
		label := fmt.Sprintf("✓ %d/%d endpoints probed", m.Done, len(m.Rows))
		if m.Ranked {
			label += " · fastest first"
		}
		sb.WriteString(StyleSuccess.Render(label))
	} else {
		sb.WriteString(StyleInfo.Render(fmt.Sprintf("%s %d/%d probing…", spin, m.Done, len(m.Rows))))
	}
	sb.WriteString("\n\n")

	const (
		wURL   = 44
		wLat   = 10
		wBlock = 12
	)
	sep := StyleMeta.Render(strings.Repeat("─", wURL+wLat+wBlock+14))
	sb.WriteString(
		padR(StyleDim.Render("ENDPOINT"), wURL) + "  " +
			padR(StyleDim.Render("LATENCY"), wLat) + "  " +
			padR(StyleDim.Render("BLOCK"), wBlock) + "  " +
			StyleDim.Render("STATUS") + "\n")
	sb.WriteString(sep + "\n")

	for _, row := range m.Rows {
		url := fit(row.URL, wURL)
		var lat, block, status string
		switch row.Status {
		case BenchProbing:
			lat, block, status = StyleMeta.Render(spin), StyleMeta.Render("—"), StyleMeta.Render("⏳")
		case BenchDone:
			lat = StyleValue.Render(row.Latency.Truncate(time.Millisecond).String())
			block = StyleMeta.Render(fmt.Sprint(row.Block))
			status = StyleSuccess.Render("✓")
			if row.Winner {
				url = StyleSelected.Render(url)
				status = StyleSuccess.Render("✓ selected")
			}
		case BenchError:
			lat, block = StyleMeta.Render("—"), StyleMeta.Render("—")
			status = StyleError.Render("✗ " + row.ErrMsg)
		}
		sb.WriteString(padR(url, wURL) + "  " + padR(lat, wLat) + "  " + padR(block, wBlock) + "  " + status + "\n")
	}
	sb.WriteString(sep + "\n\n")

	controls := StyleMeta.Render("  [ q ] quit")
	if n := m.failCount(); n > 0 && m.ProbeFn != nil {
		controls += "   " + StyleWarning.Render(fmt.Sprintf("[ r ] retry %d failed", n))
	}
	sb.WriteString(controls + "\n")
	return sb.String()
}

// RunBench runs the benchmark view and returns the selected endpoint.
func RunBench(m BenchModel) (string, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("benchmark: %w", err)
	}
	return final.(BenchModel).Winner(), nil
}

// trimErr shortens RPC error messages to their useful tail.
func trimErr(s string) string {
	for _, marker := range []string{"dial tcp", "connection refused", "context deadline", "RPC error"} {
		if idx := strings.Index(s, marker); idx >= 0 {
			s = s[idx:]
			break
		}
	}
	if len([]rune(s)) > 30 {
		return string([]rune(s)[:30]) + "…"
	}
	return s
}
