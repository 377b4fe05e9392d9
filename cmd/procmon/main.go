package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"

	"louver"
)

type proc struct {
	pid  int32
	name string
	cpu  float64
	rss  uint64
}

type sampleMsg []proc

// sample reads the process table, fanning the per-process calls out with a
// bounded group so a large table doesn't stall the tick.
func sample() tea.Msg {
	procs, err := process.Processes()
	if err != nil {
		return sampleMsg(nil)
	}
	out := make([]proc, len(procs))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(8)
	for i, p := range procs {
		i, p := i, p
		g.Go(func() error {
			name, _ := p.Name()
			cpu, _ := p.CPUPercent()
			var rss uint64
			if mi, err := p.MemoryInfo(); err == nil && mi != nil {
				rss = mi.RSS
			}
			out[i] = proc{pid: p.Pid, name: name, cpu: cpu, rss: rss}
			return nil
		})
	}
	g.Wait()
	sort.Slice(out, func(a, b int) bool { return out[a].cpu > out[b].cpu })
	return sampleMsg(out)
}

type model struct {
	list     *louver.List[proc]
	interval time.Duration
}

func (m model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return sample() }, m.tick())
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return sample() })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s, ok := msg.(sampleMsg); ok {
		m.list.SetItems(louver.Slice[proc](s))
		return m, m.tick()
	}
	lm, cmd := m.list.Update(msg)
	m.list = lm.(*louver.List[proc])
	return m, cmd
}

func (m model) View() string { return m.list.View() }

var hotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

func main() {
	interval := flag.Duration("interval", 2*time.Second, "sampling interval")
	flag.Parse()

	factory := func(p proc, i int) louver.Element {
		cpu := fmt.Sprintf("%6.1f%%", p.cpu)
		if p.cpu > 50 {
			cpu = hotStyle.Render(cpu)
		}
		return louver.Labelf("%7d  %-28s %s  %9s", p.pid, clip(p.name, 28), cpu, mib(p.rss))
	}

	list, err := louver.NewList[proc](nil, factory, louver.Config{
		RowHeight:  1,
		BufferSize: 20,
		Threshold:  100,
	})
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(model{list: list, interval: *interval}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// clip bounds s to n display cells without splitting runes.
func clip(s string, n int) string {
	return runewidth.Truncate(s, n, "…")
}

func mib(b uint64) string {
	return fmt.Sprintf("%.1fM", float64(b)/(1<<20))
}
