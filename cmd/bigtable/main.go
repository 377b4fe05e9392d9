package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"louver"
)

type order struct {
	id     string
	symbol string
	side   string
	qty    int
	price  float64
}

var (
	idStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	buyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	sellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func main() {
	rows := flag.Int("rows", 500000, "synthetic orders to generate")
	flag.Parse()

	symbols := []string{"ACME", "GLOBEX", "INITECH", "UMBRELLA", "HOOLI", "STARK"}
	orders := make([]order, *rows)
	for i := range orders {
		side := "BUY"
		if rand.Intn(2) == 0 {
			side = "SELL"
		}
		orders[i] = order{
			id:     uuid.NewString()[:8],
			symbol: symbols[rand.Intn(len(symbols))],
			side:   side,
			qty:    10 + rand.Intn(990),
			price:  5 + rand.Float64()*495,
		}
	}

	factory := func(o order, i int) louver.Element {
		st := buyStyle
		if o.side == "SELL" {
			st = sellStyle
		}
		return louver.NewLabel(fmt.Sprintf("%7d  %s  %-8s %s %5d  %9.2f",
			i, idStyle.Render(o.id), o.symbol, st.Render(fmt.Sprintf("%-4s", o.side)), o.qty, o.price))
	}

	list, err := louver.NewList(louver.Slice[order](orders), factory, louver.Config{
		RowHeight:  1,
		BufferSize: 30,
		Threshold:  200,
	})
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(list, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
