package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"louver"
)

func main() {
	rate := flag.Duration("rate", 25*time.Millisecond, "delay between generated lines")
	keep := flag.Int("keep", 100000, "lines retained")
	flag.Parse()

	// The pane owns stderr while it runs; engine logs go to a file.
	if f, err := os.OpenFile("logview.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		louver.SetLogger(slog.New(slog.NewTextHandler(f, nil)))
		defer f.Close()
	}

	pane, err := louver.NewTermPane()
	if err != nil {
		log.Fatal(err)
	}
	defer pane.Close()

	feed := louver.NewFeed[string]()
	factory := func(line string, i int) louver.Element {
		return louver.NewLabel(line)
	}
	eng, err := louver.New[string](pane, factory, louver.Config{
		RowHeight:  1,
		BufferSize: 40,
		Threshold:  200,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Destroy()

	eng.Initialize(feed)
	unbind := louver.Bind(eng, feed)
	defer unbind()

	var follow atomic.Bool
	follow.Store(true)

	redraw := func() {
		if follow.Load() {
			pane.ScrollToBottom()
		}
		eng.Refresh()
		st := eng.State()
		pane.SetStatus(fmt.Sprintf(" %d lines  [%d-%d]  follow=%v   f follow  q quit",
			st.TotalRows, st.StartIndex, st.EndIndex, follow.Load()))
		pane.RequestRender()
	}

	go func() {
		levels := []string{"INFO ", "WARN ", "DEBUG", "ERROR"}
		comps := []string{"ingest", "planner", "compactor", "gc", "rpc"}
		for i := 0; ; i++ {
			feed.Append(fmt.Sprintf("%s %s %-10s request %06d handled in %dms",
				time.Now().Format("15:04:05.000"), levels[rand.Intn(len(levels))],
				comps[rand.Intn(len(comps))], i, 1+rand.Intn(90)))
			feed.TrimFront(*keep)
			redraw()
			time.Sleep(*rate)
		}
	}()

	go pane.Run()

	for {
		k, r, err := pane.ReadKey()
		if err != nil {
			return
		}
		switch k {
		case louver.KeyQuit:
			return
		case louver.KeyUp:
			follow.Store(false)
			pane.ScrollBy(-1)
		case louver.KeyDown:
			pane.ScrollBy(1)
		case louver.KeyPageUp:
			follow.Store(false)
			pane.ScrollBy(-pane.ViewportHeight())
		case louver.KeyPageDown:
			pane.ScrollBy(pane.ViewportHeight())
		case louver.KeyHome:
			follow.Store(false)
			pane.SetScrollOffset(0)
		case louver.KeyEnd:
			pane.ScrollToBottom()
		case louver.KeyRune:
			if r == 'f' {
				follow.Store(true)
			}
		}
		redraw()
	}
}
