package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/mattn/go-runewidth"

	"louver"
)

type commit struct {
	hash    string
	author  string
	when    string
	summary string
}

var (
	hashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

func main() {
	repoPath := flag.String("repo", ".", "repository to read")
	limit := flag.Int("limit", 50000, "maximum commits to load")
	flag.Parse()

	repo, err := git.PlainOpen(*repoPath)
	if err != nil {
		log.Fatalf("open %s: %v", *repoPath, err)
	}
	head, err := repo.Head()
	if err != nil {
		log.Fatal(err)
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		log.Fatal(err)
	}

	var commits []commit
	err = iter.ForEach(func(c *object.Commit) error {
		if len(commits) >= *limit {
			return storer.ErrStop
		}
		commits = append(commits, commit{
			hash:    c.Hash.String()[:7],
			author:  c.Author.Name,
			when:    c.Author.When.Format("2006-01-02"),
			summary: firstLine(c.Message),
		})
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	factory := func(c commit, i int) louver.Element {
		return louver.NewLabel(fmt.Sprintf("%s  %s  %s  %s",
			hashStyle.Render(c.hash), c.when, authorStyle.Render(fmt.Sprintf("%-18s", clip(c.author, 18))), c.summary))
	}

	list, err := louver.NewList(louver.Slice[commit](commits), factory, louver.Config{
		RowHeight:  1,
		BufferSize: 20,
		Threshold:  150,
	})
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(list, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// clip bounds s to n display cells without splitting runes.
func clip(s string, n int) string {
	return runewidth.Truncate(s, n, "…")
}
