package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lmittmann/tint"
	"sohio.net/cardmarket/internal/compare"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen})))

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: comparer <old.db> <new.db>")
		os.Exit(2)
	}
	oldDb := os.Args[1]
	newDb := os.Args[2]

	changes, err := compare.Compare(oldDb, newDb)
	if err != nil {
		slog.Error("failed to compare snapshots", "err", err.Error())
		os.Exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Id", "Code", "Change", "Old name", "New name", "Old price", "New price"})
	for _, change := range changes {
		kind := "changed"
		switch {
		case change.Added():
			kind = "added"
		case change.Removed():
			kind = "removed"
		}
		t.AppendRow(table.Row{
			change.UniqueID,
			change.CardCode,
			kind,
			change.OldName,
			change.NewName,
			change.OldPrice,
			change.NewPrice,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
