// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/taibuivan/heroes/internal/client/draft"
	"github.com/taibuivan/heroes/internal/core/hero"
)

// renderList prints the list view: a table and the pagination footer.
func renderList(out io.Writer, page *hero.Page) {
	if len(page.Heroes) == 0 {
		fmt.Fprintln(out, "No heroes found.")
	} else {
		table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(table, "ID\tNICKNAME\tIMAGES\tAVATAR")
		for _, record := range page.Heroes {
			fmt.Fprintf(table, "%d\t%s\t%d\t%s\n", record.ID, record.Nickname, len(record.Images), avatar(record))
		}
		_ = table.Flush()
	}

	fmt.Fprintf(out, "page %d of %d (%d heroes)\n", page.Page, max(page.TotalPages, 1), page.Total)
}

// avatar is the first image, the one shown next to the hero.
func avatar(record *hero.Hero) string {
	if len(record.Images) == 0 {
		return "-"
	}
	return record.Images[0]
}

// renderDetail prints every field of a hero.
func renderDetail(out io.Writer, record *hero.Hero) {
	fmt.Fprintf(out, "#%d %s\n", record.ID, record.Nickname)
	fmt.Fprintf(out, "  Real name:    %s\n", record.RealName)
	fmt.Fprintf(out, "  Origin:       %s\n", record.OriginDescription)
	fmt.Fprintf(out, "  Superpowers:  %s\n", strings.Join(splitPowers(record.Superpowers), ", "))
	fmt.Fprintf(out, "  Catch phrase: %q\n", record.CatchPhrase)

	if len(record.Images) == 0 {
		fmt.Fprintln(out, "  Images:       none")
		return
	}

	fmt.Fprintln(out, "  Images:")
	for i, image := range record.Images {
		fmt.Fprintf(out, "    %d. %s\n", i+1, image)
	}
}

// splitPowers splits the comma separated superpowers, dropping blanks.
func splitPowers(superpowers string) []string {
	powers := make([]string, 0)
	for _, power := range strings.Split(superpowers, ",") {
		if power = strings.TrimSpace(power); power != "" {
			powers = append(powers, power)
		}
	}
	return powers
}

func renderDraft(out io.Writer, saved draft.Draft) {
	if saved.IsEmpty() {
		fmt.Fprintln(out, "No draft saved.")
		return
	}

	table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(table, "nickname\t%s\n", saved.Nickname)
	fmt.Fprintf(table, "real_name\t%s\n", saved.RealName)
	fmt.Fprintf(table, "origin_description\t%s\n", saved.OriginDescription)
	fmt.Fprintf(table, "superpowers\t%s\n", saved.Superpowers)
	fmt.Fprintf(table, "catch_phrase\t%s\n", saved.CatchPhrase)
	_ = table.Flush()
}
