// catalog prints the built-in template catalog, optionally filtered.
//
//	go run ./cmd/catalog -category Деньги -q расписка
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"doc-templates-be/pkg/catalog"

	"github.com/fatih/color"
)

func main() {
	category := flag.String("category", string(catalog.CategoryAll), "category to show")
	query := flag.String("q", "", "case-insensitive title search")
	flag.Parse()

	cat, err := catalog.Default()
	if err != nil {
		color.Red("Failed to load catalog: %v", err)
		os.Exit(1)
	}

	c, ok := catalog.ParseCategory(*category)
	if !ok {
		color.Red("Unknown category %q", *category)
		names := make([]string, 0, len(cat.Categories()))
		for _, known := range cat.Categories() {
			names = append(names, string(known))
		}
		fmt.Println("Known categories:", strings.Join(names, ", "))
		os.Exit(1)
	}

	templates := cat.Filter(c, *query)
	color.Cyan("%d of %d templates\n", len(templates), cat.Len())
	for _, t := range templates {
		color.Yellow("%-20s %s", t.ID, t.Title)
		fmt.Printf("  %s · %s\n", t.Category, t.Complexity)
		fmt.Printf("  %s\n", t.Description)
		if len(t.RequiredInfo) > 0 {
			color.Green("  needs: %s", strings.Join(t.RequiredInfo, ", "))
		}
	}
}
