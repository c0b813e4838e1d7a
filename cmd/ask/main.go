// Command ask walks through every prompt widget in sequence, the way
// an interactive project scaffolder would.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"parley"
)

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(0, 2).
	Bold(true)

var noteStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("8")).
	Italic(true)

func check(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, parley.ErrEscape) {
		fmt.Println()
		fmt.Println(noteStyle.Render("cancelled"))
		os.Exit(130)
	}
	fmt.Fprintln(os.Stderr, "ask:", err)
	os.Exit(1)
}

func reply(value string) string {
	return parley.PaintText(parley.CurrentTheme().ReplyColor, value)
}

func main() {
	fmt.Println(bannerStyle.Render("parley demo"))
	fmt.Println(noteStyle.Render("esc cancels at any point"))
	fmt.Println()

	name := askName()
	askToken()
	lang := askLanguage()
	features := askFeatures()
	when := askSchedule()
	profile := askProfile()
	confirm := askConfirm(name)

	fmt.Println()
	fmt.Printf("name:     %s\n", name)
	fmt.Printf("language: %s\n", lang)
	fmt.Printf("features: %s\n", strings.Join(features, ", "))
	fmt.Printf("schedule: %s\n", when.Format(time.RFC822))
	fmt.Printf("workers:  %v\n", profile["workers"])
	fmt.Printf("region:   %v\n", profile["region"])
	fmt.Printf("proceed:  %v\n", confirm)
}

func askName() string {
	w := parley.NewInput(parley.InputConfig{})
	result, err := parley.Start(w, parley.StartConfig{
		Show: "Project name: ",
		Reply: func(_ parley.Widget, result any) string {
			return reply(result.(string))
		},
	})
	check(err)
	return result.(string)
}

func askToken() {
	w := parley.NewConceal(parley.ConcealConfig{})
	_, err := parley.Start(w, parley.StartConfig{
		Show:     "Deploy token: ",
		HintText: "(hidden) ",
		Reply: func(_ parley.Widget, _ any) string {
			return reply("********")
		},
	})
	check(err)
}

var languages = []string{"Go", "Rust", "Python", "TypeScript", "Zig", "Elixir"}

func askLanguage() string {
	w := parley.NewSelect(parley.SelectConfig{Options: languages})
	result, err := parley.Start(w, parley.StartConfig{
		Show:     "Language: ",
		HintText: "[filter: type | move: ↑ ↓]",
		Info:     parley.SearchStageInfo(w.Mesh()),
		Site:     parley.SiteInfo,
		MultiPre: true,
		Reply: func(_ parley.Widget, result any) string {
			return reply(languages[result.(int)])
		},
	})
	check(err)
	return languages[result.(int)]
}

var features = []string{"metrics", "tracing", "docs", "linting", "releases"}

func askFeatures() []string {
	w := parley.NewBasket(parley.BasketConfig{Options: features, Active: []int{0}})
	result, err := parley.Start(w, parley.StartConfig{
		Show:     "Features: ",
		HintText: "[mark: ← → | move: ↑ ↓]",
		Info:     parley.SearchStageInfo(w.Mesh()),
		Site:     parley.SiteInfo,
		MultiPre: true,
		Reply: func(_ parley.Widget, result any) string {
			indexes := result.([]int)
			sort.Ints(indexes)
			picked := make([]string, len(indexes))
			for i, index := range indexes {
				picked[i] = features[index]
			}
			return reply(strings.Join(picked, ", "))
		},
	})
	check(err)

	indexes := result.([]int)
	picked := make([]string, len(indexes))
	for i, index := range indexes {
		picked[i] = features[index]
	}
	return picked
}

func askSchedule() time.Time {
	w := parley.NewDateTime(parley.DateTimeConfig{})
	result, err := parley.Start(w, parley.StartConfig{
		Show:     "First deploy: ",
		HintText: "[move: ← → | adjust: ↑ ↓ | edit: type]",
		Reply: func(_ parley.Widget, result any) string {
			return reply(result.(time.Time).Format(time.RFC822))
		},
	})
	check(err)
	return result.(time.Time)
}

func askProfile() map[string]any {
	workers := parley.NewCount(parley.CountConfig{Value: 4})
	region := parley.NewInput(parley.InputConfig{Value: "eu-west-1"})
	w := parley.NewForm(parley.FormConfig{
		Fields: []parley.FormField{
			{Name: "workers", Widget: workers},
			{Name: "region", Widget: region},
		},
	})
	result, err := parley.Start(w, parley.StartConfig{
		Show:     "Profile:",
		MultiPre: true,
		MultiAft: true,
		Reply: func(_ parley.Widget, result any) string {
			fields := result.(map[string]any)
			return reply(fmt.Sprintf("workers=%v region=%v", fields["workers"], fields["region"]))
		},
	})
	check(err)
	return result.(map[string]any)
}

func askConfirm(name string) bool {
	w := parley.NewInquire(parley.InquireConfig{Default: true, HasDefault: true})
	result, err := parley.Start(w, parley.StartConfig{
		Show:     fmt.Sprintf("Create %q? ", name),
		HintText: "(Y/n) ",
		Reply: func(_ parley.Widget, result any) string {
			if result.(bool) {
				return reply("yes")
			}
			return reply("no")
		},
	})
	check(err)
	return result.(bool)
}
