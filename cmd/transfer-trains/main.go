// Command transfer-trains suggests train itineraries over a timetable.
//
// It builds a lattice whose entries are boardable train sections, weights
// edges by riding and waiting time, and lists the N cheapest itineraries.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/width"

	"github.com/kaorut/pathkit/lattice"
)

var listedPaths int

func main() {
	cmd := &cobra.Command{
		Use:   "transfer-trains <timetable>",
		Short: "Suggest train transfers over a timetable",
		Long: `transfer-trains loads a timetable file and answers itinerary queries
interactively. Each query names a departure station, an arrival station and
a departure time; the answer lists the fastest itineraries in ascending
total time, transfers included.

Example:
  transfer-trains kagoshima_line.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	cmd.Flags().IntVarP(&listedPaths, "paths", "n", 5, "How many itineraries to list per query")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(timetablePath string) error {
	file, err := os.Open(timetablePath)
	if err != nil {
		return fmt.Errorf("open timetable: %w", err)
	}
	defer file.Close()

	timetable, err := ParseTimetable(file)
	if err != nil {
		return fmt.Errorf("parse timetable: %w", err)
	}

	fmt.Printf("Stations: %s\n", strings.Join(timetable.Stations, ", "))
	fmt.Println("Enter queries as: <from> <to> <hh:mm>  (empty line to quit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if err := answer(timetable, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return scanner.Err()
}

func answer(timetable *Timetable, query string) error {
	fields := strings.Fields(query)
	if len(fields) != 3 {
		return fmt.Errorf("malformed query %q", query)
	}
	from := timetable.StationIndex(fields[0])
	if from < 0 {
		return fmt.Errorf("unknown station %q", fields[0])
	}
	to := timetable.StationIndex(fields[1])
	if to < 0 {
		return fmt.Errorf("unknown station %q", fields[1])
	}
	if from >= to {
		return fmt.Errorf("%q is not after %q on this line", fields[1], fields[0])
	}
	departureTime, err := parseTime(fields[2])
	if err != nil {
		return err
	}

	vocabulary := timetable.BuildVocabulary(from, departureTime)
	l := lattice.NewLattice(vocabulary)
	for i := from; i < to; i++ {
		if err := l.PushBack(lattice.NewStringInput(timetable.spanKey(i, i+1))); err != nil {
			return fmt.Errorf("no service covers %s to %s", timetable.Stations[i], timetable.Stations[i+1])
		}
	}
	eos, err := l.Settle()
	if err != nil {
		return err
	}

	iterator := lattice.NewNBestIterator(l, eos, lattice.NewConstraint())
	for i := 0; i < listedPaths; i++ {
		path, ok := iterator.Next()
		if !ok {
			if i == 0 {
				fmt.Println("No itinerary found.")
			}
			break
		}
		printItinerary(timetable, path, i+1)
	}
	return nil
}

func printItinerary(timetable *Timetable, path lattice.Path, rank int) {
	fmt.Printf("%d. total %s\n", rank, formatDuration(int(path.Cost())))
	for _, node := range path.Nodes() {
		section, ok := node.Value().(Section)
		if !ok {
			continue
		}
		fmt.Printf("    %s  %s %s -> %s %s\n",
			pad(section.Train.Name, 12),
			pad(timetable.Stations[section.From], 10),
			formatClock(section.Train.Times[section.From]),
			pad(timetable.Stations[section.To], 10),
			formatClock(section.Train.Times[section.To]),
		)
	}
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

// pad right-pads a name to the target display width, counting East Asian
// wide runes as two columns.
func pad(name string, target int) string {
	w := displayWidth(name)
	if w >= target {
		return name
	}
	return name + strings.Repeat(" ", target-w)
}

func displayWidth(name string) int {
	w := 0
	for _, r := range name {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}
