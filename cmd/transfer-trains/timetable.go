package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kaorut/pathkit/lattice"
)

// noStop marks a station a train passes without stopping.
const noStop = -1

// Timetable holds the stations of one line and the trains running over it.
type Timetable struct {
	Stations []string
	Trains   []Train
}

// Train is one service: a name and a minutes-since-midnight time per
// station, noStop where it passes through.
type Train struct {
	Name  string
	Times []int
}

// Section is one boardable leg of a train: the train plus the station index
// range it covers. Sections are the opaque values carried by lattice
// entries.
type Section struct {
	Train *Train
	From  int
	To    int
}

// ParseTimetable reads the timetable text format: a station line followed
// by one line per train, semicolon lines being comments.
//
//	stations: Hakata Tosu Omuta Kumamoto
//	mizuho 06:00 - - 06:45
//	local815 06:05 06:25 06:55 07:40
func ParseTimetable(reader io.Reader) (*Timetable, error) {
	timetable := &Timetable{}
	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if timetable.Stations == nil {
			if !strings.HasPrefix(line, "stations:") {
				return nil, fmt.Errorf("line %d: expected a stations: line", lineNumber)
			}
			timetable.Stations = strings.Fields(strings.TrimPrefix(line, "stations:"))
			if len(timetable.Stations) < 2 {
				return nil, fmt.Errorf("line %d: at least two stations are required", lineNumber)
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != len(timetable.Stations)+1 {
			return nil, fmt.Errorf("line %d: expected %d times for train %s",
				lineNumber, len(timetable.Stations), fields[0])
		}
		train := Train{Name: fields[0], Times: make([]int, len(timetable.Stations))}
		for i, field := range fields[1:] {
			time, err := parseTime(field)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			train.Times[i] = time
		}
		timetable.Trains = append(timetable.Trains, train)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if timetable.Stations == nil {
		return nil, fmt.Errorf("no stations: line found")
	}
	return timetable, nil
}

func parseTime(field string) (int, error) {
	if field == "-" {
		return noStop, nil
	}
	hour, minute, found := strings.Cut(field, ":")
	if !found {
		return 0, fmt.Errorf("malformed time %q", field)
	}
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed time %q", field)
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed time %q", field)
	}
	return h*60 + m, nil
}

// StationIndex returns a station's index, or -1 when the line has no such
// station.
func (t *Timetable) StationIndex(name string) int {
	for i, station := range t.Stations {
		if strings.EqualFold(station, name) {
			return i
		}
	}
	return -1
}

// spanKey is the lattice lookup key of the leg from station index from to
// station index to: one bracketed segment per hop.
func (t *Timetable) spanKey(from, to int) string {
	var builder strings.Builder
	for i := from; i < to; i++ {
		builder.WriteString("[")
		builder.WriteString(t.Stations[i])
		builder.WriteString(t.Stations[i+1])
		builder.WriteString("]")
	}
	return builder.String()
}

// BuildVocabulary assembles the lattice vocabulary for a journey starting
// at or after departureTime from the station at departureIndex.
//
// Every (from, to) stop pair of every train becomes an entry whose cost is
// its riding time. Transfers connect an arriving section to a departing one
// by waiting time, with a one-point penalty past an hour. The BOS sentinel
// connects to sections leaving the departure station within four hours of
// departureTime, weighted at nine tenths of the real waiting time, so of two
// itineraries arriving together the later departure costs less; every
// section connects to EOS for free.
func (t *Timetable) BuildVocabulary(departureIndex, departureTime int) *lattice.HashMapVocabulary {
	var groups []lattice.EntryGroup
	groupIndexes := map[string]int{}
	var allEntries []lattice.Entry

	for trainIndex := range t.Trains {
		train := &t.Trains[trainIndex]
		for from := 0; from < len(t.Stations)-1; from++ {
			if train.Times[from] == noStop {
				continue
			}
			for to := from + 1; to < len(t.Stations); to++ {
				if train.Times[to] == noStop {
					continue
				}
				key := t.spanKey(from, to)
				section := Section{Train: train, From: from, To: to}
				entry := lattice.NewEntry(
					lattice.NewStringInput(key),
					section,
					int32(train.Times[to]-train.Times[from]),
				)
				groupIndex, seen := groupIndexes[key]
				if !seen {
					groupIndex = len(groups)
					groupIndexes[key] = groupIndex
					groups = append(groups, lattice.EntryGroup{Key: key})
				}
				groups[groupIndex].Entries = append(groups[groupIndex].Entries, entry)
				allEntries = append(allEntries, entry)
			}
		}
	}

	var connections []lattice.EntryConnection
	for _, from := range allEntries {
		fromSection := from.Value().(Section)
		arrival := fromSection.Train.Times[fromSection.To]
		for _, to := range allEntries {
			toSection := to.Value().(Section)
			if toSection.From != fromSection.To {
				continue
			}
			wait := toSection.Train.Times[toSection.From] - arrival
			if wait < 0 {
				continue
			}
			cost := int32(wait)
			if wait > 60 {
				cost++
			}
			connections = append(connections, lattice.EntryConnection{From: from, To: to, Cost: cost})
		}
		connections = append(connections, lattice.EntryConnection{
			From: from, To: lattice.BosEos(), Cost: 0,
		})
	}
	for _, to := range allEntries {
		toSection := to.Value().(Section)
		if toSection.From != departureIndex {
			continue
		}
		wait := toSection.Train.Times[toSection.From] - departureTime
		if wait < 0 || wait > 240 {
			continue
		}
		connections = append(connections, lattice.EntryConnection{
			From: lattice.BosEos(), To: to, Cost: int32(wait) * 9 / 10,
		})
	}

	return lattice.NewHashMapVocabulary(groups, connections, sectionEntryHash, sectionEntryEqualTo)
}

// Connection identity is the section itself: train plus stop range.
func sectionEntryHash(view lattice.EntryView) uint64 {
	h := uint64(0)
	if view.Key() != nil {
		h = view.Key().HashValue()
	}
	if section, ok := view.Value().(Section); ok {
		h = h*31 + uint64(section.From)
		h = h*31 + uint64(section.To)
		for _, b := range []byte(section.Train.Name) {
			h = h*31 + uint64(b)
		}
	}
	return h
}

func sectionEntryEqualTo(one, another lattice.EntryView) bool {
	if (one.Key() == nil) != (another.Key() == nil) {
		return false
	}
	if one.Key() != nil && !one.Key().EqualTo(another.Key()) {
		return false
	}
	oneSection, oneOk := one.Value().(Section)
	anotherSection, anotherOk := another.Value().(Section)
	if oneOk != anotherOk {
		return false
	}
	return !oneOk || (oneSection.Train.Name == anotherSection.Train.Name &&
		oneSection.From == anotherSection.From &&
		oneSection.To == anotherSection.To)
}
