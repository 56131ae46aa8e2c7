package r2estimator_api

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/carbocation/pfx"
)

// Read a group membership file
func ReadMembership(path string) ([]MembershipEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("failed to open the groups file: %w", err))
	}
	defer file.Close()

	entries, err := ParseMembership(file)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	return entries, nil
}

// Parse group membership lines of the form "<sample><whitespace><group>"
// Everything after the first whitespace character is the group name, a line without whitespace belongs to the empty group
func ParseMembership(input io.Reader) ([]MembershipEntry, error) {
	entries := []MembershipEntry{}
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		entry := MembershipEntry{Sample: line}
		if delimiter := strings.IndexFunc(line, unicode.IsSpace); delimiter >= 0 {
			_, size := utf8.DecodeRuneInString(line[delimiter:])
			entry.Sample = line[:delimiter]
			entry.Group = line[delimiter+size:]
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Build the groups from the membership entries and the sample columns of the input
// Groups are sorted by name and list the positions of their samples in column order,
// entries naming samples that are not in the input are ignored.
// A sample listed more than once stays in the group of its first line.
func BuildGroups(entries []MembershipEntry, samples []string) []Group {
	members := map[string]map[string]bool{}
	assigned := map[string]string{}
	for _, entry := range entries {
		if group, ok := assigned[entry.Sample]; ok {
			if group != entry.Group {
				Log.Debugf("Sample '%s' is already in group '%s', ignoring group '%s'", entry.Sample, group, entry.Group)
			}
			continue
		}
		assigned[entry.Sample] = entry.Group
		if members[entry.Group] == nil {
			members[entry.Group] = map[string]bool{}
		}
		members[entry.Group][entry.Sample] = true
	}

	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		group := Group{Name: name, Samples: []int{}}
		for index, sample := range samples {
			if members[name][sample] {
				group.Samples = append(group.Samples, index)
			}
		}
		if len(group.Samples) < len(members[name]) {
			Log.Debugf("Group '%s': %d of %d samples found in the input", name, len(group.Samples), len(members[name]))
		}
		groups = append(groups, group)
	}
	return groups
}

// The names of the groups in order
func GroupNames(groups []Group) []string {
	names := make([]string, len(groups))
	for index, group := range groups {
		names[index] = group.Name
	}
	return names
}
