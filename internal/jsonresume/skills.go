package jsonresume

import (
	"strings"

	"github.com/igegov/cv-portfolio/internal/types"
)

// PersonalSkillsGroup is the synthetic group name for the flat personal skill list
const PersonalSkillsGroup = "Personal"

// orderedSet is an insertion-ordered set of strings
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(value string) {
	if _, exists := s.seen[value]; exists {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}

// AggregateSkills flattens skill sections into one entry per group name.
// Groups without a category fall back to the section title; groups sharing a name
// across sections merge into a deduplicated keyword list. Personal skills come last.
func AggregateSkills(skills types.Skills) []types.Skill {
	var order []string
	groups := make(map[string]*orderedSet)

	group := func(name string) *orderedSet {
		set, ok := groups[name]
		if !ok {
			set = newOrderedSet()
			groups[name] = set
			order = append(order, name)
		}
		return set
	}

	for _, section := range skills.Sections {
		for _, g := range section.Groups {
			name := strings.TrimSpace(g.Category)
			if name == "" {
				name = strings.TrimSpace(section.Title)
			}
			if name == "" {
				continue
			}

			set := group(name)
			for _, skill := range g.Skills {
				if trimmed := strings.TrimSpace(skill); trimmed != "" {
					set.add(trimmed)
				}
			}
		}
	}

	if len(skills.Personal) > 0 {
		set := group(PersonalSkillsGroup)
		for _, skill := range skills.Personal {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				set.add(trimmed)
			}
		}
	}

	result := make([]types.Skill, 0, len(order))
	for _, name := range order {
		result = append(result, types.Skill{
			Name:     name,
			Keywords: groups[name].items,
		})
	}
	return result
}

// uniqueStrings trims values, drops empties and keeps the first occurrence of each
func uniqueStrings(values []string) []string {
	set := newOrderedSet()
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			set.add(trimmed)
		}
	}
	return set.items
}
