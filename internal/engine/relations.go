package engine

import (
	"sort"

	"github.com/mkariuki/memrel/internal/schema"
)

// RelationMode selects which sides of a table's foreign-key edges a
// RelationGroup collects.
type RelationMode int

const (
	RelationsReferring RelationMode = 1 << iota // table is the child side
	RelationsReferred                           // table is the parent side
	RelationsAll       = RelationsReferring | RelationsReferred
)

// RelationGroup is the transient grouping of one table's foreign-key edges
// computed for a single command. It is never persisted.
type RelationGroup struct {
	Referring []*schema.Relation // edges out of the table (it references others)
	Referred  []*schema.Relation // edges into the table (others reference it)
}

// GroupFor walks a table's indexes against the registry and collects the
// requested relation sides, deduplicated. Iteration follows the table's
// fixed index order, so the result is deterministic for a given schema.
func GroupFor(reg *schema.RelationRegistry, t *schema.Table, mode RelationMode) RelationGroup {
	var group RelationGroup
	seen := make(map[*schema.Relation]bool)

	for _, ix := range t.Indexes() {
		if mode&RelationsReferring != 0 {
			for _, rel := range reg.ReferringOf(ix) {
				if !seen[rel] {
					seen[rel] = true
					group.Referring = append(group.Referring, rel)
				}
			}
		}
		if mode&RelationsReferred != 0 {
			for _, rel := range reg.ReferredOf(ix) {
				if !seen[rel] {
					seen[rel] = true
					group.Referred = append(group.Referred, rel)
				}
			}
		}
	}
	return group
}

// RelatedTables returns every table on the far end of the group's edges,
// deduplicated, excluding t itself, sorted by name. Determinism here keeps
// lock ordering reproducible across concurrent commands.
func (g RelationGroup) RelatedTables(t *schema.Table) []*schema.Table {
	seen := make(map[*schema.Table]bool)
	var out []*schema.Table

	add := func(other *schema.Table) {
		if other == t || seen[other] {
			return
		}
		seen[other] = true
		out = append(out, other)
	}

	for _, rel := range g.Referring {
		add(rel.ReferencedTable())
	}
	for _, rel := range g.Referred {
		add(rel.ReferencingTable())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// sortTables returns a name-sorted copy, the acquisition order every command
// uses so overlapping lock sets cannot deadlock.
func sortTables(tables []*schema.Table) []*schema.Table {
	out := make([]*schema.Table, len(tables))
	copy(out, tables)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
