package calcsheet

// GroupItemsByKey buckets items by their parsed group key in order of first
// appearance. When more than one bucket holds a single item, every such
// singleton is folded into one MERGED_SINGLES group placed where the first
// singleton appeared.
func GroupItemsByKey(items []Item) []Group {
	groups := bucketByKey(items)

	singles := 0
	for _, g := range groups {
		if len(g.Items) == 1 {
			singles++
		}
	}
	if singles <= 1 {
		return groups
	}

	out := make([]Group, 0, len(groups)-singles+1)
	mergedAt := -1
	for _, g := range groups {
		if len(g.Items) != 1 {
			out = append(out, g)
			continue
		}
		if mergedAt < 0 {
			mergedAt = len(out)
			out = append(out, Group{
				GroupKey: MergedSinglesKey,
				Parsed:   g.Parsed,
				IsMerged: true,
			})
		}
		out[mergedAt].Items = append(out[mergedAt].Items, g.Items[0])
		out[mergedAt].HasInfluence = out[mergedAt].HasInfluence || g.HasInfluence
	}
	return out
}

// bucketByKey groups items by key in order of first appearance, without
// merging singletons.
func bucketByKey(items []Item) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, it := range items {
		key := it.Parsed.GroupKey
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{GroupKey: key, Parsed: it.Parsed})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].HasInfluence = groups[i].HasInfluence || it.Parsed.HasInfluence
	}
	return groups
}

// singleGroup puts every item in one group keyed by name.
func singleGroup(name string, items []Item) []Group {
	if len(items) == 0 {
		return nil
	}
	g := Group{GroupKey: name, Items: items, Parsed: items[0].Parsed}
	for _, it := range items {
		g.HasInfluence = g.HasInfluence || it.Parsed.HasInfluence
	}
	return []Group{g}
}

// GroupByBlankRows starts a new group at every separator row in the raw
// data between two consecutive items, and whenever the item structure
// changes between single and dual diameter.
func GroupByBlankRows(items []Item, raw *RawData) []Group {
	if len(items) == 0 {
		return nil
	}
	c, _ := raw.requiredColumns()
	var groups []Group
	for i, it := range items {
		if i == 0 || raw.blankBetween(items[i-1].rowIndex(), it.rowIndex(), c) ||
			items[i-1].Parsed.Dual != it.Parsed.Dual {
			groups = append(groups, Group{GroupKey: it.Parsed.GroupKey, Parsed: it.Parsed})
		}
		g := &groups[len(groups)-1]
		g.Items = append(g.Items, it)
		g.HasInfluence = g.HasInfluence || it.Parsed.HasInfluence
	}
	return groups
}

// SplitInfluence separates a trailing run of influence-flagged items from
// the rest. When the last item is not flagged the group is returned as is.
func SplitInfluence(g Group) []Group {
	n := len(g.Items)
	if n == 0 || !g.Items[n-1].Parsed.HasInfluence {
		g.HasInfluence = false
		return []Group{g}
	}
	start := n - 1
	for start > 0 && g.Items[start-1].Parsed.HasInfluence {
		start--
	}
	influence := Group{
		GroupKey:     g.GroupKey + "-influence",
		Items:        g.Items[start:],
		Parsed:       g.Items[start].Parsed,
		HasInfluence: true,
	}
	if start == 0 {
		return []Group{influence}
	}
	remaining := Group{
		GroupKey: g.GroupKey,
		Items:    g.Items[:start],
		Parsed:   g.Items[0].Parsed,
	}
	return []Group{remaining, influence}
}

// GroupByInfluence keeps all items together unless the schedule ends with
// influence piles, in which case those form their own group.
func GroupByInfluence(name string, items []Item) []Group {
	groups := singleGroup(name, items)
	if len(groups) == 0 {
		return nil
	}
	return SplitInfluence(groups[0])
}

// GroupBySubType buckets items by sub-type in order of first appearance,
// then by group key inside each bucket.
func GroupBySubType(items []Item) []Group {
	var order []string
	buckets := make(map[string][]Item)
	for _, it := range items {
		st := it.Parsed.SubType
		if _, ok := buckets[st]; !ok {
			order = append(order, st)
		}
		buckets[st] = append(buckets[st], it)
	}
	var groups []Group
	for _, st := range order {
		groups = append(groups, bucketByKey(buckets[st])...)
	}
	return groups
}

// GroupMatSlabs groups mats by thickness key and attaches every haunch to
// the group of the mat poured immediately before it. Haunches listed ahead
// of any mat wait for the first mat group.
func GroupMatSlabs(items []Item) []Group {
	var (
		groups  []Group
		pending []Item
		current = -1
	)
	index := make(map[string]int)
	for _, it := range items {
		if it.Parsed.SubType == SubTypeHaunch {
			if current < 0 {
				pending = append(pending, it)
				continue
			}
			groups[current].Items = append(groups[current].Items, it)
			continue
		}
		i, ok := index[it.Parsed.GroupKey]
		if !ok {
			i = len(groups)
			index[it.Parsed.GroupKey] = i
			groups = append(groups, Group{GroupKey: it.Parsed.GroupKey, Parsed: it.Parsed})
		}
		groups[i].Items = append(groups[i].Items, it)
		if current < 0 && len(pending) > 0 {
			groups[i].Items = append(groups[i].Items, pending...)
			pending = nil
		}
		current = i
	}
	if len(pending) > 0 {
		groups = append(groups, Group{GroupKey: SubTypeHaunch, Items: pending, Parsed: pending[0].Parsed})
	}
	return groups
}

// GroupByStreet groups B.P.P. items by street in order of first appearance.
func GroupByStreet(items []Item) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, it := range items {
		street := it.Parsed.Street
		if street == "" {
			street = UnspecifiedStreet
		}
		i, ok := index[street]
		if !ok {
			i = len(groups)
			index[street] = i
			groups = append(groups, Group{GroupKey: street, Parsed: it.Parsed})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
