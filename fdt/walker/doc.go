// Package walker provides stock whole-tree visitors built on fdt.Walk.
//
// Count gathers statistics in one pass; Validate checks structural
// consistency and collects every problem instead of stopping at the first.
// Both accept a tree in either byte order and never modify it.
//
// Example:
//
//	stats, err := walker.Count(tree)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(stats)
package walker
