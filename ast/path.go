package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSep separates the child positions of a path id.
const PathSep = ","

// FormatPath joins child positions into a path id.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, PathSep)
}

// ParsePath splits a path id into child positions.
func ParsePath(id string) ([]int, error) {
	if id == "" {
		return nil, nil
	}
	parts := strings.Split(id, PathSep)
	path := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad path id %q", id)
		}
		path[i] = n
	}
	return path, nil
}

// ChildID returns the id of the i-th child of the node identified by
// parent. Root nodes have an empty parent.
func ChildID(parent string, i int) string {
	if parent == "" {
		return strconv.Itoa(i)
	}
	return parent + PathSep + strconv.Itoa(i)
}
