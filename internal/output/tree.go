package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is where file descriptions start.
	descriptionColumn = 34
)

type treeNode struct {
	name        string
	description string
	isDir       bool
	children    []*treeNode
}

// RenderFileTree renders the files of a generated project as a tree rooted at
// rootName. files maps slash-separated relative paths to an optional
// description, which is aligned at a fixed column.
func RenderFileTree(rootName string, files map[string]string, styles *Styles) string {
	if len(files) == 0 {
		return ""
	}

	root := &treeNode{name: rootName, isDir: true}

	for path, desc := range files {
		parts := strings.Split(filepath.ToSlash(path), "/")
		current := root

		for i, part := range parts {
			last := i == len(parts)-1

			var child *treeNode
			for _, c := range current.children {
				if c.name == part {
					child = c
					break
				}
			}
			if child == nil {
				child = &treeNode{name: part, isDir: !last}
				current.children = append(current.children, child)
			}
			if last {
				child.description = desc
			}
			current = child
		}
	}

	sortTree(root)

	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(root.name + "/"))
	sb.WriteString("\n")
	for i, child := range root.children {
		renderNode(&sb, child, "", i == len(root.children)-1, styles)
	}
	return sb.String()
}

// sortTree orders children directories first, then alphabetically.
func sortTree(node *treeNode) {
	sort.Slice(node.children, func(i, j int) bool {
		a, b := node.children[i], node.children[j]
		if a.isDir != b.isDir {
			return a.isDir
		}
		return a.name < b.name
	})
	for _, child := range node.children {
		sortTree(child)
	}
}

func renderNode(sb *strings.Builder, node *treeNode, prefix string, isLast bool, styles *Styles) {
	connector := treeEdge
	if isLast {
		connector = treeLast
	}

	name := node.name
	if node.isDir {
		name += "/"
	}
	line := prefix + connector + name

	if node.description != "" {
		padding := descriptionColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + styles.Muted.Render(node.description)
	}

	sb.WriteString(line)
	sb.WriteString("\n")

	childPrefix := prefix + treeVert
	if isLast {
		childPrefix = prefix + treeSpace
	}
	for i, child := range node.children {
		renderNode(sb, child, childPrefix, i == len(node.children)-1, styles)
	}
}

// RenderSimpleTree renders a tree without descriptions.
func RenderSimpleTree(rootName string, files []string, styles *Styles) string {
	fileMap := make(map[string]string, len(files))
	for _, f := range files {
		fileMap[f] = ""
	}
	return RenderFileTree(rootName, fileMap, styles)
}
