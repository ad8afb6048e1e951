package cmd

import (
	"fmt"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// pageMeta is for describing the position/info for a command doc page
type pageMeta struct {
	title    string
	parent   string
	navOrder int
}

// metaMap maps from the base Markdown file name to its page meta
var metaMap = map[string]pageMeta{
	"cenhapmer":              {title: "cenhapmer", navOrder: 0},
	"cenhapmer_resilience":   {title: "resilience", parent: "cenhapmer", navOrder: 0},
	"cenhapmer_availability": {title: "availability", parent: "cenhapmer", navOrder: 1},
	"cenhapmer_crosstalk":    {title: "crosstalk", parent: "cenhapmer", navOrder: 2},
}

// docsCmd regenerates the Markdown documentation pages for the commands
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown documentation pages",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		if err := doc.GenMarkdownTreeCustom(RootCmd, "./docs", filePrepender, linkHandler); err != nil {
			log.Fatalf("failed to generate docs: %v", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(docsCmd)
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	m := metaMap[base]

	if m.parent == "" {
		return fmt.Sprintf(rootPage, m.title, m.navOrder)
	}
	return fmt.Sprintf(childPage, m.title, m.parent, m.navOrder)
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "cenhapmer" {
		return "/"
	}
	return base
}
