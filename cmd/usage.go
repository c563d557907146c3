package cmd

import (
	"strings"

	"github.com/zorak1103/dk/internal/config"
	"github.com/zorak1103/dk/internal/ui"
	"github.com/zorak1103/dk/internal/version"
)

type usageEntry struct {
	command     string
	description string
}

type usageSection struct {
	title   string
	entries []usageEntry
}

var usageSections = []usageSection{
	{"CONTAINERS:", []usageEntry{
		{"dk ps", "Show state of the containers"},
		{"dk rm <container*>", "Remove container(s)"},
		{"dk shell <container>", "Run a bash shell into the container"},
	}},
	{"IMAGES:", []usageEntry{
		{"dk im", "Show the list of images"},
		{"dk im rm <image*>", "Remove the specified images"},
		{"dk im save <image*>", "Save the specified images"},
		{"dk im load <file*>", "Load the specified image files"},
		{"dk im scan <image*>", "Scan images for vulnerabilities"},
		{"dk im pull <image*>", "Pull images, reusing local archives"},
	}},
	{"VOLUMES:", []usageEntry{
		{"dk vol", "Show the list of volumes"},
		{"dk vol prune", "Delete all unused volumes"},
		{"dk vol rm <volume*>", "Remove specified volumes"},
	}},
	{"SYSTEM:", []usageEntry{
		{"dk sys show", "Show extended information"},
		{"dk sys prune", "Delete unused data (networks, volumes, build cache)"},
		{"dk sys size", "Show data size (docker system df)"},
		{"dk sys ping", "Check that the Docker daemon answers"},
	}},
}

// printUsage prints the full command summary.
func printUsage(p *ui.Printer, c *config.Catalog) {
	p.Section("dk version " + version.GetVersion())
	for _, section := range usageSections {
		p.Section(section.title)
		for _, e := range section.entries {
			p.UsageLine(e.command, e.description)
		}
		p.Println()
	}
	printOTSUsage(p, c)
	p.Println()
	p.Hint("<x*> targets take one or more IDs, names or numbers from the last listing")
}

func printOTSUsage(p *ui.Printer, c *config.Catalog) {
	p.Section("OTS:")
	p.UsageLine("dk ots up <service*>", "Create and run a container for the specified services")
	p.UsageLine("dk ots down <service*>", "Delete the specified service containers")
	p.UsageLine("dk ots ls", "List the services of the catalog")

	names := "(none)"
	if c != nil && len(c.OTS) > 0 {
		names = strings.Join(c.Names(), "|")
	}
	p.UsageLine("The supported ots are", names)
	p.Hint("(see " + catalogLocation() + ")")
}

func catalogLocation() string {
	if store != nil {
		return store.Path()
	}
	return "~/" + config.CatalogDirName + "/" + config.CatalogFileName
}
