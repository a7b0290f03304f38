package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/nativeview/arena"
	"github.com/vkngwrapper/nativeview/bindings/sdl3"
	"github.com/vkngwrapper/nativeview/bindings/vulkan"
	"github.com/vkngwrapper/nativeview/bindings/webgpu"
	"github.com/vkngwrapper/nativeview/layout"
	"github.com/vkngwrapper/nativeview/view"
	"golang.org/x/exp/slog"
)

var packages = map[string]func() []*layout.StructLayout{
	"vulkan": vulkan.Layouts,
	"webgpu": webgpu.Layouts,
	"sdl3":   sdl3.Layouts,
}

func main() {
	var (
		pkg     = flag.String("package", "", "Binding package to dump (vulkan, webgpu, sdl3), or all of them if empty")
		name    = flag.String("layout", "", "Native name of a single layout to dump (optional)")
		stats   = flag.Bool("stats", false, "Allocate every dumped layout in an arena and print its statistics")
		mapped  = flag.Bool("mapped", false, "Back the arena with mapped memory instead of the Go heap")
		verbose = flag.Bool("v", false, "Log arena activity")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	layouts, err := selectLayouts(*pkg, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(dumpLayouts(layouts))

	if *stats {
		backing := arena.BackingHeap
		if *mapped {
			backing = arena.BackingMapped
		}

		report, err := allocateLayouts(logger, backing, layouts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(report)
	}
}

func selectLayouts(pkg, name string) ([]*layout.StructLayout, error) {
	var layouts []*layout.StructLayout

	if pkg == "" {
		for _, key := range slices.Sorted(maps.Keys(packages)) {
			layouts = append(layouts, packages[key]()...)
		}
	} else {
		source, ok := packages[strings.ToLower(pkg)]
		if !ok {
			return nil, errors.Newf("unknown package %q", pkg)
		}
		layouts = source()
	}

	if name == "" {
		return layouts, nil
	}

	index := slices.IndexFunc(layouts, func(l *layout.StructLayout) bool {
		return l.Name() == name
	})
	if index < 0 {
		return nil, errors.Newf("no layout named %q", name)
	}
	return layouts[index : index+1], nil
}

func dumpLayouts(layouts []*layout.StructLayout) string {
	writer := jwriter.NewWriter()
	objState := writer.Object()

	for _, l := range layouts {
		l.WriteJSON(objState.Name(l.Name()))
	}

	objState.End()
	return string(writer.Bytes())
}

func allocateLayouts(logger *slog.Logger, backing arena.Backing, layouts []*layout.StructLayout) (string, error) {
	a, err := arena.New(logger, arena.CreateOptions{Backing: backing})
	if err != nil {
		return "", err
	}

	for _, l := range layouts {
		_, err = view.Allocate(a, l)
		if err != nil {
			return "", errors.CombineErrors(errors.Wrapf(err, "allocate %s", l.Name()), a.Release())
		}
	}

	report := a.BuildStatsString(true)
	return report, a.Release()
}
