// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/mdconv/internal/httputil"
)

// CollectInputs expands batch arguments. A directory contributes its files
// with a readable extension, sorted by name and without recursion. Files,
// URLs and StdinName pass through unchanged.
func CollectInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if arg == StdinName || httputil.IsURL(arg) {
			inputs = append(inputs, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := LookupInput(FormatFromPath(e.Name())); err == nil {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		inputs = append(inputs, found...)
	}
	return inputs, nil
}
