// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// buildInfo describes the running stample binary
type buildInfo struct {
	Version  string
	Revision string
	Time     string
	Modified bool
	Go       string
	Platform string
}

// readBuildInfo fills buildInfo from the module and vcs build settings
func readBuildInfo(read func() (*debug.BuildInfo, bool)) buildInfo {
	info := buildInfo{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := read()
	if !ok {
		return info
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Time = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// 🚀 FormatVersion renders the --version output
func FormatVersion() string {
	return formatBuildInfo(readBuildInfo(debug.ReadBuildInfo))
}

func formatBuildInfo(info buildInfo) string {
	revision := info.Revision
	if revision == "" {
		revision = "unknown"
	}
	if info.Modified {
		revision += " (modified)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚀 stample %s\n", info.Version)
	fmt.Fprintf(&b, "   revision  %s\n", revision)
	if info.Time != "" {
		fmt.Fprintf(&b, "   built     %s\n", info.Time)
	}
	fmt.Fprintf(&b, "   go        %s %s\n", info.Go, info.Platform)
	return b.String()
}
