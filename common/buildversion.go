// Package common holds the terminal colors and build metadata shared by the
// command line tool and the sinks.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	git "github.com/go-git/go-git/v5"
)

// Set with -ldflags "-X github.com/colorfulnotion/ltbench/common.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// GetCommitHash returns the short commit the binary was built from. It tries
// the ldflags value, then the VCS stamp the go tool embeds, then the git
// repository around the working directory or the executable.
func GetCommitHash() string {
	hash := Commit
	if hash == "" {
		hash = vcsRevision()
	}
	if hash == "" {
		hash = repoHead()
	}
	if hash == "" {
		return "unknown"
	}
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func repoHead() string {
	if cwd, err := os.Getwd(); err == nil {
		if hash := computeHashFromPath(cwd); hash != "" {
			return hash
		}
	}
	if exe, err := os.Executable(); err == nil {
		return computeHashFromPath(filepath.Dir(exe))
	}
	return ""
}

func computeHashFromPath(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}

func VersionString() string {
	s := fmt.Sprintf("ltbench %s (%s) %s/%s %s", Version, GetCommitHash(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
