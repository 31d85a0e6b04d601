package build

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment git infos linked into binaries
type Environment struct {
	Commit string
	Date   string
}

// Env returns git infos, CI variables take precedence over git
func Env() *Environment {
	env := &Environment{
		Commit: os.Getenv("GIT_COMMIT"),
		Date:   os.Getenv("GIT_DATE"),
	}
	if env.Commit == "" && isGitRepo() {
		env.Commit = RunGit("rev-parse", "HEAD")
	}
	if env.Date == "" && env.Commit != "" {
		env.Date = RunGit("show", "-s", "--format=%cd", "--date=format:%Y%m%d", env.Commit)
	}
	return env
}

func isGitRepo() bool {
	_, err := os.Stat(filepath.Join(".git", "HEAD"))
	return err == nil
}

// String renders the env for logging
func (env *Environment) String() string {
	return strings.TrimSpace("commit=" + env.Commit + " date=" + env.Date)
}
