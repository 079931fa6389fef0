package cmdexec

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/masmgr/githistory-go/internal/codec"
)

// Command is either a shell line or an argument vector. Shell lines go
// through the platform interpreter, so pipes and globbing work and the caller
// owns all quoting; argument vectors are executed directly.
type Command struct {
	Line string
	Args []string
}

// Shell returns a Command run through the platform shell.
func Shell(line string) Command {
	return Command{Line: line}
}

// Argv returns a Command executed without shell interpretation.
func Argv(name string, args ...string) Command {
	return Command{Args: append([]string{name}, args...)}
}

// IsShell reports whether c runs through the shell.
func (c Command) IsShell() bool {
	return c.Line != ""
}

// String renders c as a command line that can be pasted into a shell.
func (c Command) String() string {
	if c.IsShell() {
		return c.Line
	}
	return codec.ShellJoin(c.Args)
}

// Name returns a short label for logs and metrics.
func (c Command) Name() string {
	if c.IsShell() {
		return "sh"
	}
	if len(c.Args) == 0 {
		return ""
	}
	return filepath.Base(c.Args[0])
}

var errEmptyCommand = errors.New("empty command")

func (c Command) argv() (string, []string, error) {
	if c.IsShell() {
		name, args := shellArgv(c.Line)
		return name, args, nil
	}
	if len(c.Args) == 0 || c.Args[0] == "" {
		return "", nil, errEmptyCommand
	}
	return c.Args[0], c.Args[1:], nil
}

// Options tune a single Run call.
type Options struct {
	Env       map[string]string // Applied after the forced locale, so these win
	Dir       string
	NoTimeout bool   // Run without the executor's deadline
	Label     string // Metrics/log label; defaults to Command.Name
}

// Result is the outcome of a command that exited with status zero.
type Result struct {
	Command  Command
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// forcedLocale pins message language and formatting in every child process.
var forcedLocale = []string{"LANGUAGE", "LC_ALL"}

// BuildEnv copies base, forces the C locale and applies overrides last.
// Keys keep their first position so the result is stable.
func BuildEnv(base []string, overrides map[string]string) []string {
	env := make([]string, 0, len(base)+len(forcedLocale)+len(overrides))
	index := make(map[string]int, cap(env))

	set := func(key, value string) {
		kv := key + "=" + value
		if i, ok := index[key]; ok {
			env[i] = kv
			return
		}
		index[key] = len(env)
		env = append(env, kv)
	}

	for _, kv := range base {
		key, value, _ := strings.Cut(kv, "=")
		set(key, value)
	}
	for _, key := range forcedLocale {
		set(key, "C")
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		set(k, overrides[k])
	}

	return env
}
