package executor

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

const (
	shellExecutorName = "shell"
	// contextEnvPrefix prefixes the template context exported to commands.
	contextEnvPrefix = "RELEASER_"
)

// ShellExecutorRepository runs target commands through "sh -c".
//
// Options:
//
//	command:  a single command line
//	commands: a list of command lines, run in order
//	cwd:      working directory relative to the workspace root (default: project root)
//	env:      extra environment variables
//
// The release context is exported as RELEASER_NOTES, RELEASER_VERSION,
// RELEASER_PROJECT_NAME, RELEASER_TAG and so on. Commands should read values
// written by contributors, such as the notes, from these variables rather than
// from inline {{notes}} placeholders, which are pasted into the shell line as is.
//
// Every command yields one result; a failed command ends the stream.
type ShellExecutorRepository struct {
	shell string
}

// NewShellExecutorRepository creates a new shell executor.
func NewShellExecutorRepository() *ShellExecutorRepository {
	return &ShellExecutorRepository{shell: "sh"}
}

func (it *ShellExecutorRepository) Name() string { return shellExecutorName }

// ValidateOptions requires "command" or "commands" and checks the option shapes.
func (it *ShellExecutorRepository) ValidateOptions(options entities.OptionNode) error {
	if options.Kind != entities.MappingOption {
		return it.schemaError("options must be a mapping")
	}

	command, hasCommand := options.Lookup("command")
	commands, hasCommands := options.Lookup("commands")
	switch {
	case !hasCommand && !hasCommands:
		return it.schemaError(`one of "command" or "commands" is required`)
	case hasCommand && command.Kind != entities.ScalarOption:
		return it.schemaError(`"command" must be a string`)
	case hasCommands && commands.Kind != entities.SequenceOption:
		return it.schemaError(`"commands" must be a list`)
	}

	if env, ok := options.Lookup("env"); ok && env.Kind != entities.MappingOption {
		return it.schemaError(`"env" must be a mapping`)
	}
	return nil
}

// Execute runs the configured commands one by one.
func (it *ShellExecutorRepository) Execute(
	ctx context.Context,
	request entities.ExecutionRequest,
) iter.Seq[entities.TargetResult] {
	return func(yield func(entities.TargetResult) bool) {
		dir := filepath.Join(request.WorkspaceRoot, request.Project.Root)
		if cwd, ok := request.Options.Lookup("cwd"); ok && cwd.Kind == entities.ScalarOption {
			dir = filepath.Join(request.WorkspaceRoot, fmt.Sprint(cwd.Value))
		}
		env := environment(request)

		for _, line := range commandLines(request.Options) {
			logger.Infof("[%s] $ %s", request.Target, line)

			cmd := exec.CommandContext(ctx, it.shell, "-c", line)
			cmd.Dir = dir
			cmd.Env = env

			var output bytes.Buffer
			cmd.Stdout = &output
			cmd.Stderr = &output
			err := cmd.Run()

			result := entities.TargetResult{Success: err == nil, Output: output.String()}
			if err != nil {
				result.Err = fmt.Errorf("command %q failed: %w", line, err)
				logger.Errorf("[%s] %s", request.Target, output.String())
			} else {
				logger.Debugf("[%s] %s", request.Target, output.String())
			}

			if !yield(result) || err != nil {
				return
			}
		}
	}
}

func (it *ShellExecutorRepository) schemaError(message string) error {
	return &entities.SchemaError{Executor: shellExecutorName, Message: message}
}

func commandLines(options entities.OptionNode) []string {
	var lines []string
	if command, ok := options.Lookup("command"); ok && command.Kind == entities.ScalarOption {
		lines = append(lines, fmt.Sprint(command.Value))
	}
	if commands, ok := options.Lookup("commands"); ok {
		for _, item := range commands.Items {
			if item.Kind == entities.ScalarOption {
				lines = append(lines, fmt.Sprint(item.Value))
			}
		}
	}
	return lines
}

// environment returns the process environment extended with the release
// context and then the "env" option, each sorted by key.
func environment(request entities.ExecutionRequest) []string {
	env := append(os.Environ(), request.Context.Environment(contextEnvPrefix)...)
	extra, ok := request.Options.Lookup("env")
	if !ok {
		return env
	}

	entries := make([]string, 0, len(extra.Entries))
	for _, entry := range extra.Entries {
		entries = append(entries, fmt.Sprintf("%s=%v", entry.Key, entry.Value.Value))
	}
	sort.Strings(entries)
	return append(env, entries...)
}
