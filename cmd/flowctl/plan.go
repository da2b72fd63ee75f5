package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ib-77/procflow/pkg/flow"
)

// Plan is a TOML file describing commands to run as one process.
//
//	name = "build"
//	strategy = "parallel"
//	max_workers = 4
//
//	[[task]]
//	name = "vet"
//	command = "go"
//	args = ["vet", "./..."]
type Plan struct {
	Name       string     `toml:"name"`
	Strategy   string     `toml:"strategy"`
	MaxWorkers int        `toml:"max_workers"`
	Tasks      []PlanTask `toml:"task"`
}

// PlanTask is one command of a plan.
type PlanTask struct {
	Name    string            `toml:"name"`
	Command string            `toml:"command"`
	Args    []string          `toml:"args"`
	Env     map[string]string `toml:"env"`
	Dir     string            `toml:"dir"`
}

// LoadPlan decodes and validates the plan at path. Unknown keys are errors.
func LoadPlan(path string) (*Plan, error) {
	plan := &Plan{}
	md, err := toml.DecodeFile(path, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("plan %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return plan, nil
}

func (p *Plan) Validate() error {
	if p.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must be >= 0, got %d", p.MaxWorkers)
	}
	if p.Strategy != "" {
		if _, err := flow.ParseStrategy(p.Strategy); err != nil {
			return err
		}
	}
	for i, t := range p.Tasks {
		if strings.TrimSpace(t.Command) == "" {
			return fmt.Errorf("task %d (%s): command is required", i, t.Name)
		}
	}
	return nil
}

// CommandOutput is what a finished command produced.
type CommandOutput struct {
	ExitCode int
	Output   string
}

// Task turns t into a process task. A non-zero exit is a task failure.
func (t PlanTask) Task() flow.TaskFunc[CommandOutput] {
	return func(ctx context.Context) (CommandOutput, error) {
		cmd := exec.CommandContext(ctx, t.Command, t.Args...)
		cmd.Dir = t.Dir
		if len(t.Env) > 0 {
			cmd.Env = append(os.Environ(), t.environ()...)
		}

		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out

		err := cmd.Run()
		result := CommandOutput{Output: strings.TrimSpace(out.String())}

		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			if result.Output != "" {
				return result, fmt.Errorf("%s exited with code %d: %s", t.Command, result.ExitCode, lastLine(result.Output))
			}
			return result, fmt.Errorf("%s exited with code %d", t.Command, result.ExitCode)
		case err != nil:
			result.ExitCode = -1
			return result, fmt.Errorf("failed to run %s: %w", t.Command, err)
		}
		return result, nil
	}
}

func (t PlanTask) environ() []string {
	keys := make([]string, 0, len(t.Env))
	for k := range t.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, len(keys))
	for i, k := range keys {
		env[i] = k + "=" + t.Env[k]
	}
	return env
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
