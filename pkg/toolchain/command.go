package toolchain

import "strings"

// Command is an executable name together with the arguments that are always passed to it,
// for example "xiar cru" or "icc -m64 -fPIC".
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a whitespace separated command line into a Command.
// Quoting is not supported; none of the driver commands need it.
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}

	c := Command{Name: fields[0]}
	if len(fields) > 1 {
		c.Args = fields[1:]
	}
	return c
}

// IsZero reports whether the command has no executable.
func (c Command) IsZero() bool {
	return c.Name == ""
}

// WithArgs returns a copy of the command with args appended. The receiver is not modified.
func (c Command) WithArgs(args ...string) Command {
	out := Command{Name: c.Name}
	if n := len(c.Args) + len(args); n > 0 {
		out.Args = make([]string, 0, n)
		out.Args = append(out.Args, c.Args...)
		out.Args = append(out.Args, args...)
	}
	return out
}

// Argv returns the command as an argument vector, executable first.
func (c Command) Argv() []string {
	if c.IsZero() {
		return nil
	}
	return append([]string{c.Name}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

func (c Command) clone() Command {
	if c.Args == nil {
		return c
	}
	return Command{Name: c.Name, Args: append([]string(nil), c.Args...)}
}
