package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeToggle   Type = "toggle"
	TypeDelete   Type = "delete"
	TypeExcuse   Type = "excuse"
	TypeClear    Type = "clear"
	TypeMotivate Type = "motivate"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ClearScope string

const (
	ClearCompleted ClearScope = "completed"
	ClearAll       ClearScope = "all"
)

type AddArgs struct {
	Text string
}

// TargetArgs names a task by id.
type TargetArgs struct {
	ID int
}

type ClearArgs struct {
	Scope ClearScope
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Clear  *ClearArgs
}

var aliases = map[string]Type{
	"done":    TypeToggle,
	"do":      TypeToggle,
	"rm":      TypeDelete,
	"del":     TypeDelete,
	"why":     TypeExcuse,
	"new":     TypeAdd,
	"toggle":  TypeToggle,
	"inspire": TypeMotivate,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := Type(strings.ToLower(parts[0]))
	if alias, ok := aliases[string(head)]; ok {
		head = alias
	}
	args := parts[1:]

	switch head {
	case TypeAdd:
		rest := strings.TrimLeft(raw[len(parts[0]):], " \t")
		return parseAdd(input, rest)
	case TypeToggle, TypeDelete, TypeExcuse:
		return parseTarget(input, head, args)
	case TypeClear:
		return parseClear(input, args)
	case TypeMotivate:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "motivate takes no arguments"}
		}
		return Command{Type: TypeMotivate, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", parts[0])}
	}
}

// parseAdd keeps the text after the verb as typed, inner spacing included.
func parseAdd(raw, rest string) (Command, error) {
	text := strings.TrimSpace(rest)
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", typ)}
	}
	id, err := ParseID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	scope := ClearCompleted
	if len(args) > 0 {
		switch ClearScope(strings.ToLower(args[0])) {
		case ClearCompleted, "done":
			scope = ClearCompleted
		case ClearAll:
			scope = ClearAll
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear accepts: completed, all"}
		}
	}
	return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Scope: scope}}, nil
}

// ParseID accepts "12" or "#12".
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id <= 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %q", s)}
	}
	return id, nil
}
