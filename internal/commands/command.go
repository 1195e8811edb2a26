package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/remindd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDelete Type = "delete"
	TypeToggle Type = "toggle"
	TypeGoto   Type = "goto"
	TypeShow   Type = "show"
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

// AddArgs carries a new reminder. Date, At, Repeat and Color come from
// optional key:value words; absent fields keep their zero values and the
// store applies its defaults.
type AddArgs struct {
	Title  string
	Date   string
	At     string
	Repeat string
	Color  string
}

type DeleteArgs struct {
	ID string
}

type ToggleArgs struct {
	ID string
}

type GotoArgs struct {
	Date string
}

type ShowArgs struct {
	Subject string
	Date    string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Delete *DeleteArgs
	Toggle *ToggleArgs
	Goto   *GotoArgs
	Show   *ShowArgs
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
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeToggle:
		return parseToggle(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}

	add := AddArgs{}
	var titleWords []string
	for _, arg := range args {
		key, value, found := strings.Cut(arg, ":")
		if !found {
			titleWords = append(titleWords, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "date":
			if _, err := model.ParseDate(value); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad date: %s", value)}
			}
			add.Date = value
		case "time":
			clock, err := model.ParseClock(value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad time: %s", value)}
			}
			add.At = string(clock)
		case "repeat":
			repeat := strings.ToLower(value)
			if !model.RepeatType(repeat).IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad repeat: %s", value)}
			}
			add.Repeat = repeat
		case "color":
			if !model.ValidColor(value) {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad color: %s", value)}
			}
			add.Color = value
		default:
			titleWords = append(titleWords, arg)
		}
	}

	add.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if add.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a reminder id"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{ID: args[0]}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a reminder id"}
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{ID: args[0]}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date"}
	}
	if args[0] != "today" {
		if _, err := model.ParseDate(args[0]); err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad date: %s", args[0])}
		}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: args[0]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "day", "history", "all":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", subject)}
	}
	date := ""
	if len(args) > 1 {
		if _, err := model.ParseDate(args[1]); err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad date: %s", args[1])}
		}
		date = args[1]
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject, Date: date}}, nil
}
