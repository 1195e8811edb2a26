package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add dentist date:2024-03-15 time:09:00", TypeAdd},
		{"delete 2024-03-15_09:00_12345", TypeDelete},
		{"toggle 2024-03-15_09:00_12345", TypeToggle},
		{"/goto 2024-06-01", TypeGoto},
		{"show history", TypeShow},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddFields(t *testing.T) {
	cmd, err := Parse("/add pay rent date:2024-04-01 time:9:30 repeat:monthly color:#33AA55")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	add := cmd.Add
	if add.Title != "pay rent" {
		t.Fatalf("title = %q", add.Title)
	}
	if add.Date != "2024-04-01" || add.At != "09:30" || add.Repeat != "monthly" || add.Color != "#33AA55" {
		t.Fatalf("unexpected fields: %+v", add)
	}
}

func TestParseAddRejectsBadValues(t *testing.T) {
	cases := []string{
		"/add x date:2024-02-31",
		"/add x time:25:00",
		"/add x repeat:hourly",
		"/add x color:red",
		"/add date:2024-04-01",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseGoto(t *testing.T) {
	if _, err := Parse("goto today"); err != nil {
		t.Fatalf("goto today failed: %v", err)
	}
	_, err := Parse("goto someday")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/snooze r1 10m")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add water plants repeat:weekly")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "water plants" || a.Repeat != "weekly" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show all")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
