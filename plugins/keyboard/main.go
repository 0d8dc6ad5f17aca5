// Command keyboard is a mudra action plugin that sends a keystroke on macOS
// when a bound signal label appears.
//
// Binding config:
//
//	{"key": "=", "modifiers": ["command"]}
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type request struct {
	Action string          `json:"action"`
	Label  string          `json:"label"`
	Config json.RawMessage `json:"config"`
}

type response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type keystroke struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
}

var modifiers = map[string]string{
	"command": "command down",
	"cmd":     "command down",
	"option":  "option down",
	"alt":     "option down",
	"control": "control down",
	"ctrl":    "control down",
	"shift":   "shift down",
}

func main() {
	os.Exit(run(os.Stdin, os.Stdout, runAppleScript))
}

func run(in io.Reader, out io.Writer, send func(string) error) int {
	var req request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return reply(out, fmt.Errorf("decode request: %w", err))
	}

	switch req.Action {
	case "keystroke", "shortcut":
	default:
		return reply(out, fmt.Errorf("unknown action: %s", req.Action))
	}

	var ks keystroke
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &ks); err != nil {
			return reply(out, fmt.Errorf("parse config: %w", err))
		}
	}

	script, err := appleScript(ks)
	if err != nil {
		return reply(out, err)
	}
	if err := send(script); err != nil {
		return reply(out, fmt.Errorf("%s for %s: %w", req.Action, req.Label, err))
	}
	return reply(out, nil)
}

func appleScript(ks keystroke) (string, error) {
	if ks.Key == "" {
		return "", errors.New("key is required")
	}
	key := strings.ReplaceAll(ks.Key, `"`, `\"`)

	var mods []string
	for _, m := range ks.Modifiers {
		if as, ok := modifiers[strings.ToLower(m)]; ok {
			mods = append(mods, as)
		}
	}

	if len(mods) == 0 {
		return fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, key), nil
	}
	return fmt.Sprintf(`tell application "System Events" to keystroke "%s" using {%s}`, key, strings.Join(mods, ", ")), nil
}

func reply(out io.Writer, err error) int {
	resp := response{Success: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	json.NewEncoder(out).Encode(resp)
	return 0
}

func runAppleScript(script string) error {
	output, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
