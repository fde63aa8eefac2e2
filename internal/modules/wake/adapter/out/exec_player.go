package out

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	wakeout "holoalarm/internal/modules/wake/port/out"
)

// PlayerDisabled turns playback off when used as the player command.
const PlayerDisabled = "none"

type ExecPlayer struct {
	name string
	args []string
}

// NewExecPlayer splits command into program and arguments; the file path is
// appended as the last argument. It returns nil when playback is disabled.
func NewExecPlayer(command string) wakeout.Player {
	fields := strings.Fields(command)
	if len(fields) == 0 || fields[0] == PlayerDisabled {
		return nil
	}
	return &ExecPlayer{name: fields[0], args: fields[1:]}
}

// Play blocks until the player exits or ctx is cancelled.
func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	args := append(append([]string{}, p.args...), path)
	cmd := exec.CommandContext(ctx, p.name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("play audio with %s: %w: %s", p.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
