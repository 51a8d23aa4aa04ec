package speech

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"sync"
)

// ExecSynthesizer shells out to a TTS binary such as "say" (macOS) or
// "espeak" (Linux), passing the text as the final argument.
type ExecSynthesizer struct {
	command string

	mu      sync.Mutex
	current *exec.Cmd
}

func NewExecSynthesizer(command string) (*ExecSynthesizer, error) {
	if command == "" {
		return nil, ErrUnsupported
	}
	if _, err := exec.LookPath(command); err != nil {
		return nil, ErrUnsupported
	}
	return &ExecSynthesizer{command: command}, nil
}

func (s *ExecSynthesizer) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.command, text)

	s.mu.Lock()
	s.current = cmd
	s.mu.Unlock()

	err := cmd.Run()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return err
}

func (s *ExecSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
}

// ExecRecognizer runs an STT binary that prints one final transcript line to
// stdout and exits. Stop kills the capture; no partial transcript is
// delivered in that case.
type ExecRecognizer struct {
	command string

	mu      sync.Mutex
	current *exec.Cmd
}

func NewExecRecognizer(command string) (*ExecRecognizer, error) {
	if command == "" {
		return nil, ErrUnsupported
	}
	if _, err := exec.LookPath(command); err != nil {
		return nil, ErrUnsupported
	}
	return &ExecRecognizer{command: command}, nil
}

func (r *ExecRecognizer) Start(ctx context.Context) (<-chan string, error) {
	cmd := exec.CommandContext(ctx, r.command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.current = cmd
	r.mu.Unlock()

	out := make(chan string, 1)
	go func() {
		defer close(out)

		scanner := bufio.NewScanner(stdout)
		if scanner.Scan() {
			if text := strings.TrimSpace(scanner.Text()); text != "" {
				out <- text
			}
		}
		_ = cmd.Wait()

		r.mu.Lock()
		r.current = nil
		r.mu.Unlock()
	}()

	return out, nil
}

func (r *ExecRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil && r.current.Process != nil {
		_ = r.current.Process.Kill()
	}
}
