package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// Op is a scripted master operation
type Op uint8

const (
	OpStart Op = iota
	OpStop
	OpWrite
	OpRead
	OpTx
)

func (o Op) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpStop:
		return "stop"
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	case OpTx:
		return "tx"
	default:
		return "unknown"
	}
}

// Command is one parsed script statement
type Command struct {
	Op    Op
	Addr  uint16 // tx only
	Data  []byte // write and tx payload
	Count int    // bytes to read
	Ack   bool   // read: ACK the last byte too
	Line  int
}

// Step is the outcome of running one Command
type Step struct {
	Cmd  Command
	Data []byte // bytes read
	Acks []bool // ACK bits observed for bytes written
	Err  error
}

var errSyntax = errors.New("syntax error")

// ParseScript parses a master script. Statements are separated by
// newlines or ';' and '#' starts a comment:
//
//	start; write 6e 01 02; stop
//	tx 37 00 read 4
//	start
//	write 6f
//	read 2
//	stop
func ParseScript(src string) ([]Command, error) {
	var cmds []Command
	for i, line := range strings.Split(src, "\n") {
		tokens, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		var stmt []string
		flush := func() error {
			if len(stmt) == 0 {
				return nil
			}
			cmd, err := parseCommand(stmt)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			cmd.Line = i + 1
			cmds = append(cmds, cmd)
			stmt = stmt[:0]
			return nil
		}
		for _, tok := range tokens {
			for tok != "" {
				j := strings.IndexByte(tok, ';')
				if j < 0 {
					stmt = append(stmt, tok)
					break
				}
				if j > 0 {
					stmt = append(stmt, tok[:j])
				}
				if err := flush(); err != nil {
					return nil, err
				}
				tok = tok[j+1:]
			}
		}
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return cmds, nil
}

func parseCommand(tokens []string) (Command, error) {
	args := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "start":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: start takes no arguments", errSyntax)
		}
		return Command{Op: OpStart}, nil

	case "stop":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: stop takes no arguments", errSyntax)
		}
		return Command{Op: OpStop}, nil

	case "write":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%w: write needs at least one byte", errSyntax)
		}
		data, err := parseHex(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpWrite, Data: data}, nil

	case "read":
		if len(args) < 1 || len(args) > 2 {
			return Command{}, fmt.Errorf("%w: read <n> [ack|nack]", errSyntax)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return Command{}, fmt.Errorf("%w: bad read count %q", errSyntax, args[0])
		}
		cmd := Command{Op: OpRead, Count: n}
		if len(args) == 2 {
			switch strings.ToLower(args[1]) {
			case "ack":
				cmd.Ack = true
			case "nack":
			default:
				return Command{}, fmt.Errorf("%w: read <n> [ack|nack]", errSyntax)
			}
		}
		return cmd, nil

	case "tx":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%w: tx needs an address", errSyntax)
		}
		addr, err := strconv.ParseUint(args[0], 16, 8)
		if err != nil || addr > 0x7F {
			return Command{}, fmt.Errorf("%w: bad address %q", errSyntax, args[0])
		}
		cmd := Command{Op: OpTx, Addr: uint16(addr)}
		args = args[1:]
		for i, a := range args {
			if strings.ToLower(a) != "read" {
				continue
			}
			if i != len(args)-2 {
				return Command{}, fmt.Errorf("%w: tx <addr> [bytes...] [read n]", errSyntax)
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				return Command{}, fmt.Errorf("%w: bad read count %q", errSyntax, args[i+1])
			}
			cmd.Count = n
			args = args[:i]
			break
		}
		if cmd.Data, err = parseHex(args); err != nil {
			return Command{}, err
		}
		return cmd, nil
	}
	return Command{}, fmt.Errorf("%w: unknown command %q", errSyntax, tokens[0])
}

func parseHex(args []string) ([]byte, error) {
	data := make([]byte, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(a), "0x"), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: bad byte %q", errSyntax, a)
		}
		data = append(data, byte(v))
	}
	return data, nil
}

// Run executes cmds on m. A NACK is reported in the step and does not
// end the script; a bus error does.
func Run(m *Master, cmds []Command) ([]Step, error) {
	steps := make([]Step, 0, len(cmds))
	for _, cmd := range cmds {
		step := Step{Cmd: cmd}
		switch cmd.Op {
		case OpStart:
			step.Err = m.Start()
		case OpStop:
			m.Stop()
		case OpWrite:
			for _, b := range cmd.Data {
				err := m.WriteByte(b)
				step.Acks = append(step.Acks, err == nil)
				if err != nil && step.Err == nil {
					step.Err = err
				}
			}
		case OpRead:
			step.Data = make([]byte, cmd.Count)
			for i := range step.Data {
				step.Data[i] = m.ReadByte(cmd.Ack || i < cmd.Count-1)
			}
		case OpTx:
			if cmd.Count > 0 {
				step.Data = make([]byte, cmd.Count)
			}
			step.Err = m.Tx(cmd.Addr, cmd.Data, step.Data)
		}
		steps = append(steps, step)
		if errors.Is(step.Err, ErrBusBusy) {
			return steps, step.Err
		}
	}
	return steps, nil
}
