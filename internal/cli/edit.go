package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/editor"
	"github.com/yaklabco/gomdedit/pkg/runner"
)

// ErrUnknownEditCommand is reported for script lines that name no command.
var ErrUnknownEditCommand = errors.New("unknown edit command")

const editPrompt = "gomdedit> "

const editHelp = `Commands:
  type TEXT       type TEXT one character at a time
  paste TEXT      insert TEXT as one edit
  key NAME        press ArrowRight, ArrowLeft, Home, End, Backspace or Tab
  focus           focus the surface with the caret at the end
  blur            remove focus
  select N        put the caret N characters into the text
  markdown        print the current markdown
  html            print the current surface markup
  offset          print the caret offset
  save [DIR]      write the document into DIR (default ".")
  write           write the document back to the opened file
  help            show this list
  quit            stop reading commands
TEXT may be a Go-quoted string such as "a\nb".`

type editFlags struct {
	print bool
}

func newEditCommand() *cobra.Command {
	cliCfg := &config.Config{}
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Drive an editing session from commands on stdin",
		Long: `Open a document in an editing session and apply commands read from
standard input, one per line. Every edit goes through the same cycle as
typing into the editor: the surface is serialized, re-rendered when the
Markdown changed, and the caret is restored.

` + editHelp + `

Examples:
  gomdedit edit notes.md
  printf 'type **abc**\nkey ArrowRight\ntype def\nhtml\n' | gomdedit edit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, cliCfg, flags)
		},
	}

	addRenderFlags(cmd, cliCfg)
	cmd.Flags().StringVar(&cliCfg.Editor.Tab, "tab", "", "text inserted by the Tab key (default two spaces)")
	cmd.Flags().StringVar(&cliCfg.Editor.SaveName, "save-name", "", "file name used by save (default document.md)")
	cmd.Flags().BoolVar(&cliCfg.Backups.Enabled, "backup", false, "keep a backup of files before overwriting them")
	cmd.Flags().BoolVar(&flags.print, "print", false, "print the final markdown when input ends")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *editFlags) error {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	session := editor.New(
		editor.WithTab(cfg.Editor.Tab),
		editor.WithSaveName(cfg.Editor.SaveName),
		editor.WithRenderer(runner.RendererFor(cfg)),
		editor.WithBackup(cfg.Backups.Enabled),
		editor.WithLogger(commandLogger(cmd)),
	)

	if len(args) > 0 {
		if err := session.Open(ctx, args[0]); err != nil {
			return err
		}
	}
	session.Focus()

	in := cmd.InOrStdin()
	s := &editScript{
		session:     session,
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		interactive: isTerminal(in),
	}
	if err := s.run(ctx, in); err != nil {
		return err
	}

	if flags.print {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), session.Markdown()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// editScript applies line commands to a session.
type editScript struct {
	session     *editor.Session
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

// run reads commands until EOF or quit. Command errors are reported and
// reading continues; in a non-interactive script the first one is returned
// when input ends.
func (s *editScript) run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	var firstErr error
	for {
		if s.interactive {
			fmt.Fprint(s.out, editPrompt)
		}
		if !scanner.Scan() {
			break
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("edit cancelled: %w", err)
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		done, err := s.exec(ctx, line)
		if err != nil {
			fmt.Fprintln(s.errOut, "error:", err)
			if firstErr == nil && !s.interactive {
				firstErr = err
			}
		}
		if done {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return firstErr
}

// exec runs one command line and reports whether the script should stop.
func (s *editScript) exec(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "type":
		text, err := unquote(arg)
		if err != nil {
			return false, err
		}
		s.session.Type(text)
	case "paste":
		text, err := unquote(arg)
		if err != nil {
			return false, err
		}
		s.session.Paste(text)
	case "key":
		if !s.session.Key(arg) {
			return false, fmt.Errorf("key %q not handled", arg)
		}
	case "focus":
		s.session.Focus()
	case "blur":
		s.session.Blur()
	case "select":
		offset, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("select: %w", err)
		}
		s.session.Select(offset)
	case "markdown":
		fmt.Fprintln(s.out, s.session.Markdown())
	case "html":
		fmt.Fprintln(s.out, s.session.HTML())
	case "offset":
		fmt.Fprintln(s.out, s.session.Offset())
	case "save":
		dir := arg
		if dir == "" {
			dir = "."
		}
		path, err := s.session.Save(ctx, dir)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "saved", path)
	case "write":
		path, err := s.session.SaveFile(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "wrote", path)
	case "help":
		fmt.Fprintln(s.out, editHelp)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownEditCommand, name)
	}

	return false, nil
}

// unquote returns arg, or its value when arg is a Go-quoted string.
func unquote(arg string) (string, error) {
	if !strings.HasPrefix(arg, `"`) {
		return arg, nil
	}
	text, err := strconv.Unquote(arg)
	if err != nil {
		return "", fmt.Errorf("invalid quoted text %s: %w", arg, err)
	}
	return text, nil
}
